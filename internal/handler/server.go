// Package handler implements the HTTP handlers for the Time Travel API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, travel.go, ...) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/timetravel/internal/domain"
)

// TravelServicer defines the business operations the travel handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type TravelServicer interface {
	Create(ctx context.Context, req domain.TravelRequest) (string, error)
	GetByID(ctx context.Context, id string) (domain.TravelView, error)
	ListPage(ctx context.Context, p domain.PageRequest) (domain.Page[domain.TravelView], error)
	Delete(ctx context.Context, id string) error
}

// Server holds the dependencies of every API endpoint.
type Server struct {
	travels TravelServicer
	log     *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(travels TravelServicer, log *slog.Logger) *Server {
	return &Server{travels: travels, log: log}
}

// Routes returns the API router. Travel endpoints live under /v1; /healthz
// and /openapi.yaml are unversioned.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(s.notFound)
	r.MethodNotAllowed(s.methodNotAllowed)

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route(travelsPath, func(r chi.Router) {
		r.Post("/", s.CreateTravel)
		r.Get("/", s.ListTravels)
		r.Get("/{travelId}", s.GetTravel)
		r.Delete("/{travelId}", s.DeleteTravel)
	})
	return r
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Description: "no route for " + r.Method + " " + r.URL.Path})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Description: "method " + r.Method + " not allowed"})
}
