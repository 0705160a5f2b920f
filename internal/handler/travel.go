package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/timetravel/internal/domain"
)

// travelsPath is the versioned base path of the travel resource.
const travelsPath = "/v1/travels"

// travelRequest is the JSON body of POST /v1/travels.
// Date is a pointer so a missing date can be told apart from a zero one.
type travelRequest struct {
	Pgi   string              `json:"pgi"`
	Place string              `json:"place"`
	Date  *openapi_types.Date `json:"date"`
}

// travelResponse is the JSON shape of a single travel in get and list replies.
type travelResponse struct {
	Pgi   string             `json:"pgi"`
	Place string             `json:"place"`
	Date  openapi_types.Date `json:"date"`
}

// pageableResponse describes the requested window of a page.
type pageableResponse struct {
	PageNumber int   `json:"pageNumber"`
	PageSize   int   `json:"pageSize"`
	Offset     int64 `json:"offset"`
	Paged      bool  `json:"paged"`
	Unpaged    bool  `json:"unpaged"`
}

// pageResponse is the envelope of GET /v1/travels.
type pageResponse struct {
	Content          []travelResponse `json:"content"`
	Pageable         pageableResponse `json:"pageable"`
	TotalElements    int64            `json:"totalElements"`
	TotalPages       int              `json:"totalPages"`
	Last             bool             `json:"last"`
	First            bool             `json:"first"`
	Size             int              `json:"size"`
	Number           int              `json:"number"`
	NumberOfElements int              `json:"numberOfElements"`
	Empty            bool             `json:"empty"`
}

// CreateTravel handles POST /v1/travels.
// Replies 201 with a Location header and an empty body.
func (s *Server) CreateTravel(w http.ResponseWriter, r *http.Request) {
	var body travelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, r, decodeError(err))
		return
	}

	id, err := s.travels.Create(r.Context(), requestToDomain(body))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", travelLocation(r, id))
	w.WriteHeader(http.StatusCreated)
}

// GetTravel handles GET /v1/travels/{travelId}.
func (s *Server) GetTravel(w http.ResponseWriter, r *http.Request) {
	id, err := travelIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	view, err := s.travels.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewToResponse(view))
}

// ListTravels handles GET /v1/travels.
// Supports ?page= (0-based) and ?size= query parameters (defaults: page=0, size=20, max=100).
func (s *Server) ListTravels(w http.ResponseWriter, r *http.Request) {
	var page, size *int
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &page); err != nil {
		s.writeError(w, r, badRequest("invalid page", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "size", query, &size); err != nil {
		s.writeError(w, r, badRequest("invalid size", err))
		return
	}

	result, err := s.travels.ListPage(r.Context(), domain.NewPageRequest(page, size))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// DeleteTravel handles DELETE /v1/travels/{travelId}.
// Replies 204 whether or not the travel existed.
func (s *Server) DeleteTravel(w http.ResponseWriter, r *http.Request) {
	id, err := travelIDParam(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.travels.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- request helpers --------------------------------------------------------

// travelIDParam returns the {travelId} path parameter in lower case, rejecting
// values that are not 24 hex characters. The store matches ids regardless of
// case, so the cache key must not depend on it.
func travelIDParam(r *http.Request) (string, error) {
	id := chi.URLParam(r, "travelId")
	if !domain.ValidTravelID(id) {
		return "", badRequest("invalid travelId", nil)
	}
	return strings.ToLower(id), nil
}

// decodeError classifies a body decoding failure. Bodies cut off by the
// size limit are 413, everything else is a malformed body.
func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &requestError{status: http.StatusRequestEntityTooLarge, message: "request body too large", err: err}
	}
	return badRequest("malformed request body", err)
}

// travelLocation builds the absolute URL of a travel from the incoming request.
func travelLocation(r *http.Request, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: path.Join(travelsPath, id)}
	return u.String()
}

// --- mapping helpers --------------------------------------------------------

// requestToDomain converts the JSON body into a domain.TravelRequest.
func requestToDomain(body travelRequest) domain.TravelRequest {
	req := domain.TravelRequest{Code: body.Pgi, Place: body.Place}
	if body.Date != nil {
		d := body.Date.Time
		req.Date = &d
	}
	return req
}

// viewToResponse converts a domain.TravelView into its JSON shape.
func viewToResponse(v domain.TravelView) travelResponse {
	return travelResponse{
		Pgi:   v.Code,
		Place: v.Place,
		Date:  openapi_types.Date{Time: v.Date},
	}
}

// pageToResponse converts a page of views into the list envelope.
func pageToResponse(p domain.Page[domain.TravelView]) pageResponse {
	content := make([]travelResponse, len(p.Content))
	for i, v := range p.Content {
		content[i] = viewToResponse(v)
	}
	return pageResponse{
		Content: content,
		Pageable: pageableResponse{
			PageNumber: p.Request.Page,
			PageSize:   p.Request.Size,
			Offset:     p.Request.Offset(),
			Paged:      true,
		},
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages(),
		Last:             p.Last(),
		First:            p.First(),
		Size:             p.Request.Size,
		Number:           p.Request.Page,
		NumberOfElements: len(content),
		Empty:            len(content) == 0,
	}
}
