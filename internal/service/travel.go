// Package service contains the business logic for the Time Travel API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// cache calls. No queries live here; services depend on repo interfaces,
// not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/timetravel/internal/cache"
	"github.com/pkordes/timetravel/internal/domain"
	"github.com/pkordes/timetravel/internal/metrics"
	"github.com/pkordes/timetravel/internal/repo"
)

// TravelService implements business logic for Travel operations.
type TravelService struct {
	repo    repo.TravelRepo
	cache   cache.TravelCache
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewTravelService constructs a TravelService backed by the provided repo and cache.
func NewTravelService(r repo.TravelRepo, c cache.TravelCache, m *metrics.Metrics, log *slog.Logger) *TravelService {
	return &TravelService{repo: r, cache: c, metrics: m, log: log}
}

// Create validates the request, rejects it when the traveler already has a
// travel on that date, and otherwise persists it.
// Returns the generated travel ID.
// Returns a *domain.ValidationError for invalid input and a
// *domain.ParadoxError when the (pgi, date) pair is taken.
func (s *TravelService) Create(ctx context.Context, req domain.TravelRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("service.TravelService.Create: %w", err)
	}
	travel := req.Travel()

	existing, err := s.repo.FindByCodeAndDate(ctx, travel.Code, travel.Date)
	switch {
	case err == nil:
		return "", s.paradox(ctx, existing)
	case !errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("service.TravelService.Create: %w", err)
	}

	saved, err := s.repo.Save(ctx, travel)
	if err != nil {
		// A concurrent create for the same pair won the insert; the unique
		// index reports what the check above could not see.
		if errors.Is(err, domain.ErrDuplicate) {
			return "", s.paradox(ctx, travel)
		}
		return "", fmt.Errorf("service.TravelService.Create: %w", err)
	}

	s.metrics.TravelsCreated.Inc()
	return saved.ID, nil
}

func (s *TravelService) paradox(ctx context.Context, t domain.Travel) error {
	s.metrics.ParadoxesTotal.Inc()
	perr := &domain.ParadoxError{Code: t.Code, Place: t.Place, Date: t.Date}
	s.log.InfoContext(ctx, "paradox detected", "pgi", t.Code, "date", t.Date.Format(domain.DateLayout))
	return fmt.Errorf("service.TravelService.Create: %w", perr)
}

// GetByID returns the view of a single travel, reading through the cache.
// Returns a *domain.NotFoundError if no travel with that ID exists.
// A failing cache never fails the read; the repo answers instead.
func (s *TravelService) GetByID(ctx context.Context, id string) (domain.TravelView, error) {
	view, ok, err := s.cache.Get(ctx, id)
	switch {
	case err != nil:
		s.metrics.CacheError()
		s.log.WarnContext(ctx, "travel cache read failed", "id", id, "error", err)
	case ok:
		s.metrics.CacheHit()
		return view, nil
	default:
		s.metrics.CacheMiss()
	}

	travel, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.TravelView{}, fmt.Errorf("service.TravelService.GetByID: %w", &domain.NotFoundError{ID: id})
		}
		return domain.TravelView{}, fmt.Errorf("service.TravelService.GetByID: %w", err)
	}

	view = travel.View()
	if err := s.cache.Set(ctx, id, view); err != nil {
		s.log.WarnContext(ctx, "travel cache write failed", "id", id, "error", err)
	}
	return view, nil
}

// ListPage returns one page of travel views in insertion order.
// The page content is never nil so callers can safely range over it.
func (s *TravelService) ListPage(ctx context.Context, p domain.PageRequest) (domain.Page[domain.TravelView], error) {
	travels, total, err := s.repo.FindPage(ctx, p)
	if err != nil {
		return domain.Page[domain.TravelView]{}, fmt.Errorf("service.TravelService.ListPage: %w", err)
	}

	page := domain.NewPage(travels, p, total)
	return domain.Map(page, domain.Travel.View), nil
}

// Delete removes a travel and evicts it from the cache.
// Deleting a travel that does not exist succeeds.
func (s *TravelService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("service.TravelService.Delete: %w", err)
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TravelService.Delete: evict: %w", err)
	}

	s.metrics.TravelsDeleted.Inc()
	s.log.InfoContext(ctx, "travel deleted", "id", id)
	return nil
}
