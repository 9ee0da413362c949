package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
)

type Service struct {
	listings ListingRepository
}

func NewService(listings ListingRepository) *Service {
	return &Service{listings: listings}
}

// AddListing creates an active listing. Admin only.
func (s *Service) AddListing(ctx context.Context, actor domain.Actor, req AddListingRequest) (*domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Description = strings.TrimSpace(req.Description)
	if err := validator.Check(req); err != nil {
		return nil, err
	}

	l := &domain.Listing{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrListingExists
		}
		return nil, err
	}
	return l, nil
}

// ToggleActive flips a listing between active and inactive. Admin only.
func (s *Service) ToggleActive(ctx context.Context, actor domain.Actor, id int64) (*domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.listings.ToggleActive(ctx, id)
}

func (s *Service) ListActive(ctx context.Context) ([]domain.Listing, error) {
	return s.listings.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.listings.List(ctx, false)
}

// Categories groups active listings by category, keeping the
// (category, name) order of ListActive.
func (s *Service) Categories(ctx context.Context) ([]CategoryGroup, error) {
	listings, err := s.listings.List(ctx, true)
	if err != nil {
		return nil, err
	}

	groups := make([]CategoryGroup, 0)
	for _, l := range listings {
		if n := len(groups); n == 0 || groups[n-1].Category != l.Category {
			groups = append(groups, CategoryGroup{Category: l.Category})
		}
		last := &groups[len(groups)-1]
		last.Services = append(last.Services, l)
	}
	return groups, nil
}

// GetActiveByName resolves the listing a provider binds to. Unknown and
// inactive names are both validation failures.
func (s *Service) GetActiveByName(ctx context.Context, name string) (*domain.Listing, error) {
	l, err := s.listings.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown service %q", domain.ErrValidation, name)
		}
		return nil, err
	}
	if !l.IsActive {
		return nil, ErrListingInactive
	}
	return l, nil
}
