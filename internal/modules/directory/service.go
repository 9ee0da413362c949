package directory

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"servicehub/internal/domain"
	"servicehub/internal/pkg/docstore"
	"servicehub/internal/pkg/validator"
	"servicehub/internal/repository"
)

type Service struct {
	providers ProviderRepository
	listings  ListingResolver
	ratings   RatingSource
	hasher    PasswordHasher
	docs      docstore.Store
	logf      func(format string, args ...any)
}

func NewService(
	providers ProviderRepository,
	listings ListingResolver,
	ratings RatingSource,
	hasher PasswordHasher,
	docs docstore.Store,
) *Service {
	return &Service{
		providers: providers,
		listings:  listings,
		ratings:   ratings,
		hasher:    hasher,
		docs:      docs,
		logf:      log.Printf,
	}
}

// RegisterProvider creates a provider account bound to an active listing.
// New providers start unverified and are hidden until an admin approves them.
func (s *Service) RegisterProvider(ctx context.Context, req RegisterProviderRequest) (*domain.Provider, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.OwnerName = strings.TrimSpace(req.OwnerName)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Location = strings.TrimSpace(req.Location)
	req.Description = strings.TrimSpace(req.Description)
	if err := validator.Check(req); err != nil {
		return nil, err
	}
	rate := req.HourlyRate.Round(2)
	if !rate.IsPositive() || rate.GreaterThan(domain.MaxAmount) {
		return nil, ErrInvalidRate
	}

	listing, err := s.listings.GetActiveByName(ctx, req.ServiceName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	p := &domain.Provider{
		Email:           req.Email,
		PasswordHash:    hash,
		BusinessName:    req.BusinessName,
		OwnerName:       req.OwnerName,
		Phone:           req.Phone,
		ServiceID:       listing.ID,
		ServiceName:     listing.Name,
		Location:        req.Location,
		HourlyRate:      rate,
		ExperienceYears: req.ExperienceYears,
		Description:     req.Description,
		IdentityNumber:  strings.TrimSpace(req.IdentityNumber),
		TaxNumber:       strings.TrimSpace(req.TaxNumber),
		KycStatus:       domain.KycPending,
		KycVerified:     false,
		Status:          domain.AccountActive,
	}
	if err := s.providers.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	p.PasswordHash = ""
	return p, nil
}

// SetKycStatus applies an admin decision. Repeating a decision is a no-op.
func (s *Service) SetKycStatus(ctx context.Context, actor domain.Actor, providerID int64, decision domain.KycDecision) (*domain.Provider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	status, verified, ok := decision.Apply()
	if !ok {
		return nil, ErrInvalidDecision
	}

	p, err := s.providers.SetKyc(ctx, providerID, status, verified)
	if err != nil {
		return nil, err
	}
	s.logf("level=info msg=kyc decision applied provider_id=%d decision=%s admin_id=%d", providerID, decision, actor.ID)
	return p, nil
}

// SetStatus suspends or reactivates a provider account. Admin only.
func (s *Service) SetStatus(ctx context.Context, actor domain.Actor, providerID int64, status domain.AccountStatus) (*domain.Provider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.providers.SetStatus(ctx, providerID, status)
}

// ListBookable returns verified, active providers ranked by average rating
// (unrated last), then hourly rate, then id.
func (s *Service) ListBookable(ctx context.Context, serviceName string) ([]RankedProvider, error) {
	providers, err := s.providers.ListBookable(ctx, strings.TrimSpace(serviceName))
	if err != nil {
		return nil, err
	}

	ranked, err := s.withRatings(ctx, providers)
	if err != nil {
		return nil, err
	}
	sortRanked(ranked)
	return ranked, nil
}

// ListAll is the admin view of every provider, newest first.
func (s *Service) ListAll(ctx context.Context, actor domain.Actor) ([]RankedProvider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	providers, err := s.providers.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.withRatings(ctx, providers)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	return s.providers.GetByID(ctx, id)
}

// Profile returns a bookable provider with its rating. Hidden providers are
// reported as not found.
func (s *Service) Profile(ctx context.Context, id int64) (*RankedProvider, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.Bookable() {
		return nil, fmt.Errorf("provider: %w", domain.ErrNotFound)
	}

	ranked, err := s.withRatings(ctx, []domain.Provider{*p})
	if err != nil {
		return nil, err
	}
	return &ranked[0], nil
}

// AttachKycDocument stores an uploaded document and records its reference.
// Only the provider itself may attach documents.
func (s *Service) AttachKycDocument(ctx context.Context, actor domain.Actor, providerID int64, upload KycUpload) (*domain.KycDocument, error) {
	if !actor.IsProvider(providerID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.providers.GetByID(ctx, providerID); err != nil {
		return nil, err
	}

	key, err := docstore.ObjectKey(providerID, upload.FileName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	ref, err := s.docs.Put(ctx, key, upload.Body, upload.Size, upload.ContentType)
	if err != nil {
		if errors.Is(err, docstore.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return nil, err
	}

	doc := &domain.KycDocument{
		ProviderID: providerID,
		Reference:  ref,
		FileName:   upload.FileName,
		SizeBytes:  upload.Size,
	}
	if err := s.providers.AddKycDocument(ctx, doc); err != nil {
		s.logf("level=error msg=kyc document stored but not recorded provider_id=%d ref=%s err=%v", providerID, ref, err)
		return nil, err
	}
	return doc, nil
}

// ListKycDocuments is visible to the provider itself and to admins.
func (s *Service) ListKycDocuments(ctx context.Context, actor domain.Actor, providerID int64) ([]domain.KycDocument, error) {
	if !actor.IsAdmin() && !actor.IsProvider(providerID) {
		return nil, domain.ErrForbidden
	}
	return s.providers.ListKycDocuments(ctx, providerID)
}

func (s *Service) withRatings(ctx context.Context, providers []domain.Provider) ([]RankedProvider, error) {
	ids := make([]int64, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}

	stats, err := s.ratings.StatsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]RankedProvider, 0, len(providers))
	for _, p := range providers {
		p.PasswordHash = ""
		rp := RankedProvider{Provider: p}
		if st, ok := stats[p.ID]; ok {
			rp.AvgRating = st.Average
			rp.ReviewCount = st.Count
		}
		out = append(out, rp)
	}
	return out, nil
}

func sortRanked(ranked []RankedProvider) {
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		switch {
		case a.AvgRating != nil && b.AvgRating == nil:
			return true
		case a.AvgRating == nil && b.AvgRating != nil:
			return false
		case a.AvgRating != nil && *a.AvgRating != *b.AvgRating:
			return *a.AvgRating > *b.AvgRating
		}
		if c := a.HourlyRate.Cmp(b.HourlyRate); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}
