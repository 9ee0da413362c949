package admin

import (
	"context"
	"log"

	"servicehub/internal/domain"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/directory"
	"servicehub/internal/modules/payment"
	"servicehub/internal/repository"
)

type Service struct {
	userRepo     UserRepository
	providerRepo ProviderRepository
	bookingRepo  BookingRepository
	listings     ListingModerator
	providers    ProviderModerator
	payments     PaymentSettler
}

func NewService(
	userRepo UserRepository,
	providerRepo ProviderRepository,
	bookingRepo BookingRepository,
	listings ListingModerator,
	providers ProviderModerator,
	payments PaymentSettler,
) *Service {
	return &Service{
		userRepo:     userRepo,
		providerRepo: providerRepo,
		bookingRepo:  bookingRepo,
		listings:     listings,
		providers:    providers,
		payments:     payments,
	}
}

// -------------------- Dashboard --------------------

// Dashboard is computed on every call; nothing is cached.
func (s *Service) Dashboard(ctx context.Context, actor domain.Actor) (*Dashboard, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	var (
		d   Dashboard
		err error
	)
	if d.TotalCustomers, err = s.userRepo.CountByRole(ctx, domain.RoleUser); err != nil {
		return nil, err
	}
	if d.TotalProviders, err = s.providerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if d.TotalBookings, err = s.bookingRepo.Count(ctx, repository.BookingFilter{}); err != nil {
		return nil, err
	}
	if d.PendingKyc, err = s.providerRepo.CountByKyc(ctx, domain.KycPending); err != nil {
		return nil, err
	}
	if d.TotalRevenue, err = s.bookingRepo.SumAmount(ctx, repository.BookingFilter{Status: domain.BookingCompleted}); err != nil {
		return nil, err
	}

	if d.RecentCustomers, err = s.userRepo.Recent(ctx, domain.RoleUser, recentLimit); err != nil {
		return nil, err
	}
	if d.RecentProviders, err = s.providerRepo.Recent(ctx, recentLimit); err != nil {
		return nil, err
	}
	if d.RecentBookings, err = s.bookingRepo.List(ctx, repository.BookingFilter{Limit: recentLimit}); err != nil {
		return nil, err
	}
	return &d, nil
}

// -------------------- Accounts --------------------

// SetUserStatus suspends or reactivates a customer account. Suspended
// customers cannot log in.
func (s *Service) SetUserStatus(ctx context.Context, actor domain.Actor, userID int64, status domain.AccountStatus) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if userID == actor.ID {
		return nil, ErrSelfSuspend
	}

	u, err := s.userRepo.SetStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}
	log.Printf("level=info msg=user status changed user_id=%d status=%s admin_id=%d", userID, status, actor.ID)
	return u, nil
}

func (s *Service) SetProviderStatus(ctx context.Context, actor domain.Actor, providerID int64, status domain.AccountStatus) (*domain.Provider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.providers.SetStatus(ctx, actor, providerID, status)
}

// -------------------- Providers --------------------

func (s *Service) ListProviders(ctx context.Context, actor domain.Actor) ([]directory.RankedProvider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.providers.ListAll(ctx, actor)
}

func (s *Service) DecideKyc(ctx context.Context, actor domain.Actor, providerID int64, decision domain.KycDecision) (*domain.Provider, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.providers.SetKycStatus(ctx, actor, providerID, decision)
}

// -------------------- Catalog --------------------

func (s *Service) ListServices(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.listings.ListAll(ctx, actor)
}

func (s *Service) AddService(ctx context.Context, actor domain.Actor, req catalog.AddListingRequest) (*domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.listings.AddListing(ctx, actor, req)
}

func (s *Service) ToggleService(ctx context.Context, actor domain.Actor, listingID int64) (*domain.Listing, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.listings.ToggleActive(ctx, actor, listingID)
}

// -------------------- Payments --------------------

func (s *Service) SettlePayment(ctx context.Context, actor domain.Actor, paymentID string, req payment.SettleRequest) (*domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.payments.Settle(ctx, actor, paymentID, req)
}
