package admin

import (
	"context"

	"servicehub/internal/domain"
	"servicehub/internal/modules/catalog"
	"servicehub/internal/modules/directory"
	"servicehub/internal/modules/payment"
	"servicehub/internal/repository"

	"github.com/shopspring/decimal"
)

type UserRepository interface {
	CountByRole(ctx context.Context, role domain.UserRole) (int64, error)
	Recent(ctx context.Context, role domain.UserRole, limit int) ([]domain.User, error)
	SetStatus(ctx context.Context, id int64, status domain.AccountStatus) (*domain.User, error)
}

type ProviderRepository interface {
	Count(ctx context.Context) (int64, error)
	CountByKyc(ctx context.Context, status domain.KycStatus) (int64, error)
	Recent(ctx context.Context, limit int) ([]domain.Provider, error)
}

type BookingRepository interface {
	Count(ctx context.Context, f repository.BookingFilter) (int64, error)
	SumAmount(ctx context.Context, f repository.BookingFilter) (decimal.Decimal, error)
	List(ctx context.Context, f repository.BookingFilter) ([]domain.Booking, error)
}

type ListingModerator interface {
	AddListing(ctx context.Context, actor domain.Actor, req catalog.AddListingRequest) (*domain.Listing, error)
	ToggleActive(ctx context.Context, actor domain.Actor, id int64) (*domain.Listing, error)
	ListAll(ctx context.Context, actor domain.Actor) ([]domain.Listing, error)
}

type ProviderModerator interface {
	SetKycStatus(ctx context.Context, actor domain.Actor, providerID int64, decision domain.KycDecision) (*domain.Provider, error)
	SetStatus(ctx context.Context, actor domain.Actor, providerID int64, status domain.AccountStatus) (*domain.Provider, error)
	ListAll(ctx context.Context, actor domain.Actor) ([]directory.RankedProvider, error)
}

type PaymentSettler interface {
	Settle(ctx context.Context, actor domain.Actor, paymentID string, req payment.SettleRequest) (*domain.Payment, error)
}
