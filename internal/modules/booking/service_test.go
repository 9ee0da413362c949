package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"servicehub/internal/database"
	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordedEvent struct {
	kind  domain.PrincipalKind
	id    int64
	event Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(kind domain.PrincipalKind, id int64, event any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{kind: kind, id: id, event: event.(Event)})
}

type fixture struct {
	db        *gorm.DB
	svc       *Service
	providers *repository.ProviderRepository
	events    *recordingPublisher
	provider  *domain.Provider
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	providers := repository.NewProviderRepository(db)
	p := &domain.Provider{
		Email:        "bob@pipes.com",
		PasswordHash: "x",
		BusinessName: "Bob's Pipes",
		OwnerName:    "Bob",
		Phone:        "555",
		ServiceID:    1,
		ServiceName:  "Plumbing",
		Location:     "Springfield",
		HourlyRate:   decimal.NewFromInt(500),
		KycStatus:    domain.KycVerified,
		KycVerified:  true,
		Status:       domain.AccountActive,
	}
	require.NoError(t, providers.Create(context.Background(), p))

	events := &recordingPublisher{}
	return &fixture{
		db:        db,
		svc:       NewService(repository.NewBookingRepository(db), events),
		providers: providers,
		events:    events,
		provider:  p,
	}
}

func (f *fixture) request() CreateBookingRequest {
	return CreateBookingRequest{
		ProviderID:    f.provider.ID,
		BookingDate:   "2030-05-01",
		BookingTime:   "09:30",
		DurationHours: 3,
		Address:       "1 Main St",
	}
}

func TestCreateBooking_PricesAndStampsPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := domain.CustomerActor(1)

	b, err := f.svc.CreateBooking(ctx, alice, f.request())
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.True(t, decimal.NewFromInt(1500).Equal(b.TotalAmount))
	assert.Equal(t, "Plumbing", b.ServiceName)
	assert.Equal(t, int64(1), b.CustomerID)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.KindProvider, f.events.events[0].kind)
	assert.Equal(t, EventCreated, f.events.events[0].event.Type)
}

func TestCreateBooking_PriceFrozenAfterRateChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), f.request())
	require.NoError(t, err)

	require.NoError(t, f.db.Table("service_providers").
		Where("id = ?", f.provider.ID).
		Update("hourly_rate", decimal.NewFromInt(900)).Error)

	got, err := f.svc.Get(ctx, domain.CustomerActor(1), b.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1500).Equal(got.TotalAmount), got.TotalAmount.String())
}

func TestCreateBooking_Rejections(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := domain.CustomerActor(1)

	_, err := f.svc.CreateBooking(ctx, domain.ProviderActor(f.provider.ID), f.request())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	req := f.request()
	req.DurationHours = 0
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = f.request()
	req.BookingDate = "01/05/2030"
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	req = f.request()
	req.BookingTime = "25:00"
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, ErrInvalidSchedule)

	req = f.request()
	req.Address = "   "
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = f.request()
	req.ServiceName = "Cleaning"
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, ErrServiceMismatch)

	req = f.request()
	req.ProviderID = 999
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	req = f.request()
	req.DurationHours = 169
	_, err = f.svc.CreateBooking(ctx, alice, req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	var count int64
	require.NoError(t, f.db.Table("bookings").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBooking_AmountBeyondStoreRange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	require.NoError(t, f.db.Table("service_providers").
		Where("id = ?", f.provider.ID).
		Update("hourly_rate", decimal.RequireFromString("99999999.99")).Error)

	req := f.request()
	req.DurationHours = 2
	_, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), req)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req.DurationHours = 1
	b, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), req)
	require.NoError(t, err)
	assert.True(t, domain.MaxAmount.Equal(b.TotalAmount), b.TotalAmount.String())
}

func TestCreateBooking_DoesNotRecheckKyc(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.providers.SetKyc(ctx, f.provider.ID, domain.KycRejected, false)
	require.NoError(t, err)

	_, err = f.svc.CreateBooking(ctx, domain.CustomerActor(1), f.request())
	assert.NoError(t, err)
}

func TestTransition_Graph(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := domain.CustomerActor(1)
	provider := domain.ProviderActor(f.provider.ID)

	b, err := f.svc.CreateBooking(ctx, alice, f.request())
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, provider, b.ID, domain.BookingCompleted)
	assert.ErrorIs(t, err, domain.ErrIllegalTransition)

	b, err = f.svc.Transition(ctx, provider, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	b, err = f.svc.Transition(ctx, alice, b.ID, domain.BookingCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, b.Status)

	for _, next := range []domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed, domain.BookingCancelled} {
		_, err = f.svc.Transition(ctx, alice, b.ID, next)
		assert.ErrorIs(t, err, domain.ErrIllegalTransition, next)
	}

	_, err = f.svc.Transition(ctx, alice, b.ID, "archived")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransition_Authorization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), f.request())
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, domain.CustomerActor(2), b.ID, domain.BookingCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Transition(ctx, domain.ProviderActor(f.provider.ID+1), b.ID, domain.BookingCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// same numeric id, wrong kind
	_, err = f.svc.Transition(ctx, domain.ProviderActor(1), b.ID, domain.BookingCancelled)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Transition(ctx, domain.CustomerActor(1), 999, domain.BookingCancelled)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	b, err = f.svc.Transition(ctx, domain.AdminActor(50), b.ID, domain.BookingCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestTransition_NotifiesOtherParty(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	b, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), f.request())
	require.NoError(t, err)
	f.events.events = nil

	_, err = f.svc.Transition(ctx, domain.ProviderActor(f.provider.ID), b.ID, domain.BookingConfirmed)
	require.NoError(t, err)

	require.Len(t, f.events.events, 1)
	assert.Equal(t, domain.KindCustomer, f.events.events[0].kind)
	assert.Equal(t, int64(1), f.events.events[0].id)
}

func TestTransition_RaceHasOneWinner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := domain.CustomerActor(1)
	provider := domain.ProviderActor(f.provider.ID)

	b, err := f.svc.CreateBooking(ctx, alice, f.request())
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, provider, b.ID, domain.BookingConfirmed)
	require.NoError(t, err)

	var (
		wg   sync.WaitGroup
		errs = make([]error, 2)
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.svc.Transition(ctx, alice, b.ID, domain.BookingCancelled)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.svc.Transition(ctx, provider, b.ID, domain.BookingCompleted)
	}()
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrIllegalTransition)
	}
	assert.Equal(t, 1, wins)

	final, err := f.svc.Get(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.True(t, final.Status.Terminal())
}

func TestListAndGet_Scoped(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateBooking(ctx, domain.CustomerActor(1), f.request())
	require.NoError(t, err)
	other, err := f.svc.CreateBooking(ctx, domain.CustomerActor(2), f.request())
	require.NoError(t, err)

	mine, err := f.svc.List(ctx, domain.CustomerActor(1), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	forProvider, err := f.svc.List(ctx, domain.ProviderActor(f.provider.ID), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, forProvider, 2)

	all, err := f.svc.List(ctx, domain.AdminActor(99), ListFilter{Status: domain.BookingPending})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.Get(ctx, domain.CustomerActor(1), other.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.List(ctx, domain.CustomerActor(1), ListFilter{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSummary(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	alice := domain.CustomerActor(1)
	provider := domain.ProviderActor(f.provider.ID)

	for i := 0; i < 2; i++ {
		b, err := f.svc.CreateBooking(ctx, alice, f.request())
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, provider, b.ID, domain.BookingConfirmed)
		require.NoError(t, err)
		_, err = f.svc.Transition(ctx, provider, b.ID, domain.BookingCompleted)
		require.NoError(t, err)
	}
	_, err := f.svc.CreateBooking(ctx, alice, f.request())
	require.NoError(t, err)

	cs, err := f.svc.Summary(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, cs.TotalSpent)
	assert.True(t, decimal.NewFromInt(3000).Equal(*cs.TotalSpent), cs.TotalSpent.String())
	assert.Nil(t, cs.MonthlyEarnings)
	assert.Equal(t, int64(2), cs.Counts[domain.BookingCompleted])
	assert.Equal(t, int64(1), cs.Counts[domain.BookingPending])
	assert.Len(t, cs.RecentBookings, 3)

	ps, err := f.svc.Summary(ctx, provider)
	require.NoError(t, err)
	require.NotNil(t, ps.MonthlyEarnings)
	assert.True(t, decimal.NewFromInt(3000).Equal(*ps.MonthlyEarnings), ps.MonthlyEarnings.String())

	// earnings are scoped to the current month
	f.svc.now = func() time.Time { return time.Now().AddDate(0, 2, 0) }
	ps, err = f.svc.Summary(ctx, provider)
	require.NoError(t, err)
	assert.True(t, ps.MonthlyEarnings.IsZero())
}
