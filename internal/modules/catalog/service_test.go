package catalog

import (
	"context"
	"fmt"
	"testing"

	"servicehub/internal/domain"
	"servicehub/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) GetByName(ctx context.Context, name string) (*domain.Listing, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) ToggleActive(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context, activeOnly bool) ([]domain.Listing, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

var admin = domain.AdminActor(1)

func TestAddListing(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewService(repo)

	repo.On("Create", ctx, mock.MatchedBy(func(l *domain.Listing) bool {
		return l.Name == "Plumbing" && l.Category == "Home Repair" && l.IsActive
	})).Return(nil).Once()

	l, err := svc.AddListing(ctx, admin, AddListingRequest{Name: " Plumbing ", Category: "Home Repair"})
	require.NoError(t, err)
	assert.True(t, l.IsActive)
	repo.AssertExpectations(t)
}

func TestAddListing_Rules(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewService(repo)

	_, err := svc.AddListing(ctx, domain.CustomerActor(2), AddListingRequest{Name: "X", Category: "Y"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.AddListing(ctx, admin, AddListingRequest{Name: "  ", Category: "Y"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	repo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("%w: services.name", repository.ErrUniqueViolation)).Once()
	_, err = svc.AddListing(ctx, admin, AddListingRequest{Name: "Plumbing", Category: "Home Repair"})
	assert.ErrorIs(t, err, ErrListingExists)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestToggleAndListAll_AdminOnly(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewService(repo)

	_, err := svc.ToggleActive(ctx, domain.ProviderActor(1), 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.ListAll(ctx, domain.CustomerActor(1))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	repo.On("ToggleActive", ctx, int64(3)).Return(&domain.Listing{ID: 3, IsActive: false}, nil)
	l, err := svc.ToggleActive(ctx, admin, 3)
	require.NoError(t, err)
	assert.False(t, l.IsActive)
}

func TestCategories_GroupsInOrder(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewService(repo)

	repo.On("List", ctx, true).Return([]domain.Listing{
		{Name: "Cleaning", Category: "Cleaning"},
		{Name: "Electrical", Category: "Home Repair"},
		{Name: "Plumbing", Category: "Home Repair"},
	}, nil)

	groups, err := svc.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Cleaning", groups[0].Category)
	assert.Len(t, groups[1].Services, 2)
	assert.Equal(t, "Plumbing", groups[1].Services[1].Name)
}

func TestGetActiveByName(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	svc := NewService(repo)

	repo.On("GetByName", ctx, "Plumbing").Return(&domain.Listing{ID: 1, Name: "Plumbing", IsActive: true}, nil)
	repo.On("GetByName", ctx, "Gardening").Return(&domain.Listing{ID: 2, Name: "Gardening"}, nil)
	repo.On("GetByName", ctx, "Nope").Return(nil, fmt.Errorf("service: %w", domain.ErrNotFound))

	l, err := svc.GetActiveByName(ctx, "Plumbing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)

	_, err = svc.GetActiveByName(ctx, "Gardening")
	assert.ErrorIs(t, err, ErrListingInactive)

	_, err = svc.GetActiveByName(ctx, "Nope")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}
