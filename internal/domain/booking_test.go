package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_CanTransitionTo(t *testing.T) {
	allowed := map[BookingStatus][]BookingStatus{
		BookingPending:   {BookingConfirmed, BookingCancelled},
		BookingConfirmed: {BookingCompleted, BookingCancelled},
	}
	all := []BookingStatus{BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, ok := range allowed[from] {
				if ok == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestBookingStatus_Terminal(t *testing.T) {
	assert.False(t, BookingPending.Terminal())
	assert.False(t, BookingConfirmed.Terminal())
	assert.True(t, BookingCompleted.Terminal())
	assert.True(t, BookingCancelled.Terminal())
	assert.False(t, BookingStatus("archived").Valid())
}

func TestPrice(t *testing.T) {
	assert.True(t, decimal.NewFromInt(1500).Equal(Price(decimal.NewFromInt(500), 3)))
	assert.Equal(t, "101.25", Price(decimal.RequireFromString("33.75"), 3).StringFixed(2))
}

func TestActor(t *testing.T) {
	b := &Booking{CustomerID: 7, ProviderID: 7}

	assert.True(t, b.HasParty(CustomerActor(7)))
	assert.True(t, b.HasParty(ProviderActor(7)))
	assert.False(t, b.HasParty(CustomerActor(8)))
	assert.False(t, b.HasParty(AdminActor(1)))
	assert.True(t, AdminActor(1).IsAdmin())
	assert.False(t, Actor{ID: 1, Kind: KindProvider, Role: RoleAdmin}.IsAdmin())
}

func TestKycDecision_Apply(t *testing.T) {
	status, verified, ok := KycApprove.Apply()
	assert.True(t, ok)
	assert.Equal(t, KycVerified, status)
	assert.True(t, verified)

	status, verified, ok = KycReject.Apply()
	assert.True(t, ok)
	assert.Equal(t, KycRejected, status)
	assert.False(t, verified)

	_, _, ok = KycDecision("maybe").Apply()
	assert.False(t, ok)
}
