package payment

import "servicehub/internal/domain"

type InitiateRequest struct {
	Method string `json:"method" validate:"required,oneof=card upi netbanking wallet cash"`
}

// SettleRequest stands in for the gateway callback.
type SettleRequest struct {
	Outcome          domain.PaymentStatus `json:"outcome" binding:"required"`
	GatewayPaymentID string               `json:"gateway_payment_id" validate:"max=64"`
}
