package ordering

import (
	"context"

	"github.com/shopspring/decimal"
)

// CaptureStatusCompleted is the gateway status of a successful capture
const CaptureStatusCompleted = "COMPLETED"

// GatewayOrder is the reference the external gateway assigns to a
// payment before capture
type GatewayOrder struct {
	ID     string
	Status string
}

// CaptureResult is the outcome of capturing an approved payment
type CaptureResult struct {
	ID           string
	Status       string
	EmailAddress string
}

// PaymentGateway is the port to the external payment provider. The
// settlement currency is the gateway's own configuration, not a
// per-call choice.
type PaymentGateway interface {
	// CreateOrder registers a payment intent for the given amount and
	// returns the gateway's order reference
	CreateOrder(ctx context.Context, amount decimal.Decimal) (GatewayOrder, error)
	// Capture captures an approved gateway order
	Capture(ctx context.Context, gatewayOrderID string) (CaptureResult, error)
}
