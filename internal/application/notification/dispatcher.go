package notification

import (
	"context"

	"github.com/pyasti/backend/internal/domain/ordering"
	"go.uber.org/zap"
)

// Dispatcher fans order notifications out over a Transport. Delivery is
// best-effort: a failing recipient is logged and never aborts the
// remaining sends or the caller. There is no retry.
type Dispatcher struct {
	transport Transport
	logger    *zap.Logger
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(transport Transport, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		logger:    logger.Named("notification"),
	}
}

// Notify renders and sends the notification to every recipient
func (d *Dispatcher) Notify(ctx context.Context, order *ordering.Order, recipients []Recipient, kind Kind) error {
	for _, recipient := range recipients {
		if recipient.Email == "" {
			continue
		}

		subject, body, err := Render(kind, recipient, order)
		if err != nil {
			d.logger.Error("failed to render notification",
				zap.String("kind", string(kind)),
				zap.String("order_id", order.ID.String()),
				zap.Error(err))
			continue
		}

		if err := d.transport.Send(ctx, recipient, subject, body); err != nil {
			d.logger.Error("failed to send notification",
				zap.String("kind", string(kind)),
				zap.String("order_id", order.ID.String()),
				zap.String("recipient", recipient.Email),
				zap.Error(err))
			continue
		}

		d.logger.Debug("notification sent",
			zap.String("kind", string(kind)),
			zap.String("order_id", order.ID.String()),
			zap.String("recipient", recipient.Email))
	}
	return nil
}
