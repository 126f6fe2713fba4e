package notification

import (
	"context"

	"github.com/pyasti/backend/internal/domain/identity"
	"github.com/pyasti/backend/internal/domain/ordering"
)

// Kind identifies the notification being sent. Closed set; rendering is
// table-driven per kind and language.
type Kind string

const (
	KindPurchaseReceipt Kind = "purchase_receipt"
	KindDelivered       Kind = "delivered"
	KindCancelled       Kind = "cancelled"
)

// IsValid returns true for known kinds
func (k Kind) IsValid() bool {
	switch k {
	case KindPurchaseReceipt, KindDelivered, KindCancelled:
		return true
	}
	return false
}

// Recipient is one notification target
type Recipient struct {
	Name     string
	Email    string
	Language identity.Language
}

// Transport delivers a rendered notification to one recipient
type Transport interface {
	Send(ctx context.Context, to Recipient, subject, body string) error
}

// Notifier fans a notification about an order out to recipients
type Notifier interface {
	Notify(ctx context.Context, order *ordering.Order, recipients []Recipient, kind Kind) error
}
