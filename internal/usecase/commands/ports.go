package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderConfirmedEvent is the message published after an order is
// confirmed, for downstream consumers (fulfilment, mail).
type OrderConfirmedEvent struct {
	OrderID   int64     `json:"order_id"`
	UserID    uuid.UUID `json:"user_id"`
	OrderDate time.Time `json:"order_date"`
	BookIDs   []int64   `json:"book_ids"`
}

type OrderEventPublisher interface {
	PublishOrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error
}
