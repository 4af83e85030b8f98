package order

import "errors"

var ErrInvalidStatus = errors.New("invalid order status")

type Status string

const (
	StatusInCart    Status = "IN_CART"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusInCart, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo encodes the one-way lifecycle: a cart completes, a
// completed order cancels, and cancelled is terminal.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusInCart:
		return target == StatusCompleted
	case StatusCompleted:
		return target == StatusCancelled
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
