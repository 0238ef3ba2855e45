package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-ordering/models"
)

// StatusPolicy decides which status writes the lifecycle manager accepts.
type StatusPolicy string

const (
	// StatusPolicyPermissive accepts any enum value from any state.
	StatusPolicyPermissive StatusPolicy = "permissive"
	// StatusPolicyStrict follows NEW → PREPARING → READY → SERVED, with
	// CANCELLED reachable from every non-terminal state.
	StatusPolicyStrict StatusPolicy = "strict"
)

var forwardTransitions = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusNew:       models.OrderStatusPreparing,
	models.OrderStatusPreparing: models.OrderStatusReady,
	models.OrderStatusReady:     models.OrderStatusServed,
}

func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch StatusPolicy(s) {
	case StatusPolicyPermissive, StatusPolicyStrict:
		return StatusPolicy(s), nil
	}
	return "", fmt.Errorf("unknown order status policy %q", s)
}

// Allows reports whether an order in from may be moved to to. Re-applying the
// current status is always allowed.
func (p StatusPolicy) Allows(from, to models.OrderStatus) bool {
	if from == to || p != StatusPolicyStrict {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	if to == models.OrderStatusCancelled {
		return true
	}
	return forwardTransitions[from] == to
}

// NextStatus returns the forward step offered to staff for an order, if any.
func NextStatus(from models.OrderStatus) (models.OrderStatus, bool) {
	next, ok := forwardTransitions[from]
	return next, ok
}
