package orders

import (
	errx "github.com/vancy-storefront/server/internal/core/error"
	"github.com/vancy-storefront/server/internal/storefront/model"
)

// Sequence is the admin-advanced fulfilment path.
var Sequence = []model.OrderStatus{
	model.StatusPending,
	model.StatusPaymentVerified,
	model.StatusProcessing,
	model.StatusPacked,
	model.StatusAwaitingPickup,
	model.StatusShipped,
	model.StatusInTransit,
	model.StatusOutForDelivery,
	model.StatusDelivered,
}

var position = func() map[model.OrderStatus]int {
	m := make(map[model.OrderStatus]int, len(Sequence))
	for i, s := range Sequence {
		m[s] = i
	}
	return m
}()

// Known reports whether s is one of the twelve order statuses.
func Known(s model.OrderStatus) bool {
	if _, ok := position[s]; ok {
		return true
	}
	switch s {
	case model.StatusCancelled, model.StatusRefundRequested, model.StatusRefunded:
		return true
	}
	return false
}

// All lists every status in display order.
func All() []model.OrderStatus {
	out := append([]model.OrderStatus(nil), Sequence...)
	return append(out, model.StatusCancelled, model.StatusRefundRequested, model.StatusRefunded)
}

// IsTerminal reports whether s can no longer be cancelled under the strict
// policy. Delivered and Refund Requested are terminal for the fulfilment
// flow; only the refund branch moves them on.
func IsTerminal(s model.OrderStatus) bool {
	switch s {
	case model.StatusDelivered, model.StatusCancelled, model.StatusRefundRequested, model.StatusRefunded:
		return true
	}
	return false
}

// Allowed returns the statuses reachable from s under the strict policy.
// Cancelled is reachable exactly from the non-terminal statuses.
func Allowed(s model.OrderStatus) []model.OrderStatus {
	var next []model.OrderStatus
	switch s {
	case model.StatusDelivered:
		next = []model.OrderStatus{model.StatusRefundRequested}
	case model.StatusRefundRequested:
		next = []model.OrderStatus{model.StatusRefunded}
	default:
		if i, ok := position[s]; ok {
			next = append(next, Sequence[i+1:]...)
		}
	}
	if Known(s) && !IsTerminal(s) {
		next = append(next, model.StatusCancelled)
	}
	return next
}

// Validate checks a status change under policy. Unknown target statuses are
// rejected under every policy.
func Validate(policy model.TransitionPolicy, from, to model.OrderStatus) error {
	if !Known(to) {
		return errx.Domainf(errx.ErrUnknownStatus, "Unknown order status %q.", to)
	}
	if policy != model.PolicyStrict {
		return nil
	}
	for _, s := range Allowed(from) {
		if s == to {
			return nil
		}
	}
	return errx.Domainf(errx.ErrIllegalTransition, "Cannot move order from %s to %s.", from, to)
}
