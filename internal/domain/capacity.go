package domain

import "fmt"

// CapacityPolicy decides whether a candidate booking is admissible given
// the number of existing overlapping bookings in the same slot. One
// implementation exists per resource booking mode; all call sites go
// through CapacityPolicyFor instead of branching on the mode string.
type CapacityPolicy interface {
	// Admits reports whether a slot with the given number of existing
	// overlapping bookings accepts one more.
	Admits(overlapping int) bool
	// Capacity returns the number of simultaneous bookings a slot holds.
	Capacity() int
}

// exclusivePolicy is the select/auto policy: strict mutual exclusion.
// The two modes differ only in how the specialist is chosen and
// displayed, not in capacity arithmetic.
type exclusivePolicy struct{}

func (exclusivePolicy) Admits(overlapping int) bool { return overlapping == 0 }
func (exclusivePolicy) Capacity() int               { return 1 }

// multiPolicy admits bookings while the overlapping count stays below
// the order's required resource count.
type multiPolicy struct {
	required int
}

func (p multiPolicy) Admits(overlapping int) bool { return overlapping < p.required }
func (p multiPolicy) Capacity() int               { return p.required }

// CapacityPolicyFor builds the capacity policy for an order. A nil mode
// falls back to mutual exclusion. Multi mode with a non-positive
// required resource count is a configuration error.
func CapacityPolicyFor(order *Order) (CapacityPolicy, error) {
	if order.ResourceBookingMode == nil {
		return exclusivePolicy{}, nil
	}

	switch *order.ResourceBookingMode {
	case ModeSelect, ModeAuto:
		return exclusivePolicy{}, nil
	case ModeMulti:
		if order.RequiredResourceCount <= 0 {
			return nil, fmt.Errorf("multi mode requires a positive resource count, got %d", order.RequiredResourceCount)
		}
		return multiPolicy{required: order.RequiredResourceCount}, nil
	default:
		return nil, fmt.Errorf("unknown resource booking mode %q", *order.ResourceBookingMode)
	}
}
