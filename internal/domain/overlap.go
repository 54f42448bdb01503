package domain

import "github.com/usluga-market/MPB-BookingService/pkg/types"

// Overlaps is the single overlap predicate for the whole engine: two
// half-open ranges [s1,e1) and [s2,e2) intersect iff s1 < e2 && e1 > s2.
// Adjacent ranges (one ends exactly where the other starts) do not
// overlap. Booking-vs-booking, booking-vs-break and cross-order market
// conflict checks must all go through this function.
func Overlaps(s1, e1, s2, e2 types.TimeString) bool {
	return s1.IsBefore(e2) && e1.IsAfter(s2)
}

// RangesOverlap applies Overlaps to two TimeRange values.
func RangesOverlap(a, b TimeRange) bool {
	return Overlaps(a.Start, a.End, b.Start, b.End)
}

// BookingOverlapsRange reports whether a booking's slot intersects asked
// [start, end) on its own date.
func BookingOverlapsRange(b *Booking, start, end types.TimeString) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// CountOverlapping counts active bookings whose slots intersect the
// candidate range, skipping the booking identified by excludeID (zero
// means no exclusion; used when re-validating an update against the
// booking's own previous slot).
func CountOverlapping(bookings []*Booking, start, end types.TimeString, excludeID int64) int {
	count := 0
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excludeID != 0 && b.ID == excludeID {
			continue
		}
		if BookingOverlapsRange(b, start, end) {
			count++
		}
	}
	return count
}
