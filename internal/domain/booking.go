package domain

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts a raw string into a BookingStatus.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// Booking represents one committed or requested occupation of time on an
// order. Bookings are never physically deleted, only status-transitioned.
type Booking struct {
	ID             int64
	OrderID        int64
	ClientID       int64
	MarketMemberID *int64 // специалист внутри маркета, актуально для режима select
	ScheduledDate  time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         BookingStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its time slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsFinal returns true if the booking is in a terminal state.
func (b *Booking) IsFinal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled.
// Cancelling an already-cancelled or completed booking is rejected.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeUpdated returns true if the booking slot can still be moved.
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status machine admits a move from
// the booking's current status to next:
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
//	completed, cancelled are terminal
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// InitialStatus returns the creation status for a booking on the given
// order: pending when check-in approval is required, confirmed otherwise.
func InitialStatus(order *Order) BookingStatus {
	if order.CheckinRequiresApproval {
		return StatusPending
	}
	return StatusConfirmed
}

// SameDate reports whether both dates fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// OrderBookingsFilter фильтр для получения бронирований заказа
type OrderBookingsFilter struct {
	OrderID         int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые бронирования
}
