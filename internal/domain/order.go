package domain

import "time"

// OrderType distinguishes recurring bookable listings from one-time jobs.
type OrderType string

const (
	OrderTypeOneTime   OrderType = "one_time"
	OrderTypePermanent OrderType = "permanent"
)

// OrderStatus represents the lifecycle status of an order.
type OrderStatus string

const (
	OrderStatusOpen   OrderStatus = "open"
	OrderStatusActive OrderStatus = "active"
	OrderStatusPaused OrderStatus = "paused"
	OrderStatusClosed OrderStatus = "closed"
)

// ResourceBookingMode is the policy governing how many simultaneous
// bookings a single time slot admits.
type ResourceBookingMode string

const (
	ModeSelect ResourceBookingMode = "select" // один конкретный специалист
	ModeAuto   ResourceBookingMode = "auto"   // один любой специалист
	ModeMulti  ResourceBookingMode = "multi"  // до requiredResourceCount специалистов
)

// Order is the scheduling-relevant subset of a marketplace order.
// Orders are soft-deleted: once bookings reference them they are never
// physically removed.
type Order struct {
	ID                      int64
	OwnerID                 int64
	OrderType               OrderType
	Status                  OrderStatus
	WeeklySchedule          *WeeklySchedule
	LegacyAvailableDates    []string // устаревший формат "YYYY-MM-DD HH:MM-HH:MM"
	ResourceBookingMode     *ResourceBookingMode
	RequiredResourceCount   int // имеет смысл только для режима multi
	CheckinRequiresApproval bool

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBookable returns true if the order accepts new bookings.
func (o *Order) IsBookable() bool {
	if o.DeletedAt != nil {
		return false
	}
	if o.OrderType != OrderTypePermanent {
		return false
	}
	return o.Status == OrderStatusOpen || o.Status == OrderStatusActive
}

// UsesLegacyDates returns true if the order still carries the deprecated
// available-dates format instead of a weekly schedule.
func (o *Order) UsesLegacyDates() bool {
	return o.WeeklySchedule == nil && len(o.LegacyAvailableDates) > 0
}

// Market is a grouping of specialists/orders under one listing. A market
// may carry its own weekly schedule used as a fallback for orders
// without one.
type Market struct {
	ID             int64
	Name           string
	WeeklySchedule *WeeklySchedule

	CreatedAt time.Time
	UpdatedAt time.Time
}
