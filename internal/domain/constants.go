package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default work-hour window used when neither the order nor any of its
// markets define a weekly schedule.
const (
	DefaultWorkDayStart = "00:00"
	DefaultWorkDayEnd   = "23:59"
)

// FeatureResourceBooking is the subscription feature key that gates
// booking creation against the order owner's active subscription.
const FeatureResourceBooking = "resource_booking"

// Business validation constants
const (
	MaxSlotRangeDays            = 31  // максимальный период запроса доступных слотов
	MaxCancellationReasonLength = 500 // максимальная длина причины отмены
)

// InactiveStatuses список статусов, не занимающих время в расписании.
// Используется при подсчёте пересечений и проверке конфликтов.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}

// ActiveStatuses список статусов, занимающих время в расписании.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ImpactStatuses список статусов, учитываемых при мутации расписания
// заказа: отменённые и завершённые брони пересчёту не подлежат.
var ImpactStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
