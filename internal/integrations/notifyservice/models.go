package notifyservice

// Kind классифицирует уведомление для шаблонизации на стороне
// NotifyService
type Kind string

const (
	KindBookingCreated       Kind = "booking_created"
	KindBookingCancelled     Kind = "booking_cancelled"
	KindBookingStatusChanged Kind = "booking_status_changed"
	// KindScheduleConflict: будущее бронирование отменено из-за
	// изменения расписания заказа
	KindScheduleConflict Kind = "booking_schedule_conflict"
	// KindBreakConflict: бронирование попало в новый перерыв,
	// но не отменено
	KindBreakConflict Kind = "booking_break_conflict"
)

// Notification модель запроса на отправку уведомления
type Notification struct {
	EventID string                 `json:"eventId"`
	UserID  int64                  `json:"userId"`
	Kind    Kind                   `json:"kind"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}
