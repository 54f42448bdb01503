package update_order_schedule

import (
	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// Request модель запроса на правку расписания заказа. Заполняется ровно
// одно из полей NewSchedule и NewAvailableDates
type Request struct {
	OrderID           int64
	ActorID           int64
	NewSchedule       *domain.WeeklySchedule // недельное расписание
	NewAvailableDates []string               // устаревший список дат "YYYY-MM-DD HH:MM-HH:MM"
}

// Response модель ответа с итогами правки
type Response struct {
	OrderID        int64
	Changed        bool    // false при no-op (расписание не изменилось)
	CancelledIDs   []int64 // будущие бронирования, отменённые правкой
	BreakConflicts []int64 // бронирования, попавшие в новые перерывы (не отменяются)
}
