package update_order_schedule

import (
	"github.com/usluga-market/MPB-BookingService/internal/domain"
	updateOrderSchedule "github.com/usluga-market/MPB-BookingService/internal/usecase/update_order_schedule"
)

// UpdateScheduleRequest HTTP request model. Заполняется ровно одно из
// двух полей: weeklySchedule для расписания по дням недели либо
// availableDates для устаревшего списка дат
type UpdateScheduleRequest struct {
	WeeklySchedule *domain.WeeklySchedule `json:"weeklySchedule,omitempty"`
	AvailableDates []string               `json:"availableDates,omitempty"`
}

// UpdateScheduleResponse HTTP response model
type UpdateScheduleResponse struct {
	OrderID           int64   `json:"orderId"`
	Changed           bool    `json:"changed"`
	CancelledBookings []int64 `json:"cancelledBookings"`
	BreakConflicts    []int64 `json:"breakConflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateScheduleRequest) ToUseCaseRequest(orderID, actorID int64) *updateOrderSchedule.Request {
	return &updateOrderSchedule.Request{
		OrderID:           orderID,
		ActorID:           actorID,
		NewSchedule:       r.WeeklySchedule,
		NewAvailableDates: r.AvailableDates,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateOrderSchedule.Response) *UpdateScheduleResponse {
	out := &UpdateScheduleResponse{
		OrderID:           resp.OrderID,
		Changed:           resp.Changed,
		CancelledBookings: resp.CancelledIDs,
		BreakConflicts:    resp.BreakConflicts,
	}
	if out.CancelledBookings == nil {
		out.CancelledBookings = []int64{}
	}
	if out.BreakConflicts == nil {
		out.BreakConflicts = []int64{}
	}
	return out
}
