package update_order_schedule

import (
	"errors"
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
	updateOrderSchedule "github.com/usluga-market/MPB-BookingService/internal/usecase/update_order_schedule"
)

const (
	msgUnauthorized    = "не указан пользователь"
	msgInvalidOrderID  = "некорректный ID заказа"
	msgInvalidBody     = "некорректное тело запроса"
	msgInvalidInput    = "некорректные данные расписания"
	msgInvalidSchedule = "некорректное расписание"
	msgOrderNotFound   = "заказ не найден"
	msgForbidden       = "доступ запрещен"
	msgPastConflict    = "изменение затрагивает прошедшие или сегодняшние бронирования"
)

type Handler struct {
	useCase UpdateOrderScheduleUseCase
	logger  Logger
}

func NewHandler(useCase UpdateOrderScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/orders/{orderId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, err := handlers.ActorID(r)
	if err != nil {
		h.logger.Warn("PUT /orders/{id}/schedule - Missing actor: %v", err)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("PUT /orders/{id}/schedule - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /orders/{id}/schedule - Invalid request body: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(orderID, actorID))
	if err != nil {
		switch {
		case errors.Is(err, updateOrderSchedule.ErrInvalidInput):
			h.logger.Warn("PUT /orders/{id}/schedule - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateOrderSchedule.ErrInvalidSchedule):
			h.logger.Warn("PUT /orders/{id}/schedule - Invalid schedule: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, updateOrderSchedule.ErrOrderNotFound):
			h.logger.Warn("PUT /orders/{id}/schedule - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, updateOrderSchedule.ErrAccessDenied):
			h.logger.Warn("PUT /orders/{id}/schedule - Access denied: order_id=%d, user_id=%d", orderID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateOrderSchedule.ErrPastBookingsConflict):
			h.logger.Warn("PUT /orders/{id}/schedule - Past bookings conflict: order_id=%d, error=%v", orderID, err)
			handlers.RespondConflict(w, msgPastConflict)

		default:
			h.logger.Error("PUT /orders/{id}/schedule - Failed to update schedule: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /orders/{id}/schedule - Schedule updated successfully: order_id=%d, user_id=%d, changed=%v, cancelled=%d, break_conflicts=%d",
		orderID, actorID, resp.Changed, len(resp.CancelledIDs), len(resp.BreakConflicts))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
