package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
	getAvailableSlots "github.com/usluga-market/MPB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidOrderID   = "некорректный ID заказа"
	msgInvalidQuery     = "некорректные параметры запроса"
	msgRangeTooWide     = "диапазон дат не должен превышать месяц"
	msgOrderNotFound    = "заказ не найден"
	msgOrderNotBookable = "заказ не принимает бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /orders/{id}/slots - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	req, err := parseQuery(r.URL.Query(), orderID)
	if err != nil {
		h.logger.Warn("GET /orders/{id}/slots - Invalid query: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /orders/{id}/slots - Invalid input: order_id=%d, error=%v", orderID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		case errors.Is(err, getAvailableSlots.ErrRangeTooWide):
			h.logger.Warn("GET /orders/{id}/slots - Range too wide: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlots.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id}/slots - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, getAvailableSlots.ErrOrderNotBookable):
			h.logger.Warn("GET /orders/{id}/slots - Order not bookable: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgOrderNotBookable)

		case errors.Is(err, getAvailableSlots.ErrInvalidModeConfig):
			h.logger.Warn("GET /orders/{id}/slots - Invalid mode config: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgOrderNotBookable)

		default:
			h.logger.Error("GET /orders/{id}/slots - Failed to compute availability: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/{id}/slots - Availability computed successfully: order_id=%d, days=%d",
		orderID, len(resp.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
