package get_order_bookings

import (
	"errors"
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
	"github.com/usluga-market/MPB-BookingService/internal/service/bookings"
)

const (
	msgUnauthorized   = "не указан пользователь"
	msgInvalidOrderID = "некорректный ID заказа"
	msgInvalidQuery   = "некорректные параметры фильтра"
	msgInvalidStatus  = "некорректный статус бронирования"
	msgOrderNotFound  = "заказ не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/orders/{orderId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, err := handlers.ActorID(r)
	if err != nil {
		h.logger.Warn("GET /orders/{id}/bookings - Missing actor: %v", err)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	orderID, err := handlers.PathID(r, "orderId")
	if err != nil {
		h.logger.Warn("GET /orders/{id}/bookings - Invalid order ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrderID)
		return
	}

	req, err := parseQuery(r.URL.Query(), orderID, actorID)
	if err != nil {
		h.logger.Warn("GET /orders/{id}/bookings - Invalid query: order_id=%d, error=%v", orderID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetOrderBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOrderNotFound):
			h.logger.Warn("GET /orders/{id}/bookings - Order not found: order_id=%d", orderID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /orders/{id}/bookings - Access denied: order_id=%d, user_id=%d", orderID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /orders/{id}/bookings - Invalid status filter: order_id=%d", orderID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /orders/{id}/bookings - Failed to list bookings: order_id=%d, error=%v", orderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /orders/{id}/bookings - Bookings listed successfully: order_id=%d, user_id=%d, count=%d",
		orderID, actorID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
