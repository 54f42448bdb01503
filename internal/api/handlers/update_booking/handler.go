package update_booking

import (
	"errors"
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
	updateBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/update_booking"
)

const (
	msgUnauthorized       = "не указан пользователь"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные переноса"
	msgNotFound           = "бронирование не найдено"
	msgOrderNotFound      = "заказ не найден"
	msgForbidden          = "доступ запрещен"
	msgNotUpdatable       = "бронирование нельзя перенести"
	msgOrderNotBookable   = "заказ не принимает бронирования"
	msgFeatureUnavailable = "подписка владельца не включает бронирование"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgMarketConflict     = "у вас уже есть бронирование на это время в этом маркете"
	msgDayUnavailable     = "выбранный день недоступен для бронирования"
	msgOutsideWorkHours   = "слот выходит за рабочие часы"
	msgBreakOverlap       = "слот пересекается с перерывом"
	msgSlotNotListed      = "слот отсутствует в списке доступных дат"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, err := handlers.ActorID(r)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Missing actor: %v", err)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actorID)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrOrderNotFound):
			h.logger.Warn("PATCH /bookings/{id} - Order not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgOrderNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrNotUpdatable):
			handlers.RespondBadRequest(w, msgNotUpdatable)

		case errors.Is(err, updateBooking.ErrOrderNotBookable):
			handlers.RespondBadRequest(w, msgOrderNotBookable)

		case errors.Is(err, updateBooking.ErrFeatureUnavailable):
			handlers.RespondForbidden(w, msgFeatureUnavailable)

		case errors.Is(err, updateBooking.ErrInvalidModeConfig):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, updateBooking.ErrMarketConflict):
			handlers.RespondConflict(w, msgMarketConflict)

		case errors.Is(err, updateBooking.ErrDayUnavailable):
			handlers.RespondBadRequest(w, msgDayUnavailable)

		case errors.Is(err, updateBooking.ErrOutsideWorkHours):
			handlers.RespondBadRequest(w, msgOutsideWorkHours)

		case errors.Is(err, updateBooking.ErrBreakOverlap):
			handlers.RespondBadRequest(w, msgBreakOverlap)

		case errors.Is(err, updateBooking.ErrSlotNotListed):
			handlers.RespondBadRequest(w, msgSlotNotListed)

		case errors.Is(err, updateBooking.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /bookings/{id} - Slot not available: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /bookings/{id} - Failed to update booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d",
		bookingID, actorID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
