package create_booking

import (
	"errors"
	"net/http"

	"github.com/usluga-market/MPB-BookingService/internal/api/handlers"
	createBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/create_booking"
)

const (
	msgUnauthorized       = "не указан пользователь"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные бронирования"
	msgOrderNotFound      = "заказ не найден"
	msgOrderNotBookable   = "заказ не принимает бронирования"
	msgFeatureUnavailable = "подписка владельца не включает бронирование"
	msgInvalidModeConfig  = "некорректная конфигурация режима бронирования"
	msgInvalidBookingDate = "дата бронирования в прошлом"
	msgMarketConflict     = "у вас уже есть бронирование на это время в этом маркете"
	msgDayUnavailable     = "выбранный день недоступен для бронирования"
	msgOutsideWorkHours   = "слот выходит за рабочие часы"
	msgBreakOverlap       = "слот пересекается с перерывом"
	msgSlotNotListed      = "слот отсутствует в списке доступных дат"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.ActorID(r)
	if err != nil {
		h.logger.Warn("POST /bookings - Missing actor: %v", err)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		respondUseCaseError(w, h.logger, &req, clientID, err)
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, client_id=%d, order_id=%d",
		result.ID, clientID, req.OrderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// respondUseCaseError переводит ошибки use case в HTTP статусы
func respondUseCaseError(w http.ResponseWriter, logger Logger, req *CreateBookingRequest, clientID int64, err error) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		logger.Warn("POST /bookings - Invalid input: client_id=%d, error=%v", clientID, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, createBooking.ErrOrderNotFound):
		logger.Warn("POST /bookings - Order not found: order_id=%d", req.OrderID)
		handlers.RespondNotFound(w, msgOrderNotFound)

	case errors.Is(err, createBooking.ErrOrderNotBookable):
		logger.Warn("POST /bookings - Order not bookable: order_id=%d", req.OrderID)
		handlers.RespondBadRequest(w, msgOrderNotBookable)

	case errors.Is(err, createBooking.ErrFeatureUnavailable):
		logger.Warn("POST /bookings - Feature unavailable: order_id=%d", req.OrderID)
		handlers.RespondForbidden(w, msgFeatureUnavailable)

	case errors.Is(err, createBooking.ErrInvalidModeConfig):
		logger.Warn("POST /bookings - Invalid mode config: order_id=%d", req.OrderID)
		handlers.RespondBadRequest(w, msgInvalidModeConfig)

	case errors.Is(err, createBooking.ErrInvalidDate):
		logger.Warn("POST /bookings - Date in the past: client_id=%d, date=%s", clientID, req.Date)
		handlers.RespondBadRequest(w, msgInvalidBookingDate)

	case errors.Is(err, createBooking.ErrMarketConflict):
		logger.Warn("POST /bookings - Market conflict: client_id=%d, order_id=%d", clientID, req.OrderID)
		handlers.RespondConflict(w, msgMarketConflict)

	case errors.Is(err, createBooking.ErrDayUnavailable):
		logger.Warn("POST /bookings - Day unavailable: order_id=%d, date=%s", req.OrderID, req.Date)
		handlers.RespondBadRequest(w, msgDayUnavailable)

	case errors.Is(err, createBooking.ErrOutsideWorkHours):
		logger.Warn("POST /bookings - Outside work hours: order_id=%d, slot=%s-%s", req.OrderID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgOutsideWorkHours)

	case errors.Is(err, createBooking.ErrBreakOverlap):
		logger.Warn("POST /bookings - Break overlap: order_id=%d, slot=%s-%s", req.OrderID, req.StartTime, req.EndTime)
		handlers.RespondBadRequest(w, msgBreakOverlap)

	case errors.Is(err, createBooking.ErrSlotNotListed):
		logger.Warn("POST /bookings - Slot not listed: order_id=%d, date=%s", req.OrderID, req.Date)
		handlers.RespondBadRequest(w, msgSlotNotListed)

	case errors.Is(err, createBooking.ErrSlotNotAvailable):
		logger.Warn("POST /bookings - Slot not available: client_id=%d, order_id=%d", clientID, req.OrderID)
		handlers.RespondConflict(w, msgSlotNotAvailable)

	default:
		logger.Error("POST /bookings - Failed to create booking: client_id=%d, order_id=%d, error=%v",
			clientID, req.OrderID, err)
		handlers.RespondInternalError(w)
	}
}
