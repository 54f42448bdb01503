package create_multiple_bookings

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
	msgInvalidInput       = "некорректные данные пакетного запроса"
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

// Handle POST /api/v1/bookings/batch
// Исходы слотов независимы: ответ 200 содержит и созданные бронирования,
// и ошибки по неудавшимся слотам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.ActorID(r)
	if err != nil {
		h.logger.Warn("POST /bookings/batch - Missing actor: %v", err)
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateMultipleBookingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/batch - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /bookings/batch - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.ExecuteBatch(r.Context(), useCaseReq)
	if err != nil {
		if errors.Is(err, createBooking.ErrInvalidInput) {
			h.logger.Warn("POST /bookings/batch - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		h.logger.Error("POST /bookings/batch - Failed: client_id=%d, order_id=%d, error=%v",
			clientID, req.OrderID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /bookings/batch - Done: client_id=%d, order_id=%d, created=%d, failed=%d",
		clientID, req.OrderID, len(result.Bookings), len(result.Errors))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
