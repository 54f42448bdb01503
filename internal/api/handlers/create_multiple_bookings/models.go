package create_multiple_bookings

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	createBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/create_booking"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// SlotRequest один слот пакетного запроса
type SlotRequest struct {
	Date           string `json:"date"`      // "2025-10-15"
	StartTime      string `json:"startTime"` // "10:00"
	EndTime        string `json:"endTime"`   // "11:00"
	MarketMemberID *int64 `json:"marketMemberId,omitempty"`
}

// CreateMultipleBookingsRequest HTTP request model
type CreateMultipleBookingsRequest struct {
	OrderID int64         `json:"orderId"`
	Slots   []SlotRequest `json:"slots"`
}

// BookingResponse HTTP модель созданного бронирования
type BookingResponse struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"orderId"`
	ClientID  int64  `json:"clientId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
}

// SlotErrorResponse исход неудавшегося слота
type SlotErrorResponse struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// CreateMultipleBookingsResponse HTTP response model
type CreateMultipleBookingsResponse struct {
	Bookings []BookingResponse   `json:"bookings"`
	Errors   []SlotErrorResponse `json:"errors"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateMultipleBookingsRequest) ToUseCaseRequest(clientID int64) (*createBooking.BatchRequest, error) {
	req := &createBooking.BatchRequest{
		OrderID:  r.OrderID,
		ClientID: clientID,
		Slots:    make([]createBooking.Slot, 0, len(r.Slots)),
	}

	for _, slot := range r.Slots {
		date, err := time.Parse(domain.DateFormat, slot.Date)
		if err != nil {
			return nil, err
		}
		req.Slots = append(req.Slots, createBooking.Slot{
			Date:           date,
			StartTime:      types.TimeString(slot.StartTime),
			EndTime:        types.TimeString(slot.EndTime),
			MarketMemberID: slot.MarketMemberID,
		})
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.BatchResponse) *CreateMultipleBookingsResponse {
	out := &CreateMultipleBookingsResponse{
		Bookings: make([]BookingResponse, 0, len(resp.Bookings)),
		Errors:   make([]SlotErrorResponse, 0, len(resp.Errors)),
	}

	for _, b := range resp.Bookings {
		out.Bookings = append(out.Bookings, BookingResponse{
			ID:        b.ID,
			OrderID:   b.OrderID,
			ClientID:  b.ClientID,
			Date:      b.ScheduledDate.Format(domain.DateFormat),
			StartTime: b.StartTime.String(),
			EndTime:   b.EndTime.String(),
			Status:    b.Status,
		})
	}

	for _, e := range resp.Errors {
		out.Errors = append(out.Errors, SlotErrorResponse{
			Index: e.Index,
			Error: e.Err.Error(),
		})
	}

	return out
}
