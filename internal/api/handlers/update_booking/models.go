package update_booking

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	updateBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/update_booking"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// UpdateBookingRequest HTTP request model. Незаполненные поля сохраняют
// текущие значения бронирования
type UpdateBookingRequest struct {
	Date      *string `json:"date,omitempty"`      // "2025-10-15"
	StartTime *string `json:"startTime,omitempty"` // "10:00"
	EndTime   *string `json:"endTime,omitempty"`   // "11:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64     `json:"id"`
	OrderID        int64     `json:"orderId"`
	ClientID       int64     `json:"clientId"`
	MarketMemberID *int64    `json:"marketMemberId,omitempty"`
	Date           string    `json:"date"`
	StartTime      string    `json:"startTime"`
	EndTime        string    `json:"endTime"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, actorID int64) (*updateBooking.Request, error) {
	req := &updateBooking.Request{
		BookingID: bookingID,
		ActorID:   actorID,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start := types.TimeString(*r.StartTime)
		req.StartTime = &start
	}

	if r.EndTime != nil {
		end := types.TimeString(*r.EndTime)
		req.EndTime = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		OrderID:        resp.OrderID,
		ClientID:       resp.ClientID,
		MarketMemberID: resp.MarketMemberID,
		Date:           resp.ScheduledDate.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		CreatedAt:      resp.CreatedAt,
		UpdatedAt:      resp.UpdatedAt,
	}
}
