package create_booking

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	createBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/create_booking"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	OrderID        int64  `json:"orderId"`
	Date           string `json:"date"`      // "2025-10-15"
	StartTime      string `json:"startTime"` // "10:00"
	EndTime        string `json:"endTime"`   // "11:00"
	MarketMemberID *int64 `json:"marketMemberId,omitempty"`
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
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		OrderID:        r.OrderID,
		ClientID:       clientID,
		Date:           date,
		StartTime:      types.TimeString(r.StartTime),
		EndTime:        types.TimeString(r.EndTime),
		MarketMemberID: r.MarketMemberID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
