package update_booking

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// Request модель запроса на перенос бронирования. Незаполненные поля
// сохраняют текущие значения бронирования
type Request struct {
	BookingID int64             // ID бронирования
	ActorID   int64             // кто запрашивает перенос
	Date      *time.Time        // новая дата
	StartTime *types.TimeString // новое время начала
	EndTime   *types.TimeString // новое время окончания
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID             int64
	OrderID        int64
	ClientID       int64
	MarketMemberID *int64
	ScheduledDate  time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// fromDomain конвертирует доменную модель в ответ usecase
func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:             b.ID,
		OrderID:        b.OrderID,
		ClientID:       b.ClientID,
		MarketMemberID: b.MarketMemberID,
		ScheduledDate:  b.ScheduledDate,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
