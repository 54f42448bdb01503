package create_booking

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	OrderID        int64            // ID заказа
	ClientID       int64            // ID клиента
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Время начала, например "10:00"
	EndTime        types.TimeString // Время окончания, например "11:00"
	MarketMemberID *int64           // Специалист маркета (режим select)
}

// Slot один слот пакетного запроса
type Slot struct {
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	MarketMemberID *int64
}

// BatchRequest модель пакетного запроса на создание бронирований
type BatchRequest struct {
	OrderID  int64
	ClientID int64
	Slots    []Slot
}

// SlotError ошибка создания одного слота пакетного запроса
type SlotError struct {
	Index int   // позиция слота во входном списке
	Err   error // причина отказа
}

// BatchResponse результат пакетного запроса: созданные бронирования и
// ошибки по неудавшимся слотам, независимо друг от друга
type BatchResponse struct {
	Bookings []*Response
	Errors   []SlotError
}

// Response модель ответа с созданным бронированием
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
