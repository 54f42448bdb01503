package get_available_slots

import (
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// Request модель запроса доступности заказа на период
type Request struct {
	OrderID        int64
	StartDate      time.Time
	EndDate        time.Time
	MarketMemberID *int64 // фильтр по специалисту маркета (режим select)
}

// BookedRange занятый интервал дня. Клиент видит только границы, без
// деталей чужого бронирования
type BookedRange struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Day доступность одного календарного дня
type Day struct {
	Date      string                // YYYY-MM-DD
	Available bool                  // день открыт для бронирования
	Source    domain.ScheduleSource // уровень, с которого взято расписание
	WorkHours *domain.TimeRange     // рабочие часы, nil для закрытого дня
	Breaks    []domain.TimeRange    // активные перерывы с учётом исключений
	Bookings  []BookedRange         // занятые интервалы
	Capacity  int                   // одновременных бронирований на слот

	// ListedSlots заполняется для заказов с устаревшим списком дат:
	// явно перечисленные слоты вместо рабочих часов
	ListedSlots []domain.TimeRange
}

// Response модель ответа с доступностью по дням периода
type Response struct {
	OrderID int64
	Days    []Day
}
