package get_available_slots

import (
	"context"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByOrderAndDate(ctx context.Context, orderID int64, date time.Time) ([]*domain.Booking, error)
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// MarketRepository интерфейс репозитория маркетов
type MarketRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) ([]*domain.Market, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
