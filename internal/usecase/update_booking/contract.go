package update_booking

import (
	"context"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetActiveByOrderAndDate(ctx context.Context, orderID int64, date time.Time) ([]*domain.Booking, error)
	GetActiveByClientAndDate(ctx context.Context, clientID int64, date time.Time, orderIDs []int64) ([]*domain.Booking, error)
	UpdateSlot(ctx context.Context, id int64, date time.Time, start, end string) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// MarketRepository интерфейс репозитория маркетов
type MarketRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) ([]*domain.Market, error)
	GetSiblingOrderIDs(ctx context.Context, orderID int64) ([]int64, error)
}

// SubscriptionClient интерфейс клиента SubscriptionService
type SubscriptionClient interface {
	HasFeature(ctx context.Context, userID int64, featureKey string) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
