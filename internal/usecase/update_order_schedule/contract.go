package update_order_schedule

import (
	"context"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetImpactedByOrder(ctx context.Context, orderID int64) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason *string) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	UpdateSchedule(ctx context.Context, id int64, schedule *domain.WeeklySchedule) error
	UpdateLegacyDates(ctx context.Context, id int64, dates []string) error
}

// Notifier интерфейс отправки уведомлений. Ошибки отправки не влияют
// на результат правки расписания.
type Notifier interface {
	Notify(ctx context.Context, userID int64, kind string, title, message string, payload map[string]interface{}) error
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
