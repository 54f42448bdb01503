package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/dbmetrics"
	"github.com/usluga-market/MPB-BookingService/pkg/psqlbuilder"
)

var orderColumns = []string{
	"id",
	"owner_id",
	"order_type",
	"status",
	"weekly_schedule",
	"legacy_available_dates",
	"resource_booking_mode",
	"required_resource_count",
	"checkin_requires_approval",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заказами
// Расписания хранятся в JSONB-колонках и (де)сериализуются на границе
// репозитория, доменный слой видит только структуры
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает заказ по ID. Мягко удалённые заказы возвращаются:
// на них могут ссылаться существующие бронирования, решение об отказе
// принимает вызывающий слой через Order.IsBookable.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order: %v", ErrScanRow, err)
	}

	return order, nil
}

// GetByIDForUpdate получает заказ по ID с блокировкой строки.
// Используется внутри транзакции мутации расписания, чтобы
// конкурирующие правки сериализовались.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(orderColumns...).
		From("orders").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan order: %v", ErrScanRow, err)
	}

	return order, nil
}

// UpdateSchedule записывает новое недельное расписание заказа.
// Передача nil очищает расписание (заказ переходит на фолбэк маркета).
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, schedule *domain.WeeklySchedule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	scheduleJSON, err := encodeJSON(schedule)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - encode schedule: %v", ErrEncodeSchedule, err)
	}

	query, args, err := psqlbuilder.Update("orders").
		Set("weekly_schedule", scheduleJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// UpdateLegacyDates записывает список доступных дат в устаревшем формате
func (r *Repository) UpdateLegacyDates(ctx context.Context, id int64, dates []string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	datesJSON, err := encodeJSON(dates)
	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyDates - encode dates: %v", ErrEncodeSchedule, err)
	}

	query, args, err := psqlbuilder.Update("orders").
		Set("legacy_available_dates", datesJSON).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyDates - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyDates - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateLegacyDates - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// encodeJSON сериализует значение для JSONB-колонки, nil остаётся NULL
func encodeJSON(v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case *domain.WeeklySchedule:
		if val == nil {
			return nil, nil
		}
	case []string:
		if val == nil {
			return nil, nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOrder сканирует строку результата в доменную модель заказа
func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var scheduleJSON, datesJSON []byte
	var mode sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.OwnerID,
		&order.OrderType,
		&order.Status,
		&scheduleJSON,
		&datesJSON,
		&mode,
		&order.RequiredResourceCount,
		&order.CheckinRequiresApproval,
		&order.DeletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(scheduleJSON) > 0 {
		var schedule domain.WeeklySchedule
		if err := json.Unmarshal(scheduleJSON, &schedule); err != nil {
			return nil, fmt.Errorf("decode weekly schedule: %v", err)
		}
		order.WeeklySchedule = &schedule
	}

	if len(datesJSON) > 0 {
		if err := json.Unmarshal(datesJSON, &order.LegacyAvailableDates); err != nil {
			return nil, fmt.Errorf("decode legacy available dates: %v", err)
		}
	}

	if mode.Valid {
		m := domain.ResourceBookingMode(mode.String)
		order.ResourceBookingMode = &m
	}

	order.CreatedAt = createdAt.Time
	order.UpdatedAt = updatedAt.Time

	return &order, nil
}
