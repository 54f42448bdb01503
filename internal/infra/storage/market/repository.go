package market

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

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с маркетами и членством заказов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория маркетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByOrderID получает маркеты, к которым прикреплён заказ,
// в порядке прикрепления. Порядок важен: фолбэк расписания берёт
// первый маркет с собственным расписанием.
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) ([]*domain.Market, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"m.id",
		"m.name",
		"m.weekly_schedule",
		"m.created_at",
		"m.updated_at",
	).
		From("markets m").
		Join("market_orders mo ON mo.market_id = m.id").
		Where(squirrel.Eq{"mo.order_id": orderID}).
		OrderBy("mo.position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	markets := make([]*domain.Market, 0)
	for rows.Next() {
		var market domain.Market
		var scheduleJSON []byte
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&market.ID,
			&market.Name,
			&scheduleJSON,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByOrderID - scan market: %v", ErrScanRow, err)
		}

		if len(scheduleJSON) > 0 {
			var schedule domain.WeeklySchedule
			if err := json.Unmarshal(scheduleJSON, &schedule); err != nil {
				return nil, fmt.Errorf("%w: GetByOrderID - decode schedule: %v", ErrScanRow, err)
			}
			market.WeeklySchedule = &schedule
		}

		market.CreatedAt = createdAt.Time
		market.UpdatedAt = updatedAt.Time

		markets = append(markets, &market)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - rows error: %v", ErrScanRow, err)
	}

	return markets, nil
}

// GetSiblingOrderIDs получает ID всех других заказов, прикреплённых к
// тем же маркетам, что и указанный заказ. Используется проверкой
// пересечений бронирований клиента внутри маркета.
func (r *Repository) GetSiblingOrderIDs(ctx context.Context, orderID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT sibling.order_id").
		From("market_orders own").
		Join("market_orders sibling ON sibling.market_id = own.market_id").
		Where(squirrel.Eq{"own.order_id": orderID}).
		Where(squirrel.NotEq{"sibling.order_id": orderID}).
		OrderBy("sibling.order_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSiblingOrderIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSiblingOrderIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	orderIDs := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: GetSiblingOrderIDs - scan order_id: %v", ErrScanRow, err)
		}
		orderIDs = append(orderIDs, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSiblingOrderIDs - rows error: %v", ErrScanRow, err)
	}

	return orderIDs, nil
}
