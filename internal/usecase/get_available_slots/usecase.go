package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// UseCase use case получения доступности заказа по дням периода
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	marketRepo   MarketRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	marketRepo MarketRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		marketRepo:   marketRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает для каждого дня периода рабочие часы, активные
// перерывы, занятые интервалы и ёмкость слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: order=%d, range=%s..%s",
		req.OrderID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем заказ
	order, err := uc.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("GetAvailableSlots: order id=%d not found", req.OrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get order id=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	if !order.IsBookable() {
		uc.logger.Warn("GetAvailableSlots: order id=%d is not bookable", order.ID)
		return nil, ErrOrderNotBookable
	}

	policy, err := domain.CapacityPolicyFor(order)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid mode config for order id=%d: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidModeConfig, err)
	}

	// 3. Маркеты нужны один раз на весь период
	var markets []*domain.Market
	if !order.UsesLegacyDates() {
		markets, err = uc.marketRepo.GetByOrderID(ctx, order.ID)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get markets: %v", err)
			return nil, fmt.Errorf("%w: failed to get markets: %v", ErrInternal, err)
		}
	}

	now := uc.timeProvider.Now()
	resp := &Response{OrderID: order.ID}

	// 4. Обходим дни периода
	for date := domain.DateOnly(req.StartDate); !date.After(domain.DateOnly(req.EndDate)); date = date.AddDate(0, 0, 1) {
		day, err := uc.buildDay(ctx, order, markets, policy, date, now, req.MarketMemberID)
		if err != nil {
			return nil, err
		}
		resp.Days = append(resp.Days, day)
	}

	uc.logger.Info("GetAvailableSlots: order=%d, %d day(s) resolved", order.ID, len(resp.Days))

	return resp, nil
}

// buildDay собирает доступность одного календарного дня
func (uc *UseCase) buildDay(
	ctx context.Context,
	order *domain.Order,
	markets []*domain.Market,
	policy domain.CapacityPolicy,
	date time.Time,
	now time.Time,
	memberID *int64,
) (Day, error) {
	day := Day{
		Date:     date.Format(domain.DateFormat),
		Capacity: policy.Capacity(),
	}

	// Прошедшие дни всегда недоступны
	past := domain.DateOnly(date).Before(domain.DateOnly(now))

	if order.UsesLegacyDates() {
		day.Source = domain.ScheduleSourceOrder
		day.ListedSlots = legacySlotsFor(order.LegacyAvailableDates, date)
		day.Available = !past && len(day.ListedSlots) > 0
	} else {
		schedule, source := domain.ResolveDaySchedule(order, markets, date)
		day.Source = source
		day.Available = !past && schedule.Bookable()
		if schedule.Bookable() {
			day.WorkHours = schedule.WorkHours
			day.Breaks = schedule.ActiveBreaksOn(date)
		}
	}

	if !day.Available {
		return day, nil
	}

	bookings, err := uc.bookingRepo.GetActiveByOrderAndDate(ctx, order.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for %s: %v", day.Date, err)
		return Day{}, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if memberID != nil && (b.MarketMemberID == nil || *b.MarketMemberID != *memberID) {
			continue
		}
		day.Bookings = append(day.Bookings, BookedRange{StartTime: b.StartTime, EndTime: b.EndTime})
	}

	return day, nil
}

// legacySlotsFor выбирает из устаревшего списка дат слоты на указанный
// день. Записи чужих дат и нечитаемые записи пропускаются
func legacySlotsFor(dates []string, date time.Time) []domain.TimeRange {
	prefix := date.Format(domain.DateFormat) + " "

	var slots []domain.TimeRange
	for _, raw := range dates {
		entry := strings.TrimSpace(raw)
		if !strings.HasPrefix(entry, prefix) {
			continue
		}

		parts := strings.SplitN(strings.TrimPrefix(entry, prefix), "-", 2)
		if len(parts) != 2 {
			continue
		}

		tr := domain.TimeRange{
			Start: types.TimeString(parts[0]),
			End:   types.TimeString(parts[1]),
		}
		if tr.Validate() != nil {
			continue
		}
		slots = append(slots, tr)
	}

	return slots
}
