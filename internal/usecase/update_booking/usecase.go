package update_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	bookingRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/booking"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
)

// UseCase use case для переноса бронирования на другой слот
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	marketRepo   MarketRepository
	subsClient   SubscriptionClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	marketRepo MarketRepository,
	subsClient SubscriptionClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		marketRepo:   marketRepo,
		subsClient:   subsClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute переносит бронирование на новый слот. Конвейер проверок тот же,
// что и при создании, но само бронирование исключается из подсчёта
// пересечений и ёмкости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBooking: booking=%d, actor=%d", req.BookingID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 3. Завершённое или отменённое бронирование переносить нельзя
	if !booking.CanBeUpdated() {
		uc.logger.Warn("UpdateBooking: booking id=%d has status %s", booking.ID, booking.Status)
		return nil, ErrNotUpdatable
	}

	// 4. Получаем заказ
	order, err := uc.orderRepo.GetByID(ctx, booking.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("UpdateBooking: order id=%d not found", booking.OrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("UpdateBooking: failed to get order id=%d: %v", booking.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	// 5. Перенос доступен клиенту бронирования и владельцу заказа
	if req.ActorID != booking.ClientID && req.ActorID != order.OwnerID {
		uc.logger.Warn("UpdateBooking: actor=%d is neither client=%d nor owner=%d",
			req.ActorID, booking.ClientID, order.OwnerID)
		return nil, ErrAccessDenied
	}

	// 6. Собираем целевой слот и валидируем его
	date, start, end := mergeTarget(booking, req)

	if err := validateSlotTimes(start, end); err != nil {
		uc.logger.Warn("UpdateBooking: slot validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if isDateInPast(date, now) {
		uc.logger.Warn("UpdateBooking: date %s is in the past", date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 7. Заказ всё ещё должен принимать бронирования
	if !order.IsBookable() {
		uc.logger.Warn("UpdateBooking: order id=%d is not bookable (type=%s, status=%s)",
			order.ID, order.OrderType, order.Status)
		return nil, ErrOrderNotBookable
	}

	// 8. Проверяем подписку владельца заказа
	hasFeature, err := uc.subsClient.HasFeature(ctx, order.OwnerID, domain.FeatureResourceBooking)
	if err != nil {
		uc.logger.Error("UpdateBooking: failed to check subscription for owner=%d: %v", order.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to check subscription: %v", ErrInternal, err)
	}
	if !hasFeature {
		uc.logger.Warn("UpdateBooking: owner=%d has no %s feature", order.OwnerID, domain.FeatureResourceBooking)
		return nil, ErrFeatureUnavailable
	}

	// 9. Строим политику ёмкости
	policy, err := domain.CapacityPolicyFor(order)
	if err != nil {
		uc.logger.Warn("UpdateBooking: invalid mode config for order id=%d: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidModeConfig, err)
	}

	// 10. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Проверяем пересечения с бронированиями клиента на заказах
		// того же маркета, исключая само переносимое бронирование
		siblingIDs, err := uc.marketRepo.GetSiblingOrderIDs(txCtx, order.ID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get sibling orders: %v", err)
			return fmt.Errorf("%w: failed to get sibling orders: %v", ErrInternal, err)
		}

		siblingBookings, err := uc.bookingRepo.GetActiveByClientAndDate(txCtx, booking.ClientID, date, siblingIDs)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get client bookings: %v", err)
			return fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
		}

		if conflicts := domain.CountOverlapping(siblingBookings, start, end, booking.ID); conflicts > 0 {
			uc.logger.Warn("UpdateBooking: market conflict for client=%d: %d overlapping booking(s)",
				booking.ClientID, conflicts)
			return fmt.Errorf("%w: %d overlapping booking(s)", ErrMarketConflict, conflicts)
		}

		// 10.2. Разрешаем расписание на новую дату
		if order.UsesLegacyDates() {
			if err := validateLegacySlot(order.LegacyAvailableDates, date, start, end); err != nil {
				uc.logger.Warn("UpdateBooking: legacy slot check failed: %v", err)
				return err
			}
		} else {
			markets, err := uc.marketRepo.GetByOrderID(txCtx, order.ID)
			if err != nil {
				uc.logger.Error("UpdateBooking: failed to get markets: %v", err)
				return fmt.Errorf("%w: failed to get markets: %v", ErrInternal, err)
			}

			day, source := domain.ResolveDaySchedule(order, markets, date)
			uc.logger.Info("UpdateBooking: schedule resolved from %s for order=%d", source, order.ID)

			if err := validateSlotAgainstSchedule(day, date, start, end); err != nil {
				uc.logger.Warn("UpdateBooking: schedule check failed: %v", err)
				return err
			}
		}

		// 10.3. Проверяем ёмкость нового слота, исключая само бронирование
		existing, err := uc.bookingRepo.GetActiveByOrderAndDate(txCtx, order.ID, date)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		overlapping := domain.CountOverlapping(existing, start, end, booking.ID)
		if !policy.Admits(overlapping) {
			uc.logger.Warn("UpdateBooking: slot full, %d/%d spots taken", overlapping, policy.Capacity())
			return fmt.Errorf("%w: %d of %d spots taken", ErrSlotNotAvailable, overlapping, policy.Capacity())
		}

		// 10.4. Переносим бронирование
		if err := uc.bookingRepo.UpdateSlot(txCtx, booking.ID, date, start.String(), end.String()); err != nil {
			uc.logger.Error("UpdateBooking: failed to update booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	booking.ScheduledDate = date
	booking.StartTime = start
	booking.EndTime = end

	uc.logger.Info("UpdateBooking: booking id=%d moved to %s %s-%s",
		booking.ID, date.Format(domain.DateFormat), start, end)

	return fromDomain(booking), nil
}
