package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
	"github.com/usluga-market/MPB-BookingService/internal/integrations/notifyservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	marketRepo   MarketRepository
	subsClient   SubscriptionClient
	notifier     Notifier
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
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		marketRepo:   marketRepo,
		subsClient:   subsClient,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Все проверки и запись выполняются в одной сериализуемой транзакции,
// чтобы два конкурирующих запроса на пересекающиеся слоты не прошли оба
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: order=%d, client=%d, date=%s, slot=%s-%s",
		req.OrderID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 4. Получаем заказ
	order, err := uc.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			uc.logger.Warn("CreateBooking: order id=%d not found", req.OrderID)
			return nil, ErrOrderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get order id=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
	}

	// 5. Заказ должен принимать бронирования (permanent + open/active)
	if !order.IsBookable() {
		uc.logger.Warn("CreateBooking: order id=%d is not bookable (type=%s, status=%s)",
			order.ID, order.OrderType, order.Status)
		return nil, ErrOrderNotBookable
	}

	// 6. Проверяем подписку владельца заказа
	hasFeature, err := uc.subsClient.HasFeature(ctx, order.OwnerID, domain.FeatureResourceBooking)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check subscription for owner=%d: %v", order.OwnerID, err)
		return nil, fmt.Errorf("%w: failed to check subscription: %v", ErrInternal, err)
	}
	if !hasFeature {
		uc.logger.Warn("CreateBooking: owner=%d has no %s feature", order.OwnerID, domain.FeatureResourceBooking)
		return nil, ErrFeatureUnavailable
	}

	// 7. Строим политику ёмкости (ошибка конфигурации режима multi
	// обнаруживается до транзакции)
	policy, err := domain.CapacityPolicyFor(order)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid mode config for order id=%d: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidModeConfig, err)
	}

	var result *domain.Booking

	// 8. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Проверяем пересечения с бронированиями клиента на заказах
		// того же маркета
		siblingIDs, err := uc.marketRepo.GetSiblingOrderIDs(txCtx, order.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get sibling orders: %v", err)
			return fmt.Errorf("%w: failed to get sibling orders: %v", ErrInternal, err)
		}

		siblingBookings, err := uc.bookingRepo.GetActiveByClientAndDate(txCtx, req.ClientID, req.Date, siblingIDs)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get client bookings: %v", err)
			return fmt.Errorf("%w: failed to get client bookings: %v", ErrInternal, err)
		}

		if err := checkMarketConflict(siblingBookings, req.StartTime, req.EndTime, 0); err != nil {
			uc.logger.Warn("CreateBooking: market conflict for client=%d: %v", req.ClientID, err)
			return err
		}

		// 8.2. Разрешаем расписание на дату: заказ -> маркеты -> дефолт
		if order.UsesLegacyDates() {
			if err := validateLegacySlot(order.LegacyAvailableDates, req.Date, req.StartTime, req.EndTime); err != nil {
				uc.logger.Warn("CreateBooking: legacy slot check failed: %v", err)
				return err
			}
		} else {
			markets, err := uc.marketRepo.GetByOrderID(txCtx, order.ID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get markets: %v", err)
				return fmt.Errorf("%w: failed to get markets: %v", ErrInternal, err)
			}

			day, source := domain.ResolveDaySchedule(order, markets, req.Date)
			uc.logger.Info("CreateBooking: schedule resolved from %s for order=%d", source, order.ID)

			if err := validateSlotAgainstSchedule(day, req.Date, req.StartTime, req.EndTime); err != nil {
				uc.logger.Warn("CreateBooking: schedule check failed: %v", err)
				return err
			}
		}

		// 8.3. Получаем активные бронирования на дату с блокировкой строк
		existing, err := uc.bookingRepo.GetActiveByOrderAndDate(txCtx, order.ID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 8.4. Проверяем ёмкость слота через единый предикат пересечения
		overlapping := domain.CountOverlapping(existing, req.StartTime, req.EndTime, 0)
		if !policy.Admits(overlapping) {
			uc.logger.Warn("CreateBooking: slot full, %d/%d spots taken", overlapping, policy.Capacity())
			return fmt.Errorf("%w: %d of %d spots taken", ErrSlotNotAvailable, overlapping, policy.Capacity())
		}

		uc.logger.Info("CreateBooking: slot available, %d/%d spots taken", overlapping, policy.Capacity())

		// 8.5. Создаем бронирование
		booking := &domain.Booking{
			OrderID:        order.ID,
			ClientID:       req.ClientID,
			MarketMemberID: req.MarketMemberID,
			ScheduledDate:  req.Date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         domain.InitialStatus(order),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	// 9. Уведомляем владельца заказа после коммита. Ошибки отправки
	// логируются и не влияют на результат
	uc.notifyCreated(ctx, order.OwnerID, result)

	return fromDomain(result), nil
}

// notifyCreated отправляет уведомление о новом бронировании
func (uc *UseCase) notifyCreated(ctx context.Context, ownerID int64, booking *domain.Booking) {
	payload := map[string]interface{}{
		"bookingId": booking.ID,
		"orderId":   booking.OrderID,
		"date":      booking.ScheduledDate.Format(domain.DateFormat),
		"startTime": booking.StartTime.String(),
		"endTime":   booking.EndTime.String(),
		"status":    string(booking.Status),
	}
	if booking.MarketMemberID != nil {
		payload["marketMemberId"] = *booking.MarketMemberID
	}

	message := fmt.Sprintf("Новое бронирование на %s, %s-%s",
		booking.ScheduledDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime)

	if err := uc.notifier.Notify(ctx, ownerID, string(notifyservice.KindBookingCreated),
		"Новое бронирование", message, payload); err != nil {
		uc.logger.Error("CreateBooking: failed to notify owner=%d about booking id=%d: %v",
			ownerID, booking.ID, err)
	}
}
