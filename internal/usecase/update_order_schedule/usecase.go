package update_order_schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
	"github.com/usluga-market/MPB-BookingService/internal/integrations/notifyservice"
	"github.com/usluga-market/MPB-BookingService/pkg/ptr"
)

// cancelReason машинная причина отмены при правке расписания
const cancelReason = "schedule_changed"

// UseCase use case правки расписания заказа с разбором последствий для
// существующих бронирований
type UseCase struct {
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	notifier     Notifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute применяет новое расписание к заказу. Правка, делающая
// недействительным прошедшее или сегодняшнее бронирование, отклоняется
// целиком. Будущие затронутые бронирования отменяются автоматически,
// их клиенты уведомляются. Пересечение с новыми перерывами бронирования
// не отменяет, клиент только уведомляется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateOrderSchedule: order=%d, actor=%d", req.OrderID, req.ActorID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateOrderSchedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		resp      *Response
		cancelled []*domain.Booking
		flagged   []*domain.Booking
	)

	// 2. Вся правка выполняется в одной сериализуемой транзакции: чтение
	// заказа и бронирований с блокировкой строк, решение, запись
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cancelled = nil
		flagged = nil

		// 2.1. Получаем заказ с блокировкой строки
		order, err := uc.orderRepo.GetByIDForUpdate(txCtx, req.OrderID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderNotFound) {
				uc.logger.Warn("UpdateOrderSchedule: order id=%d not found", req.OrderID)
				return ErrOrderNotFound
			}
			uc.logger.Error("UpdateOrderSchedule: failed to get order id=%d: %v", req.OrderID, err)
			return fmt.Errorf("%w: failed to get order: %v", ErrInternal, err)
		}

		// 2.2. Править расписание может только владелец заказа
		if req.ActorID != order.OwnerID {
			uc.logger.Warn("UpdateOrderSchedule: actor=%d is not owner=%d", req.ActorID, order.OwnerID)
			return ErrAccessDenied
		}

		// 2.3. No-op при неизменившемся расписании
		if req.NewSchedule != nil && !scheduleChanged(order.WeeklySchedule, req.NewSchedule) {
			uc.logger.Info("UpdateOrderSchedule: schedule unchanged for order=%d", order.ID)
			resp = &Response{OrderID: order.ID, Changed: false}
			return nil
		}
		if req.NewAvailableDates != nil && !legacyDatesChanged(order.LegacyAvailableDates, req.NewAvailableDates) {
			uc.logger.Info("UpdateOrderSchedule: available dates unchanged for order=%d", order.ID)
			resp = &Response{OrderID: order.ID, Changed: false}
			return nil
		}

		// 2.4. Загружаем pending и confirmed бронирования с блокировкой строк
		bookings, err := uc.bookingRepo.GetImpactedByOrder(txCtx, order.ID)
		if err != nil {
			uc.logger.Error("UpdateOrderSchedule: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 2.5. Определяем затронутые бронирования и делим их на
		// блокирующие и будущие
		invalidated := func(b *domain.Booking) bool {
			if req.NewSchedule != nil {
				return invalidatedBySchedule(b, req.NewSchedule)
			}
			return invalidatedByLegacyList(b, req.NewAvailableDates)
		}

		blocking, future := partitionAffected(bookings, invalidated, now)

		// 2.6. Прошедшие и сегодняшние конфликты отклоняют правку целиком
		if len(blocking) > 0 {
			uc.logger.Warn("UpdateOrderSchedule: edit blocked by %d past/current booking(s) on order=%d",
				len(blocking), order.ID)
			return fmt.Errorf("%w: %d booking(s)", ErrPastBookingsConflict, len(blocking))
		}

		// 2.7. Будущие затронутые бронирования отменяются
		skip := make(map[int64]bool, len(future))
		for _, b := range future {
			if err := uc.bookingRepo.Cancel(txCtx, b.ID, ptr.Ptr(cancelReason)); err != nil {
				uc.logger.Error("UpdateOrderSchedule: failed to cancel booking id=%d: %v", b.ID, err)
				return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
			}
			skip[b.ID] = true
		}
		cancelled = future

		// 2.8. Независимая проверка будущих бронирований на пересечение
		// с перерывами нового расписания. Перерыв можно пересогласовать,
		// поэтому только уведомление, без отмены
		if req.NewSchedule != nil {
			flagged = breakConflicts(bookings, req.NewSchedule, now, skip)
		}

		// 2.9. Сохраняем новое расписание
		if req.NewSchedule != nil {
			err = uc.orderRepo.UpdateSchedule(txCtx, order.ID, req.NewSchedule)
		} else {
			err = uc.orderRepo.UpdateLegacyDates(txCtx, order.ID, req.NewAvailableDates)
		}
		if err != nil {
			uc.logger.Error("UpdateOrderSchedule: failed to persist schedule for order=%d: %v", order.ID, err)
			return fmt.Errorf("%w: failed to persist schedule: %v", ErrInternal, err)
		}

		resp = &Response{
			OrderID:        order.ID,
			Changed:        true,
			CancelledIDs:   bookingIDs(cancelled),
			BreakConflicts: bookingIDs(flagged),
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	if !resp.Changed {
		return resp, nil
	}

	uc.logger.Info("UpdateOrderSchedule: order=%d updated, cancelled=%d, break conflicts=%d",
		resp.OrderID, len(resp.CancelledIDs), len(resp.BreakConflicts))

	// 3. Уведомляем клиентов после коммита. Ошибки отправки логируются
	// и не влияют на результат
	for _, b := range cancelled {
		uc.notifyClient(ctx, b, notifyservice.KindScheduleConflict,
			"Бронирование отменено",
			fmt.Sprintf("Бронирование на %s, %s-%s отменено из-за изменения расписания",
				b.ScheduledDate.Format(domain.DateFormat), b.StartTime, b.EndTime))
	}
	for _, b := range flagged {
		uc.notifyClient(ctx, b, notifyservice.KindBreakConflict,
			"Бронирование попадает на перерыв",
			fmt.Sprintf("Бронирование на %s, %s-%s теперь пересекается с перерывом",
				b.ScheduledDate.Format(domain.DateFormat), b.StartTime, b.EndTime))
	}

	return resp, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if (req.NewSchedule == nil) == (req.NewAvailableDates == nil) {
		return fmt.Errorf("%w: exactly one of schedule and available dates is required", ErrInvalidInput)
	}

	if req.NewSchedule != nil {
		if err := req.NewSchedule.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
	}

	return nil
}

// notifyClient отправляет клиенту уведомление о последствиях правки
func (uc *UseCase) notifyClient(ctx context.Context, b *domain.Booking, kind notifyservice.Kind, title, message string) {
	payload := map[string]interface{}{
		"bookingId": b.ID,
		"orderId":   b.OrderID,
		"date":      b.ScheduledDate.Format(domain.DateFormat),
		"startTime": b.StartTime.String(),
		"endTime":   b.EndTime.String(),
	}

	if err := uc.notifier.Notify(ctx, b.ClientID, string(kind), title, message, payload); err != nil {
		uc.logger.Error("UpdateOrderSchedule: failed to notify client=%d about booking id=%d: %v",
			b.ClientID, b.ID, err)
	}
}

func bookingIDs(bookings []*domain.Booking) []int64 {
	if len(bookings) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}
