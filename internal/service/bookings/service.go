package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	bookingRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/booking"
	orderRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/order"
	"github.com/usluga-market/MPB-BookingService/internal/integrations/notifyservice"
	"github.com/usluga-market/MPB-BookingService/internal/service/bookings/models"
)

// Service сервис чтения и жизненного цикла бронирований
type Service struct {
	bookingRepo BookingRepository
	orderRepo   OrderRepository
	notifier    Notifier
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		orderRepo:   orderRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Бронирование видят его клиент и владелец заказа
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actorID)

	booking, order, err := s.loadBookingWithOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if actorID != booking.ClientID && actorID != order.OwnerID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actorID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings), nil
}

// GetOrderBookings получает бронирования заказа с фильтрацией по периоду
// и статусу. Доступно только владельцу заказа
func (s *Service) GetOrderBookings(ctx context.Context, req *models.GetOrderBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetOrderBookings: fetching bookings for order=%d, user=%d", req.OrderID, req.ActorID)

	order, err := s.loadOrder(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	if req.ActorID != order.OwnerID {
		s.logger.Warn("GetOrderBookings: user=%d is not owner of order=%d", req.ActorID, req.OrderID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetOrderBookings: invalid filter for order=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByOrderWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetOrderBookings: repository error for order=%d: %v", req.OrderID, err)
		return nil, fmt.Errorf("%w: GetOrderBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetOrderBookings: successfully fetched %d bookings for order=%d", len(bookings), req.OrderID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование. Доступно клиенту бронирования и владельцу
// заказа. Повторная отмена отклоняется, не тихо проглатывается
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.ActorID)

	if req.CancellationReason != nil && len(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: reason too long for booking id=%d", bookingID)
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	var booking *domain.Booking
	var order *domain.Order

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var err error
		booking, order, err = s.loadBookingWithOrder(txCtx, bookingID)
		if err != nil {
			return err
		}

		if req.ActorID != booking.ClientID && req.ActorID != order.OwnerID {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.ActorID, bookingID)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	// Уведомляем противоположную сторону после коммита
	notifyUserID := order.OwnerID
	if req.ActorID == order.OwnerID {
		notifyUserID = booking.ClientID
	}
	s.notify(ctx, notifyUserID, notifyservice.KindBookingCancelled,
		"Бронирование отменено",
		fmt.Sprintf("Бронирование на %s, %s-%s отменено",
			booking.ScheduledDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime),
		booking)

	return nil
}

// UpdateStatus переводит бронирование в новый статус. Переходы в
// cancelled доступны клиенту и владельцу заказа, остальные переходы
// (confirm, complete) только владельцу
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s by user=%d",
		bookingID, req.Status, req.ActorID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	var booking *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var order *domain.Order
		var err error
		booking, order, err = s.loadBookingWithOrder(txCtx, bookingID)
		if err != nil {
			return err
		}

		if newStatus == domain.StatusCancelled {
			if req.ActorID != booking.ClientID && req.ActorID != order.OwnerID {
				s.logger.Warn("UpdateStatus: access denied for user=%d to cancel booking id=%d", req.ActorID, bookingID)
				return ErrAccessDenied
			}
		} else if req.ActorID != order.OwnerID {
			s.logger.Warn("UpdateStatus: user=%d is not owner of order=%d", req.ActorID, order.ID)
			return ErrAccessDenied
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: forbidden transition %s -> %s for booking id=%d",
				booking.Status, newStatus, bookingID)
			return fmt.Errorf("%w: %s -> %s", ErrForbiddenTransition, booking.Status, newStatus)
		}

		if newStatus == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(txCtx, bookingID, nil)
		} else {
			err = s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus)
		}
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)

	s.notify(ctx, booking.ClientID, notifyservice.KindBookingStatusChanged,
		"Статус бронирования изменён",
		fmt.Sprintf("Бронирование на %s, %s-%s теперь в статусе %s",
			booking.ScheduledDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime, newStatus),
		booking)

	return nil
}

// Вспомогательные методы

// loadBookingWithOrder получает бронирование вместе с его заказом
func (s *Service) loadBookingWithOrder(ctx context.Context, bookingID int64) (*domain.Booking, *domain.Order, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("loadBookingWithOrder: booking id=%d not found", bookingID)
			return nil, nil, ErrBookingNotFound
		}
		s.logger.Error("loadBookingWithOrder: repository error for booking id=%d: %v", bookingID, err)
		return nil, nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	order, err := s.loadOrder(ctx, booking.OrderID)
	if err != nil {
		return nil, nil, err
	}

	return booking, order, nil
}

// loadOrder получает заказ по ID
func (s *Service) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderNotFound) {
			s.logger.Warn("loadOrder: order id=%d not found", orderID)
			return nil, ErrOrderNotFound
		}
		s.logger.Error("loadOrder: repository error for order id=%d: %v", orderID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return order, nil
}

// notify отправляет уведомление, ошибки отправки только логируются
func (s *Service) notify(ctx context.Context, userID int64, kind notifyservice.Kind, title, message string, b *domain.Booking) {
	payload := map[string]interface{}{
		"bookingId": b.ID,
		"orderId":   b.OrderID,
		"date":      b.ScheduledDate.Format(domain.DateFormat),
		"startTime": b.StartTime.String(),
		"endTime":   b.EndTime.String(),
	}

	if err := s.notifier.Notify(ctx, userID, string(kind), title, message, payload); err != nil {
		s.logger.Error("notify: failed to notify user=%d about booking id=%d: %v", userID, b.ID, err)
	}
}
