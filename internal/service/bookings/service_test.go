package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	bookingRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/booking"
	"github.com/usluga-market/MPB-BookingService/internal/service/bookings/models"
	"github.com/usluga-market/MPB-BookingService/pkg/ptr"
)

type bookingRepoStub struct {
	booking       *domain.Booking
	getErr        error
	clientList    []*domain.Booking
	orderList     []*domain.Booking
	lastFilter    domain.OrderBookingsFilter
	cancelled     []int64
	cancelReasons []*string
	statusUpdates []domain.BookingStatus
}

func (s *bookingRepoStub) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	cp := *s.booking
	return &cp, nil
}

func (s *bookingRepoStub) GetByClientID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return s.clientList, nil
}

func (s *bookingRepoStub) GetByOrderWithFilter(_ context.Context, filter domain.OrderBookingsFilter) ([]*domain.Booking, error) {
	s.lastFilter = filter
	return s.orderList, nil
}

func (s *bookingRepoStub) UpdateStatus(_ context.Context, _ int64, status domain.BookingStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	return nil
}

func (s *bookingRepoStub) Cancel(_ context.Context, id int64, reason *string) error {
	s.cancelled = append(s.cancelled, id)
	s.cancelReasons = append(s.cancelReasons, reason)
	return nil
}

type orderRepoStub struct{ order *domain.Order }

func (s *orderRepoStub) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, nil
}

type notifierStub struct {
	kinds []string
	users []int64
}

func (s *notifierStub) Notify(_ context.Context, userID int64, kind string, _, _ string, _ map[string]interface{}) error {
	s.kinds = append(s.kinds, kind)
	s.users = append(s.users, userID)
	return nil
}

type txStub struct{}

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testOrder() *domain.Order {
	return &domain.Order{ID: 10, OwnerID: 100, OrderType: domain.OrderTypePermanent, Status: domain.OrderStatusActive}
}

func testBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            5,
		OrderID:       10,
		ClientID:      7,
		ScheduledDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        status,
	}
}

func newService(bookings *bookingRepoStub, notifier *notifierStub) *Service {
	return NewService(bookings, &orderRepoStub{order: testOrder()}, notifier, txStub{}, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		actorID int64
		wantErr error
	}{
		{"client sees own booking", 7, nil},
		{"owner sees order booking", 100, nil},
		{"stranger denied", 42, ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&bookingRepoStub{booking: testBooking(domain.StatusConfirmed)}, &notifierStub{})

			resp, err := svc.GetByID(context.Background(), 5, tt.actorID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), resp.ID)
			assert.Equal(t, "2025-06-02", resp.ScheduledDate)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&bookingRepoStub{getErr: bookingRepo.ErrBookingNotFound}, &notifierStub{})

	_, err := svc.GetByID(context.Background(), 5, 7)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := newService(&bookingRepoStub{}, &notifierStub{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		ClientID: 7,
		Status:   ptr.Ptr("draft"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetOrderBookings_OwnerOnly(t *testing.T) {
	bookings := &bookingRepoStub{orderList: []*domain.Booking{testBooking(domain.StatusConfirmed)}}
	svc := newService(bookings, &notifierStub{})

	_, err := svc.GetOrderBookings(context.Background(), &models.GetOrderBookingsRequest{
		ActorID: 7,
		OrderID: 10,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetOrderBookings(context.Background(), &models.GetOrderBookingsRequest{
		ActorID: 100,
		OrderID: 10,
		Status:  ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	require.NotNil(t, bookings.lastFilter.Status)
	assert.Equal(t, domain.StatusConfirmed, *bookings.lastFilter.Status)
}

func TestCancel_ByClient(t *testing.T) {
	bookings := &bookingRepoStub{booking: testBooking(domain.StatusConfirmed)}
	notifier := &notifierStub{}
	svc := newService(bookings, notifier)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{
		ActorID:            7,
		CancellationReason: ptr.Ptr("не смогу прийти"),
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, bookings.cancelled)
	require.Len(t, bookings.cancelReasons, 1)
	assert.Equal(t, "не смогу прийти", *bookings.cancelReasons[0])
	// клиент отменил, уведомляется владелец заказа
	assert.Equal(t, []string{"booking_cancelled"}, notifier.kinds)
	assert.Equal(t, []int64{100}, notifier.users)
}

func TestCancel_ByOwnerNotifiesClient(t *testing.T) {
	notifier := &notifierStub{}
	svc := newService(&bookingRepoStub{booking: testBooking(domain.StatusPending)}, notifier)

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{ActorID: 100})

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, notifier.users)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	bookings := &bookingRepoStub{booking: testBooking(domain.StatusCancelled)}
	svc := newService(bookings, &notifierStub{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{ActorID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, bookings.cancelled)
}

func TestCancel_CompletedRejected(t *testing.T) {
	svc := newService(&bookingRepoStub{booking: testBooking(domain.StatusCompleted)}, &notifierStub{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{ActorID: 7})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc := newService(&bookingRepoStub{booking: testBooking(domain.StatusConfirmed)}, &notifierStub{})

	err := svc.Cancel(context.Background(), 5, &models.CancelBookingRequest{ActorID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		from     domain.BookingStatus
		to       string
		actorID  int64
		wantErr  error
		wantKind string
	}{
		{"owner confirms pending", domain.StatusPending, "confirmed", 100, nil, "booking_status_changed"},
		{"owner completes confirmed", domain.StatusConfirmed, "completed", 100, nil, "booking_status_changed"},
		{"client cannot confirm", domain.StatusPending, "confirmed", 7, ErrAccessDenied, ""},
		{"confirmed cannot regress to pending", domain.StatusConfirmed, "pending", 100, ErrForbiddenTransition, ""},
		{"completed is terminal", domain.StatusCompleted, "cancelled", 100, ErrForbiddenTransition, ""},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed", 100, ErrForbiddenTransition, ""},
		{"client cancels own via status", domain.StatusConfirmed, "cancelled", 7, nil, "booking_status_changed"},
		{"unknown status", domain.StatusPending, "draft", 100, ErrInvalidStatus, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &notifierStub{}
			svc := newService(&bookingRepoStub{booking: testBooking(tt.from)}, notifier)

			err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
				ActorID: tt.actorID,
				Status:  tt.to,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, notifier.kinds)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantKind}, notifier.kinds)
		})
	}
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	bookings := &bookingRepoStub{booking: testBooking(domain.StatusConfirmed)}
	svc := newService(bookings, &notifierStub{})

	err := svc.UpdateStatus(context.Background(), 5, &models.UpdateStatusRequest{
		ActorID: 100,
		Status:  "cancelled",
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{5}, bookings.cancelled, "cancellation must stamp cancelled_at")
	assert.Empty(t, bookings.statusUpdates)
}
