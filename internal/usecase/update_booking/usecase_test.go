package update_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	bookingRepo "github.com/usluga-market/MPB-BookingService/internal/infra/storage/booking"
	"github.com/usluga-market/MPB-BookingService/pkg/ptr"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

type bookingRepoStub struct {
	booking        *domain.Booking
	getErr         error
	orderBookings  []*domain.Booking
	clientBookings []*domain.Booking
	updatedSlots   int
}

func (s *bookingRepoStub) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	cp := *s.booking
	return &cp, nil
}

func (s *bookingRepoStub) GetActiveByOrderAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return s.orderBookings, nil
}

func (s *bookingRepoStub) GetActiveByClientAndDate(_ context.Context, _ int64, _ time.Time, _ []int64) ([]*domain.Booking, error) {
	return s.clientBookings, nil
}

func (s *bookingRepoStub) UpdateSlot(_ context.Context, _ int64, _ time.Time, _, _ string) error {
	s.updatedSlots++
	return nil
}

type orderRepoStub struct {
	order *domain.Order
	err   error
}

func (s *orderRepoStub) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, s.err
}

type marketRepoStub struct {
	markets  []*domain.Market
	siblings []int64
}

func (s *marketRepoStub) GetByOrderID(_ context.Context, _ int64) ([]*domain.Market, error) {
	return s.markets, nil
}

func (s *marketRepoStub) GetSiblingOrderIDs(_ context.Context, _ int64) ([]int64, error) {
	return s.siblings, nil
}

type subsStub struct{ hasFeature bool }

func (s *subsStub) HasFeature(_ context.Context, _ int64, _ string) (bool, error) {
	return s.hasFeature, nil
}

type txStub struct{}

func (txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// testDate приходится на понедельник
var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:        10,
		OwnerID:   100,
		OrderType: domain.OrderTypePermanent,
		Status:    domain.OrderStatusActive,
		WeeklySchedule: &domain.WeeklySchedule{
			"monday": {
				Enabled:   true,
				WorkHours: &domain.TimeRange{Start: "09:00", End: "18:00"},
			},
		},
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:            5,
		OrderID:       10,
		ClientID:      7,
		ScheduledDate: testDate,
		StartTime:     "10:00",
		EndTime:       "11:00",
		Status:        domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *bookingRepoStub, orders *orderRepoStub, markets *marketRepoStub) *UseCase {
	uc := NewUseCase(bookings, orders, markets, &subsStub{hasFeature: true}, txStub{}, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func moveRequest() *Request {
	return &Request{
		BookingID: 5,
		ActorID:   7,
		StartTime: ptr.Ptr(types.TimeString("15:00")),
		EndTime:   ptr.Ptr(types.TimeString("16:00")),
	}
}

func TestExecute_MoveSlot(t *testing.T) {
	bookings := &bookingRepoStub{booking: testBooking()}
	uc := newTestUseCase(bookings, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), moveRequest())

	require.NoError(t, err)
	assert.Equal(t, types.TimeString("15:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("16:00"), resp.EndTime)
	assert.Equal(t, 1, bookings.updatedSlots)
}

func TestExecute_PartialUpdateKeepsOtherFields(t *testing.T) {
	bookings := &bookingRepoStub{booking: testBooking()}
	uc := newTestUseCase(bookings, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	// переносим только дату, границы слота сохраняются
	newDate := testDate.AddDate(0, 0, 7)
	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		ActorID:   7,
		Date:      &newDate,
	})

	require.NoError(t, err)
	assert.Equal(t, newDate, resp.ScheduledDate)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.EndTime)
}

func TestExecute_EmptyRequest(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{booking: testBooking()}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 5, ActorID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{getErr: bookingRepo.ErrBookingNotFound}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	_, err := uc.Execute(context.Background(), moveRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_AccessDenied(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{booking: testBooking()}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	req := moveRequest()
	req.ActorID = 999

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_OwnerMayMove(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{booking: testBooking()}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	req := moveRequest()
	req.ActorID = 100 // владелец заказа

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_TerminalStatuses(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			booking := testBooking()
			booking.Status = status
			uc := newTestUseCase(&bookingRepoStub{booking: booking}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

			_, err := uc.Execute(context.Background(), moveRequest())
			assert.ErrorIs(t, err, ErrNotUpdatable)
		})
	}
}

func TestExecute_SelfExcludedFromCapacity(t *testing.T) {
	booking := testBooking()
	bookings := &bookingRepoStub{
		booking: booking,
		// в списке на дату лежит само переносимое бронирование; без
		// исключения по ID перенос внутри своего же интервала ломался бы
		orderBookings: []*domain.Booking{booking},
	}
	uc := newTestUseCase(bookings, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		ActorID:   7,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
		EndTime:   ptr.Ptr(types.TimeString("11:30")),
	})
	assert.NoError(t, err)
}

func TestExecute_OtherBookingBlocksSlot(t *testing.T) {
	bookings := &bookingRepoStub{
		booking: testBooking(),
		orderBookings: []*domain.Booking{
			{ID: 6, OrderID: 10, ClientID: 3, StartTime: "15:00", EndTime: "16:00", Status: domain.StatusConfirmed},
		},
	}
	uc := newTestUseCase(bookings, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	_, err := uc.Execute(context.Background(), moveRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_MarketConflictExcludesSelf(t *testing.T) {
	booking := testBooking()
	bookings := &bookingRepoStub{
		booking:        booking,
		clientBookings: []*domain.Booking{booking},
	}
	markets := &marketRepoStub{siblings: []int64{11}}
	uc := newTestUseCase(bookings, &orderRepoStub{order: testOrder()}, markets)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		ActorID:   7,
		StartTime: ptr.Ptr(types.TimeString("10:30")),
		EndTime:   ptr.Ptr(types.TimeString("11:30")),
	})
	assert.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{booking: testBooking()}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	past := time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		ActorID:   7,
		Date:      &past,
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_OutsideWorkHours(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{booking: testBooking()}, &orderRepoStub{order: testOrder()}, &marketRepoStub{})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: 5,
		ActorID:   7,
		StartTime: ptr.Ptr(types.TimeString("17:30")),
		EndTime:   ptr.Ptr(types.TimeString("19:00")),
	})
	assert.ErrorIs(t, err, ErrOutsideWorkHours)
}
