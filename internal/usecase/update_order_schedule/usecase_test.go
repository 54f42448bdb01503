package update_order_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

type bookingRepoStub struct {
	impacted  []*domain.Booking
	cancelled []int64
	reasons   []string
}

func (s *bookingRepoStub) GetImpactedByOrder(_ context.Context, _ int64) ([]*domain.Booking, error) {
	return s.impacted, nil
}

func (s *bookingRepoStub) Cancel(_ context.Context, id int64, reason *string) error {
	s.cancelled = append(s.cancelled, id)
	if reason != nil {
		s.reasons = append(s.reasons, *reason)
	}
	return nil
}

type orderRepoStub struct {
	order          *domain.Order
	schedulesSaved int
	legacySaved    int
}

func (s *orderRepoStub) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, nil
}

func (s *orderRepoStub) GetByIDForUpdate(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, nil
}

func (s *orderRepoStub) UpdateSchedule(_ context.Context, _ int64, schedule *domain.WeeklySchedule) error {
	s.order.WeeklySchedule = schedule
	s.schedulesSaved++
	return nil
}

func (s *orderRepoStub) UpdateLegacyDates(_ context.Context, _ int64, dates []string) error {
	s.order.LegacyAvailableDates = dates
	s.legacySaved++
	return nil
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

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// сегодняшний день в тестах: понедельник 2025-06-02
var today = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func mondaySchedule(start, end types.TimeString, breaks ...domain.TimeRange) *domain.WeeklySchedule {
	return &domain.WeeklySchedule{
		"monday": {
			Enabled:   true,
			WorkHours: &domain.TimeRange{Start: start, End: end},
			Breaks:    breaks,
		},
	}
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:             10,
		OwnerID:        100,
		OrderType:      domain.OrderTypePermanent,
		Status:         domain.OrderStatusActive,
		WeeklySchedule: mondaySchedule("09:00", "18:00"),
	}
}

func booking(id int64, clientID int64, date time.Time, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		OrderID:       10,
		ClientID:      clientID,
		ScheduledDate: date,
		StartTime:     start,
		EndTime:       end,
		Status:        domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *bookingRepoStub, orders *orderRepoStub, notifier *notifierStub) *UseCase {
	uc := NewUseCase(bookings, orders, notifier, txStub{}, nopLogger{})
	uc.timeProvider = fixedTime{t: today}
	return uc
}

func TestExecute_NoOpWhenUnchanged(t *testing.T) {
	orders := &orderRepoStub{order: testOrder()}
	uc := newTestUseCase(&bookingRepoStub{}, orders, &notifierStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("09:00", "18:00"),
	})

	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Zero(t, orders.schedulesSaved)
}

func TestExecute_OwnerOnly(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{}, &orderRepoStub{order: testOrder()}, &notifierStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     7,
		NewSchedule: mondaySchedule("10:00", "18:00"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BothPayloadsRejected(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{}, &orderRepoStub{order: testOrder()}, &notifierStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:           10,
		ActorID:           100,
		NewSchedule:       mondaySchedule("10:00", "18:00"),
		NewAvailableDates: []string{"2025-06-09 10:00-11:00"},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PastBookingBlocksEdit(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		// прошлое бронирование на 09:30, новое окно его не вмещает
		booking(1, 7, today.AddDate(0, 0, -7), "09:30", "10:30"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	uc := newTestUseCase(bookings, orders, &notifierStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("11:00", "18:00"),
	})

	assert.ErrorIs(t, err, ErrPastBookingsConflict)
	assert.Zero(t, orders.schedulesSaved, "blocked edit must not persist anything")
	assert.Empty(t, bookings.cancelled)
}

func TestExecute_TodayBookingBlocksEdit(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, today, "09:30", "10:30"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	uc := newTestUseCase(bookings, orders, &notifierStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("11:00", "18:00"),
	})

	assert.ErrorIs(t, err, ErrPastBookingsConflict)
	assert.Zero(t, orders.schedulesSaved)
}

func TestExecute_FutureAffectedAutoCancelled(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, today.AddDate(0, 0, 7), "09:30", "10:30"), // выпадает из нового окна
		booking(2, 8, today.AddDate(0, 0, 7), "12:00", "13:00"), // остаётся валидным
	}}
	orders := &orderRepoStub{order: testOrder()}
	notifier := &notifierStub{}
	uc := newTestUseCase(bookings, orders, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("11:00", "18:00"),
	})

	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, []int64{1}, resp.CancelledIDs)
	assert.Equal(t, []int64{1}, bookings.cancelled)
	assert.Equal(t, []string{"schedule_changed"}, bookings.reasons)
	assert.Equal(t, 1, orders.schedulesSaved)
	assert.Equal(t, []string{"booking_schedule_conflict"}, notifier.kinds)
	assert.Equal(t, []int64{7}, notifier.users)
}

func TestExecute_DisabledDayCancelsFuture(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, today.AddDate(0, 0, 7), "10:00", "11:00"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	uc := newTestUseCase(bookings, orders, &notifierStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID: 10,
		ActorID: 100,
		NewSchedule: &domain.WeeklySchedule{
			"tuesday": {Enabled: true, WorkHours: &domain.TimeRange{Start: "09:00", End: "18:00"}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.CancelledIDs)
}

func TestExecute_BreakConflictNotifiesWithoutCancelling(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, today.AddDate(0, 0, 7), "13:30", "14:30"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	notifier := &notifierStub{}
	uc := newTestUseCase(bookings, orders, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("09:00", "18:00", domain.TimeRange{Start: "13:00", End: "14:00"}),
	})

	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Empty(t, resp.CancelledIDs, "break overlap never cancels")
	assert.Equal(t, []int64{1}, resp.BreakConflicts)
	assert.Empty(t, bookings.cancelled)
	assert.Equal(t, []string{"booking_break_conflict"}, notifier.kinds)
}

func TestExecute_BreakExclusionSuppressesConflict(t *testing.T) {
	futureDate := today.AddDate(0, 0, 7)
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, futureDate, "13:00", "14:00"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	notifier := &notifierStub{}
	uc := newTestUseCase(bookings, orders, notifier)

	schedule := mondaySchedule("09:00", "18:00", domain.TimeRange{Start: "13:00", End: "14:00"})
	day := (*schedule)["monday"]
	day.BreakExclusions = map[string][]domain.TimeRange{
		futureDate.Format(domain.DateFormat): {{Start: "13:00", End: "14:00"}},
	}
	(*schedule)["monday"] = day

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: schedule,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.BreakConflicts)
	assert.Empty(t, notifier.kinds)
}

func TestExecute_CancelledBookingNotRecheckedForBreaks(t *testing.T) {
	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		// выпадает из нового окна и одновременно попадает на перерыв:
		// должно попасть только в отменённые
		booking(1, 7, today.AddDate(0, 0, 7), "08:00", "09:30"),
	}}
	orders := &orderRepoStub{order: testOrder()}
	notifier := &notifierStub{}
	uc := newTestUseCase(bookings, orders, notifier)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("09:00", "18:00", domain.TimeRange{Start: "08:00", End: "09:00"}),
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.CancelledIDs)
	assert.Empty(t, resp.BreakConflicts)
	assert.Equal(t, []string{"booking_schedule_conflict"}, notifier.kinds)
}

func TestExecute_LegacyDatesEdit(t *testing.T) {
	order := testOrder()
	order.WeeklySchedule = nil
	order.LegacyAvailableDates = []string{
		"2025-06-09 10:00-11:00",
		"2025-06-09 12:00-13:00",
	}

	bookings := &bookingRepoStub{impacted: []*domain.Booking{
		booking(1, 7, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), "10:00", "11:00"),
		booking(2, 8, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), "12:00", "13:00"),
	}}
	orders := &orderRepoStub{order: order}
	uc := newTestUseCase(bookings, orders, &notifierStub{})

	// из нового списка пропадает слот 10:00-11:00
	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:           10,
		ActorID:           100,
		NewAvailableDates: []string{"2025-06-09 12:00-13:00"},
	})

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, resp.CancelledIDs)
	assert.Equal(t, 1, orders.legacySaved)
}

func TestExecute_InvalidScheduleRejected(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{}, &orderRepoStub{order: testOrder()}, &notifierStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:     10,
		ActorID:     100,
		NewSchedule: mondaySchedule("18:00", "09:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}
