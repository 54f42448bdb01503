package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/ptr"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

type bookingRepoStub struct {
	byDate map[string][]*domain.Booking
}

func (s *bookingRepoStub) GetActiveByOrderAndDate(_ context.Context, _ int64, date time.Time) ([]*domain.Booking, error) {
	return s.byDate[date.Format(domain.DateFormat)], nil
}

type orderRepoStub struct{ order *domain.Order }

func (s *orderRepoStub) GetByID(_ context.Context, _ int64) (*domain.Order, error) {
	return s.order, nil
}

type marketRepoStub struct{ markets []*domain.Market }

func (s *marketRepoStub) GetByOrderID(_ context.Context, _ int64) ([]*domain.Market, error) {
	return s.markets, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// понедельник
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

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
				Breaks:    []domain.TimeRange{{Start: "13:00", End: "14:00"}},
			},
			"tuesday": {Enabled: false},
		},
	}
}

func newTestUseCase(bookings *bookingRepoStub, order *domain.Order, markets *marketRepoStub) *UseCase {
	if bookings.byDate == nil {
		bookings.byDate = map[string][]*domain.Booking{}
	}
	uc := NewUseCase(bookings, &orderRepoStub{order: order}, markets, nopLogger{})
	uc.timeProvider = fixedTime{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestExecute_WeekOverview(t *testing.T) {
	bookings := &bookingRepoStub{byDate: map[string][]*domain.Booking{
		"2025-06-02": {
			{ID: 1, StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
			{ID: 2, StartTime: "15:00", EndTime: "16:00", Status: domain.StatusPending},
		},
	}}
	uc := newTestUseCase(bookings, testOrder(), &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	mon := resp.Days[0]
	assert.True(t, mon.Available)
	assert.Equal(t, "2025-06-02", mon.Date)
	assert.Equal(t, domain.ScheduleSourceOrder, mon.Source)
	assert.Equal(t, &domain.TimeRange{Start: "09:00", End: "18:00"}, mon.WorkHours)
	assert.Equal(t, []domain.TimeRange{{Start: "13:00", End: "14:00"}}, mon.Breaks)
	assert.Len(t, mon.Bookings, 2)
	assert.Equal(t, 1, mon.Capacity)

	tue := resp.Days[1]
	assert.False(t, tue.Available)
	assert.Nil(t, tue.WorkHours)
	assert.Empty(t, tue.Bookings, "closed days skip the booking lookup")
}

func TestExecute_PastDaysUnavailable(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{}, testOrder(), &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday.AddDate(0, 0, -7),
		EndDate:   monday.AddDate(0, 0, -7),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.False(t, resp.Days[0].Available)
}

func TestExecute_RangeTooWide(t *testing.T) {
	uc := newTestUseCase(&bookingRepoStub{}, testOrder(), &marketRepoStub{})

	_, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, domain.MaxSlotRangeDays),
	})
	assert.ErrorIs(t, err, ErrRangeTooWide)
}

func TestExecute_MemberFilter(t *testing.T) {
	order := testOrder()
	order.ResourceBookingMode = ptr.Ptr(domain.ModeSelect)

	bookings := &bookingRepoStub{byDate: map[string][]*domain.Booking{
		"2025-06-02": {
			{ID: 1, MarketMemberID: ptr.Ptr(int64(1)), StartTime: "10:00", EndTime: "11:00", Status: domain.StatusConfirmed},
			{ID: 2, MarketMemberID: ptr.Ptr(int64(2)), StartTime: "11:00", EndTime: "12:00", Status: domain.StatusConfirmed},
			{ID: 3, StartTime: "12:00", EndTime: "13:00", Status: domain.StatusConfirmed},
		},
	}}
	uc := newTestUseCase(bookings, order, &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:        10,
		StartDate:      monday,
		EndDate:        monday,
		MarketMemberID: ptr.Ptr(int64(1)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Bookings, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Days[0].Bookings[0].StartTime)
}

func TestExecute_MarketFallback(t *testing.T) {
	order := testOrder()
	order.WeeklySchedule = nil

	markets := &marketRepoStub{markets: []*domain.Market{{
		ID: 1,
		WeeklySchedule: &domain.WeeklySchedule{
			"monday": {Enabled: true, WorkHours: &domain.TimeRange{Start: "10:00", End: "16:00"}},
		},
	}}}
	uc := newTestUseCase(&bookingRepoStub{}, order, markets)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleSourceMarket, resp.Days[0].Source)
	assert.Equal(t, &domain.TimeRange{Start: "10:00", End: "16:00"}, resp.Days[0].WorkHours)
}

func TestExecute_DefaultScheduleFallback(t *testing.T) {
	order := testOrder()
	order.WeeklySchedule = nil

	uc := newTestUseCase(&bookingRepoStub{}, order, &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ScheduleSourceDefault, resp.Days[0].Source)
	assert.Equal(t, &domain.TimeRange{Start: domain.DefaultWorkDayStart, End: domain.DefaultWorkDayEnd}, resp.Days[0].WorkHours)
}

func TestExecute_LegacyDates(t *testing.T) {
	order := testOrder()
	order.WeeklySchedule = nil
	order.LegacyAvailableDates = []string{
		"2025-06-02 10:00-11:00",
		"2025-06-02 14:00-15:00",
		"2025-06-09 10:00-11:00",
		"not a slot at all",
	}

	uc := newTestUseCase(&bookingRepoStub{}, order, &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	mon := resp.Days[0]
	assert.True(t, mon.Available)
	assert.Equal(t, []domain.TimeRange{
		{Start: "10:00", End: "11:00"},
		{Start: "14:00", End: "15:00"},
	}, mon.ListedSlots)
	assert.False(t, resp.Days[1].Available)
}

func TestExecute_MultiModeCapacityReported(t *testing.T) {
	order := testOrder()
	order.ResourceBookingMode = ptr.Ptr(domain.ModeMulti)
	order.RequiredResourceCount = 3

	uc := newTestUseCase(&bookingRepoStub{}, order, &marketRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{
		OrderID:   10,
		StartDate: monday,
		EndDate:   monday,
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Days[0].Capacity)
}
