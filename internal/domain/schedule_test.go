package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func workDay(start, end types.TimeString) DaySchedule {
	return DaySchedule{
		Enabled:   true,
		WorkHours: &TimeRange{Start: start, End: end},
	}
}

func TestDayName(t *testing.T) {
	// 2024-06-03 это понедельник
	assert.Equal(t, "monday", DayName(day(2024, 6, 3)))
	assert.Equal(t, "sunday", DayName(day(2024, 6, 2)))
	assert.Equal(t, "saturday", DayName(day(2024, 6, 8)))
}

func TestResolveDaySchedule_OrderScheduleWins(t *testing.T) {
	order := &Order{
		WeeklySchedule: &WeeklySchedule{
			"monday": workDay("09:00", "17:00"),
		},
	}
	markets := []*Market{
		{WeeklySchedule: &WeeklySchedule{"monday": workDay("08:00", "20:00")}},
	}

	resolved, source := ResolveDaySchedule(order, markets, day(2024, 6, 3))
	assert.Equal(t, ScheduleSourceOrder, source)
	require.NotNil(t, resolved.WorkHours)
	assert.Equal(t, types.TimeString("09:00"), resolved.WorkHours.Start)
}

func TestResolveDaySchedule_MarketFallbackInAttachmentOrder(t *testing.T) {
	order := &Order{}
	markets := []*Market{
		{ID: 1}, // без расписания, пропускается
		{ID: 2, WeeklySchedule: &WeeklySchedule{"monday": workDay("08:00", "20:00")}},
		{ID: 3, WeeklySchedule: &WeeklySchedule{"monday": workDay("10:00", "12:00")}},
	}

	resolved, source := ResolveDaySchedule(order, markets, day(2024, 6, 3))
	assert.Equal(t, ScheduleSourceMarket, source)
	require.NotNil(t, resolved.WorkHours)
	assert.Equal(t, types.TimeString("08:00"), resolved.WorkHours.Start)
}

func TestResolveDaySchedule_DefaultAlwaysOpen(t *testing.T) {
	resolved, source := ResolveDaySchedule(&Order{}, nil, day(2024, 6, 3))
	assert.Equal(t, ScheduleSourceDefault, source)
	assert.True(t, resolved.Bookable())
	assert.Equal(t, types.TimeString("00:00"), resolved.WorkHours.Start)
	assert.Equal(t, types.TimeString("23:59"), resolved.WorkHours.End)
}

func TestResolveDaySchedule_ExplicitlyDisabledDayReturnedAsIs(t *testing.T) {
	order := &Order{
		WeeklySchedule: &WeeklySchedule{
			"monday": workDay("09:00", "17:00"),
			"sunday": {Enabled: false},
		},
	}

	resolved, source := ResolveDaySchedule(order, nil, day(2024, 6, 2))
	assert.Equal(t, ScheduleSourceOrder, source)
	assert.False(t, resolved.Bookable())
}

func TestResolveDaySchedule_MissingDayTreatedAsDisabled(t *testing.T) {
	order := &Order{
		WeeklySchedule: &WeeklySchedule{"monday": workDay("09:00", "17:00")},
	}

	resolved, _ := ResolveDaySchedule(order, nil, day(2024, 6, 4)) // вторник
	assert.False(t, resolved.Bookable())
}

func TestDaySchedule_ActiveBreaksOn(t *testing.T) {
	lunch := TimeRange{Start: "13:00", End: "14:00"}
	coffee := TimeRange{Start: "16:00", End: "16:15"}

	sched := DaySchedule{
		Enabled:   true,
		WorkHours: &TimeRange{Start: "09:00", End: "18:00"},
		Breaks:    []TimeRange{lunch, coffee},
		BreakExclusions: map[string][]TimeRange{
			"2024-06-03": {lunch},
		},
	}

	// На дату с исключением обеденный перерыв снят
	active := sched.ActiveBreaksOn(day(2024, 6, 3))
	require.Len(t, active, 1)
	assert.Equal(t, coffee, active[0])

	// На любую другую дату действуют оба перерыва
	assert.Len(t, sched.ActiveBreaksOn(day(2024, 6, 10)), 2)
}

func TestDaySchedule_ActiveBreaksOn_ExactMatchOnly(t *testing.T) {
	lunch := TimeRange{Start: "13:00", End: "14:00"}
	sched := DaySchedule{
		Enabled:   true,
		WorkHours: &TimeRange{Start: "09:00", End: "18:00"},
		Breaks:    []TimeRange{lunch},
		BreakExclusions: map[string][]TimeRange{
			// Частичное совпадение не снимает перерыв
			"2024-06-03": {{Start: "13:00", End: "13:30"}},
		},
	}

	assert.Len(t, sched.ActiveBreaksOn(day(2024, 6, 3)), 1)
}

func TestWeeklySchedule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		sched   WeeklySchedule
		wantErr bool
	}{
		{
			name:    "valid",
			sched:   WeeklySchedule{"monday": workDay("09:00", "17:00")},
			wantErr: false,
		},
		{
			name:    "enabled without work hours",
			sched:   WeeklySchedule{"monday": {Enabled: true}},
			wantErr: true,
		},
		{
			name:    "start after end",
			sched:   WeeklySchedule{"monday": workDay("17:00", "09:00")},
			wantErr: true,
		},
		{
			name:    "unknown weekday",
			sched:   WeeklySchedule{"someday": workDay("09:00", "17:00")},
			wantErr: true,
		},
		{
			name:    "disabled day without hours is fine",
			sched:   WeeklySchedule{"sunday": {Enabled: false}},
			wantErr: false,
		},
		{
			name: "invalid break",
			sched: WeeklySchedule{"monday": {
				Enabled:   true,
				WorkHours: &TimeRange{Start: "09:00", End: "17:00"},
				Breaks:    []TimeRange{{Start: "14:00", End: "13:00"}},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sched.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLegacyEntry(t *testing.T) {
	entry := LegacyEntry(day(2024, 6, 3), "10:00", "11:00")
	assert.Equal(t, "2024-06-03 10:00-11:00", entry)

	dates := []string{"2024-06-03 10:00-11:00", " 2024-06-05 12:00-13:00 "}
	assert.True(t, ContainsLegacyEntry(dates, entry))
	assert.True(t, ContainsLegacyEntry(dates, "2024-06-05 12:00-13:00"))
	assert.False(t, ContainsLegacyEntry(dates, "2024-06-03 11:00-12:00"))
}

func TestTimeRange_Contains(t *testing.T) {
	window := TimeRange{Start: "09:00", End: "17:00"}

	assert.True(t, window.Contains("09:00", "17:00"))
	assert.True(t, window.Contains("10:00", "11:00"))
	assert.False(t, window.Contains("08:59", "10:00"))
	assert.False(t, window.Contains("16:00", "17:01"))
	assert.False(t, window.Contains("11:00", "10:00"))
	assert.False(t, window.Contains("10:00", "10:00"))
}
