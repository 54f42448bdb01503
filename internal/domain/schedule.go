package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// TimeRange is a half-open [Start, End) interval within a single day.
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Validate checks both bounds and the ordering Start < End.
func (r TimeRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return fmt.Errorf("invalid range start: %w", err)
	}
	if err := r.End.Validate(); err != nil {
		return fmt.Errorf("invalid range end: %w", err)
	}
	if !r.Start.IsBefore(r.End) {
		return fmt.Errorf("range start %s must be before end %s", r.Start, r.End)
	}
	return nil
}

// Equal reports exact bound equality. Break-exclusion waivers are keyed
// by exact match, partial overlap does not waive a break.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.Start == other.Start && r.End == other.End
}

// Contains reports whether the [start, end) interval lies entirely
// inside the range.
func (r TimeRange) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(r.Start) && !end.IsAfter(r.End) && start.IsBefore(end)
}

// DaySchedule describes availability for one weekday: whether it is
// bookable, the work-hour window, and break sub-windows. Break
// exclusions waive specific breaks for specific calendar dates only,
// allowing one-off priority bookings inside a normally blocked break.
type DaySchedule struct {
	Enabled         bool                   `json:"enabled"`
	WorkHours       *TimeRange             `json:"workHours,omitempty"`
	Breaks          []TimeRange            `json:"breaks,omitempty"`
	BreakExclusions map[string][]TimeRange `json:"breakExclusions,omitempty"`
}

// Bookable returns true if the day admits bookings at all.
func (d DaySchedule) Bookable() bool {
	return d.Enabled && d.WorkHours != nil
}

// ActiveBreaksOn returns the day's breaks with date-specific exclusions
// filtered out. An exclusion waives a break only on exact (start, end)
// match for the given date.
func (d DaySchedule) ActiveBreaksOn(date time.Time) []TimeRange {
	if len(d.Breaks) == 0 {
		return nil
	}
	waived := d.BreakExclusions[date.Format(DateFormat)]
	if len(waived) == 0 {
		return d.Breaks
	}

	active := make([]TimeRange, 0, len(d.Breaks))
	for _, br := range d.Breaks {
		excluded := false
		for _, w := range waived {
			if br.Equal(w) {
				excluded = true
				break
			}
		}
		if !excluded {
			active = append(active, br)
		}
	}
	return active
}

// Validate checks the invariant: enabled days carry a valid work-hour
// window, and every break and exclusion is a valid range.
func (d DaySchedule) Validate() error {
	if d.Enabled {
		if d.WorkHours == nil {
			return fmt.Errorf("enabled day must define work hours")
		}
		if err := d.WorkHours.Validate(); err != nil {
			return fmt.Errorf("invalid work hours: %w", err)
		}
	}
	for _, br := range d.Breaks {
		if err := br.Validate(); err != nil {
			return fmt.Errorf("invalid break: %w", err)
		}
	}
	for date, ranges := range d.BreakExclusions {
		if _, err := time.Parse(DateFormat, date); err != nil {
			return fmt.Errorf("invalid break exclusion date %q", date)
		}
		for _, r := range ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("invalid break exclusion for %s: %w", date, err)
			}
		}
	}
	return nil
}

// weekdayNames in time.Weekday order (Sunday = 0).
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// DayName maps a calendar date to its lowercase weekday key.
func DayName(date time.Time) string {
	return weekdayNames[int(date.Weekday())]
}

// WeeklySchedule maps weekday names (sunday..saturday) to day schedules.
// Missing days are treated as disabled.
type WeeklySchedule map[string]DaySchedule

// DayFor returns the schedule of the date's weekday.
func (ws WeeklySchedule) DayFor(date time.Time) DaySchedule {
	day, ok := ws[DayName(date)]
	if !ok {
		return DaySchedule{Enabled: false}
	}
	return day
}

// Validate checks every declared day against the day-level invariants.
func (ws WeeklySchedule) Validate() error {
	valid := map[string]struct{}{}
	for _, name := range weekdayNames {
		valid[name] = struct{}{}
	}
	for name, day := range ws {
		if _, ok := valid[strings.ToLower(name)]; !ok {
			return fmt.Errorf("unknown weekday %q", name)
		}
		if err := day.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// DefaultDaySchedule is the synthesized always-open day used when
// neither the order nor its markets declare a schedule.
func DefaultDaySchedule() DaySchedule {
	return DaySchedule{
		Enabled: true,
		WorkHours: &TimeRange{
			Start: types.TimeString(DefaultWorkDayStart),
			End:   types.TimeString(DefaultWorkDayEnd),
		},
	}
}

// ScheduleSource identifies which fallback level produced the resolved
// day schedule.
type ScheduleSource string

const (
	ScheduleSourceOrder   ScheduleSource = "order"
	ScheduleSourceMarket  ScheduleSource = "market"
	ScheduleSourceDefault ScheduleSource = "default"
)

// ResolveDaySchedule produces the effective day schedule for an order on
// a calendar date. The order's own schedule wins; otherwise the order's
// owning markets are scanned in attachment order and the first declared
// schedule is used; otherwise an always-open default is synthesized.
//
// The resolver never fails for "no schedule anywhere". A disabled day is
// returned as-is: the caller decides whether to reject the date.
func ResolveDaySchedule(order *Order, markets []*Market, date time.Time) (DaySchedule, ScheduleSource) {
	if order.WeeklySchedule != nil {
		return order.WeeklySchedule.DayFor(date), ScheduleSourceOrder
	}
	for _, market := range markets {
		if market.WeeklySchedule != nil {
			return market.WeeklySchedule.DayFor(date), ScheduleSourceMarket
		}
	}
	return DefaultDaySchedule(), ScheduleSourceDefault
}

// LegacyEntry renders a booking slot in the deprecated available-dates
// format: "YYYY-MM-DD HH:MM-HH:MM".
func LegacyEntry(date time.Time, start, end types.TimeString) string {
	return fmt.Sprintf("%s %s-%s", date.Format(DateFormat), start, end)
}

// ContainsLegacyEntry reports whether the deprecated available-dates
// list still carries the given entry.
func ContainsLegacyEntry(dates []string, entry string) bool {
	for _, d := range dates {
		if strings.TrimSpace(d) == entry {
			return true
		}
	}
	return false
}
