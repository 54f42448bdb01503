package update_booking

import (
	"fmt"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actorID must be positive", ErrInvalidInput)
	}

	if req.Date == nil && req.StartTime == nil && req.EndTime == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return nil
}

// mergeTarget накладывает переданные поля запроса на текущий слот
// бронирования и возвращает целевые дату и границы
func mergeTarget(booking *domain.Booking, req *Request) (time.Time, types.TimeString, types.TimeString) {
	date := booking.ScheduledDate
	start := booking.StartTime
	end := booking.EndTime

	if req.Date != nil {
		date = *req.Date
	}
	if req.StartTime != nil {
		start = *req.StartTime
	}
	if req.EndTime != nil {
		end = *req.EndTime
	}

	return date, start, end
}

// validateSlotTimes валидирует формат и порядок границ слота
func validateSlotTimes(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidInput, start, end)
	}

	return nil
}

// validateSlotAgainstSchedule проверяет слот против разрешённого дневного
// расписания
func validateSlotAgainstSchedule(day domain.DaySchedule, date time.Time, start, end types.TimeString) error {
	if !day.Bookable() {
		return fmt.Errorf("%w: %s is disabled in the schedule", ErrDayUnavailable, domain.DayName(date))
	}

	if !day.WorkHours.Contains(start, end) {
		return fmt.Errorf("%w: slot %s-%s is outside of work hours %s-%s",
			ErrOutsideWorkHours, start, end, day.WorkHours.Start, day.WorkHours.End)
	}

	for _, br := range day.ActiveBreaksOn(date) {
		if domain.Overlaps(start, end, br.Start, br.End) {
			return fmt.Errorf("%w: slot %s-%s overlaps break %s-%s",
				ErrBreakOverlap, start, end, br.Start, br.End)
		}
	}

	return nil
}

// validateLegacySlot проверяет слот против устаревшего списка доступных дат
func validateLegacySlot(dates []string, date time.Time, start, end types.TimeString) error {
	entry := domain.LegacyEntry(date, start, end)
	if !domain.ContainsLegacyEntry(dates, entry) {
		return fmt.Errorf("%w: %s", ErrSlotNotListed, entry)
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
