package create_booking

import (
	"fmt"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	"github.com/usluga-market/MPB-BookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateSlotTimes(req.StartTime, req.EndTime)
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
// расписания: день включён, слот внутри рабочих часов и не пересекает
// активные перерывы (с учётом исключений на дату)
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

// checkMarketConflict проверяет пересечение кандидата с бронированиями
// клиента на заказах того же маркета
func checkMarketConflict(siblings []*domain.Booking, start, end types.TimeString, excludeID int64) error {
	conflicts := domain.CountOverlapping(siblings, start, end, excludeID)
	if conflicts > 0 {
		return fmt.Errorf("%w: %d overlapping booking(s)", ErrMarketConflict, conflicts)
	}
	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
