package update_order_schedule

import (
	"reflect"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// scheduleChanged сравнивает старое и новое расписание глубоким равенством
func scheduleChanged(prev, next *domain.WeeklySchedule) bool {
	return !reflect.DeepEqual(prev, next)
}

// legacyDatesChanged сравнивает старый и новый список доступных дат
func legacyDatesChanged(prev, next []string) bool {
	return !reflect.DeepEqual(prev, next)
}

// invalidatedBySchedule определяет, перестаёт ли слот бронирования
// существовать в новом расписании: день отключён или интервал больше
// не помещается в рабочие часы
func invalidatedBySchedule(b *domain.Booking, schedule *domain.WeeklySchedule) bool {
	day := schedule.DayFor(b.ScheduledDate)
	if !day.Bookable() {
		return true
	}
	return !day.WorkHours.Contains(b.StartTime, b.EndTime)
}

// invalidatedByLegacyList определяет, пропал ли слот бронирования из
// нового списка доступных дат
func invalidatedByLegacyList(b *domain.Booking, dates []string) bool {
	entry := domain.LegacyEntry(b.ScheduledDate, b.StartTime, b.EndTime)
	return !domain.ContainsLegacyEntry(dates, entry)
}

// partitionAffected делит затронутые правкой бронирования на блокирующие
// (дата не позже сегодняшней) и будущие. Блокирующие отклоняют правку
// целиком, будущие автоматически отменяются
func partitionAffected(bookings []*domain.Booking, invalidated func(*domain.Booking) bool, today time.Time) (blocking, future []*domain.Booking) {
	cutoff := domain.DateOnly(today)

	for _, b := range bookings {
		if !invalidated(b) {
			continue
		}
		if domain.DateOnly(b.ScheduledDate).After(cutoff) {
			future = append(future, b)
		} else {
			blocking = append(blocking, b)
		}
	}

	return blocking, future
}

// breakConflicts возвращает будущие бронирования, попадающие в активные
// перерывы нового расписания. Исключения на дату отфильтровываются до
// проверки пересечения. Бронирования из skip (уже отменённые правкой)
// не учитываются
func breakConflicts(bookings []*domain.Booking, schedule *domain.WeeklySchedule, today time.Time, skip map[int64]bool) []*domain.Booking {
	cutoff := domain.DateOnly(today)

	var conflicts []*domain.Booking
	for _, b := range bookings {
		if skip[b.ID] || !domain.DateOnly(b.ScheduledDate).After(cutoff) {
			continue
		}

		day := schedule.DayFor(b.ScheduledDate)
		for _, br := range day.ActiveBreaksOn(b.ScheduledDate) {
			if domain.Overlaps(b.StartTime, b.EndTime, br.Start, br.End) {
				conflicts = append(conflicts, b)
				break
			}
		}
	}

	return conflicts
}
