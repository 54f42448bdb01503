package update_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrOrderNotFound возвращается, когда заказ бронирования не найден
	ErrOrderNotFound = errors.New("update_booking: order not found")

	// ErrAccessDenied возвращается, когда actor не является ни клиентом
	// бронирования, ни владельцем заказа
	ErrAccessDenied = errors.New("update_booking: access denied")

	// ErrNotUpdatable возвращается при попытке перенести завершённое или
	// отменённое бронирование
	ErrNotUpdatable = errors.New("update_booking: booking can no longer be updated")

	// ErrOrderNotBookable возвращается, когда заказ больше не принимает
	// бронирования
	ErrOrderNotBookable = errors.New("update_booking: order does not accept bookings")

	// ErrFeatureUnavailable возвращается, когда подписка владельца заказа
	// не включает возможность бронирования
	ErrFeatureUnavailable = errors.New("update_booking: owner subscription does not include resource booking")

	// ErrInvalidModeConfig возвращается при некорректной конфигурации
	// режима бронирования
	ErrInvalidModeConfig = errors.New("update_booking: invalid resource booking mode configuration")

	// ErrInvalidDate возвращается при новой дате бронирования в прошлом
	ErrInvalidDate = errors.New("update_booking: invalid booking date")

	// ErrMarketConflict возвращается, когда у клиента уже есть
	// пересекающееся бронирование на заказе того же маркета
	ErrMarketConflict = errors.New("update_booking: client has an overlapping booking in the same market")

	// ErrDayUnavailable возвращается, когда день недели отключён в расписании
	ErrDayUnavailable = errors.New("update_booking: day is not available for booking")

	// ErrOutsideWorkHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideWorkHours = errors.New("update_booking: slot is outside of work hours")

	// ErrBreakOverlap возвращается, когда слот пересекает активный перерыв
	ErrBreakOverlap = errors.New("update_booking: slot overlaps an active break")

	// ErrSlotNotListed возвращается, когда слот отсутствует в устаревшем
	// списке доступных дат
	ErrSlotNotListed = errors.New("update_booking: slot is not in the available dates list")

	// ErrSlotNotAvailable возвращается, когда ёмкость слота исчерпана
	ErrSlotNotAvailable = errors.New("update_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
