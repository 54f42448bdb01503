package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("create_booking: order not found")

	// ErrOrderNotBookable возвращается, когда заказ не принимает
	// бронирования (не permanent, закрыт или удалён)
	ErrOrderNotBookable = errors.New("create_booking: order does not accept bookings")

	// ErrFeatureUnavailable возвращается, когда подписка владельца заказа
	// не включает возможность бронирования
	ErrFeatureUnavailable = errors.New("create_booking: owner subscription does not include resource booking")

	// ErrInvalidModeConfig возвращается при некорректной конфигурации
	// режима бронирования (multi без requiredResourceCount)
	ErrInvalidModeConfig = errors.New("create_booking: invalid resource booking mode configuration")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrMarketConflict возвращается, когда у клиента уже есть
	// пересекающееся бронирование на заказе того же маркета
	ErrMarketConflict = errors.New("create_booking: client has an overlapping booking in the same market")

	// ErrDayUnavailable возвращается, когда день недели отключён в
	// расписании или не имеет рабочих часов
	ErrDayUnavailable = errors.New("create_booking: day is not available for booking")

	// ErrOutsideWorkHours возвращается, когда слот выходит за рабочие часы
	ErrOutsideWorkHours = errors.New("create_booking: slot is outside of work hours")

	// ErrBreakOverlap возвращается, когда слот пересекает активный перерыв
	ErrBreakOverlap = errors.New("create_booking: slot overlaps an active break")

	// ErrSlotNotListed возвращается, когда слот отсутствует в устаревшем
	// списке доступных дат
	ErrSlotNotListed = errors.New("create_booking: slot is not in the available dates list")

	// ErrSlotNotAvailable возвращается, когда ёмкость слота исчерпана
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
