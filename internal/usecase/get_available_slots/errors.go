package get_available_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrRangeTooWide возвращается при диапазоне дат длиннее месяца
	ErrRangeTooWide = errors.New("get_available_slots: date range is too wide")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("get_available_slots: order not found")

	// ErrOrderNotBookable возвращается, когда заказ не принимает бронирования
	ErrOrderNotBookable = errors.New("get_available_slots: order does not accept bookings")

	// ErrInvalidModeConfig возвращается при некорректной конфигурации
	// режима бронирования
	ErrInvalidModeConfig = errors.New("get_available_slots: invalid resource booking mode configuration")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
