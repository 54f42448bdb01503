package update_order_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_order_schedule: invalid input data")

	// ErrInvalidSchedule возвращается, когда новое расписание нарушает
	// инварианты дневного расписания
	ErrInvalidSchedule = errors.New("update_order_schedule: invalid schedule")

	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("update_order_schedule: order not found")

	// ErrAccessDenied возвращается, когда actor не является владельцем заказа
	ErrAccessDenied = errors.New("update_order_schedule: access denied")

	// ErrPastBookingsConflict возвращается, когда правка делает
	// недействительным хотя бы одно прошедшее или сегодняшнее бронирование.
	// Историю правка не трогает никогда, поэтому отклоняется целиком
	ErrPastBookingsConflict = errors.New("update_order_schedule: edit invalidates past or current bookings")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_order_schedule: internal error")
)
