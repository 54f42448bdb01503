package subscriptionservice

import "errors"

var (
	// ErrSubscriptionNotFound возвращается, когда у владельца нет
	// активной подписки
	ErrSubscriptionNotFound = errors.New("subscriptionservice: active subscription not found")

	// ErrInvalidResponse возвращается при неожиданном ответе сервиса
	ErrInvalidResponse = errors.New("subscriptionservice: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("subscriptionservice: internal error")
)
