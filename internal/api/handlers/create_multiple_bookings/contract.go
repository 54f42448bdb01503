package create_multiple_bookings

import (
	"context"

	createBooking "github.com/usluga-market/MPB-BookingService/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	ExecuteBatch(ctx context.Context, req *createBooking.BatchRequest) (*createBooking.BatchResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
