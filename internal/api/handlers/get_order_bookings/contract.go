package get_order_bookings

import (
	"context"

	"github.com/usluga-market/MPB-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetOrderBookings(ctx context.Context, req *models.GetOrderBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
