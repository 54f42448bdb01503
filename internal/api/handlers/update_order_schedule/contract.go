package update_order_schedule

import (
	"context"

	updateOrderSchedule "github.com/usluga-market/MPB-BookingService/internal/usecase/update_order_schedule"
)

type UpdateOrderScheduleUseCase interface {
	Execute(ctx context.Context, req *updateOrderSchedule.Request) (*updateOrderSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
