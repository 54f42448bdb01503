package cancel_booking

import (
	"github.com/usluga-market/MPB-BookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest(actorID int64) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		ActorID:            actorID,
		CancellationReason: r.CancellationReason,
	}
}
