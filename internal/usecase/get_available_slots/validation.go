package get_available_slots

import (
	"fmt"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderID <= 0 {
		return fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: date range is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	days := int(domain.DateOnly(req.EndDate).Sub(domain.DateOnly(req.StartDate)).Hours()/24) + 1
	if days > domain.MaxSlotRangeDays {
		return fmt.Errorf("%w: %d days requested, at most %d allowed", ErrRangeTooWide, days, domain.MaxSlotRangeDays)
	}

	return nil
}
