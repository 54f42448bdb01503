package create_booking

import (
	"context"
	"fmt"
)

// ExecuteBatch создает несколько бронирований одним запросом. Каждый слот
// обрабатывается независимо: отказ одного слота не отменяет остальные,
// в том числе уже созданные
func (uc *UseCase) ExecuteBatch(ctx context.Context, req *BatchRequest) (*BatchResponse, error) {
	uc.logger.Info("CreateMultipleBookings: order=%d, client=%d, slots=%d",
		req.OrderID, req.ClientID, len(req.Slots))

	if req.OrderID <= 0 {
		return nil, fmt.Errorf("%w: orderID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if len(req.Slots) == 0 {
		return nil, fmt.Errorf("%w: slots list is empty", ErrInvalidInput)
	}

	resp := &BatchResponse{}

	for i, slot := range req.Slots {
		booking, err := uc.Execute(ctx, &Request{
			OrderID:        req.OrderID,
			ClientID:       req.ClientID,
			Date:           slot.Date,
			StartTime:      slot.StartTime,
			EndTime:        slot.EndTime,
			MarketMemberID: slot.MarketMemberID,
		})
		if err != nil {
			uc.logger.Warn("CreateMultipleBookings: slot %d failed: %v", i, err)
			resp.Errors = append(resp.Errors, SlotError{Index: i, Err: err})
			continue
		}
		resp.Bookings = append(resp.Bookings, booking)
	}

	uc.logger.Info("CreateMultipleBookings: done, created=%d, failed=%d",
		len(resp.Bookings), len(resp.Errors))

	return resp, nil
}
