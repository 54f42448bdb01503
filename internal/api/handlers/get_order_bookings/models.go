package get_order_bookings

import (
	"fmt"
	"net/url"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/service/bookings/models"
)

const dateLayout = "2006-01-02"

// parseQuery собирает запрос сервиса из query-параметров
// (startDate, endDate, status, includeInactive).
func parseQuery(query url.Values, orderID, actorID int64) (*models.GetOrderBookingsRequest, error) {
	req := &models.GetOrderBookingsRequest{
		ActorID: actorID,
		OrderID: orderID,
	}

	if raw := query.Get("startDate"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate %q: %w", raw, err)
		}
		req.StartDate = &date
	}

	if raw := query.Get("endDate"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", raw, err)
		}
		req.EndDate = &date
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("endDate is before startDate")
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	req.IncludeInactive = query.Get("includeInactive") == "true"

	return req, nil
}
