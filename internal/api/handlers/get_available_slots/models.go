package get_available_slots

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/usluga-market/MPB-BookingService/internal/domain"
	getAvailableSlots "github.com/usluga-market/MPB-BookingService/internal/usecase/get_available_slots"
)

// TimeRangeDTO интервал времени в HTTP ответе
type TimeRangeDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// BookedRangeDTO занятый интервал дня
type BookedRangeDTO struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// DayDTO доступность одного календарного дня
type DayDTO struct {
	Date        string           `json:"date"`
	Available   bool             `json:"available"`
	Source      string           `json:"source"`
	WorkHours   *TimeRangeDTO    `json:"workHours,omitempty"`
	Breaks      []TimeRangeDTO   `json:"breaks,omitempty"`
	Bookings    []BookedRangeDTO `json:"bookings"`
	Capacity    int              `json:"capacity"`
	ListedSlots []TimeRangeDTO   `json:"listedSlots,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	OrderID int64    `json:"orderId"`
	Days    []DayDTO `json:"days"`
}

// parseQuery собирает запрос use case из query-параметров
// (startDate, endDate, marketMemberId).
func parseQuery(query url.Values, orderID int64) (*getAvailableSlots.Request, error) {
	startRaw := query.Get("startDate")
	endRaw := query.Get("endDate")
	if startRaw == "" || endRaw == "" {
		return nil, fmt.Errorf("startDate and endDate are required")
	}

	startDate, err := time.Parse(domain.DateFormat, startRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %w", startRaw, err)
	}

	endDate, err := time.Parse(domain.DateFormat, endRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q: %w", endRaw, err)
	}

	req := &getAvailableSlots.Request{
		OrderID:   orderID,
		StartDate: startDate,
		EndDate:   endDate,
	}

	if raw := query.Get("marketMemberId"); raw != "" {
		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || memberID <= 0 {
			return nil, fmt.Errorf("invalid marketMemberId %q", raw)
		}
		req.MarketMemberID = &memberID
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		OrderID: resp.OrderID,
		Days:    make([]DayDTO, 0, len(resp.Days)),
	}

	for _, day := range resp.Days {
		dto := DayDTO{
			Date:        day.Date,
			Available:   day.Available,
			Source:      string(day.Source),
			Breaks:      toTimeRangeDTOs(day.Breaks),
			Bookings:    make([]BookedRangeDTO, 0, len(day.Bookings)),
			Capacity:    day.Capacity,
			ListedSlots: toTimeRangeDTOs(day.ListedSlots),
		}
		if day.WorkHours != nil {
			dto.WorkHours = &TimeRangeDTO{
				Start: day.WorkHours.Start.String(),
				End:   day.WorkHours.End.String(),
			}
		}
		for _, b := range day.Bookings {
			dto.Bookings = append(dto.Bookings, BookedRangeDTO{
				StartTime: b.StartTime.String(),
				EndTime:   b.EndTime.String(),
			})
		}
		out.Days = append(out.Days, dto)
	}

	return out
}

func toTimeRangeDTOs(ranges []domain.TimeRange) []TimeRangeDTO {
	if len(ranges) == 0 {
		return nil
	}
	out := make([]TimeRangeDTO, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, TimeRangeDTO{Start: r.Start.String(), End: r.End.String()})
	}
	return out
}
