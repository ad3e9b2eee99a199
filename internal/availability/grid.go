package availability

import (
	"strconv"
	"time"
)

// GridBooking is a dated booking used to build the per-hour week view for a
// single box.
type GridBooking struct {
	ID            int
	Date          time.Time
	StartHour     int
	DurationHours int
}

// SlotInfo identifies the booking occupying an hour in a grid.
type SlotInfo struct {
	BookingID int `json:"booking_id"`
	StartHour int `json:"start_hour"`
	Duration  int `json:"duration"`
	EndHour   int `json:"end_hour"`
}

// HourStatus is one cell of a day grid.
type HourStatus struct {
	Available bool      `json:"available"`
	Booking   *SlotInfo `json:"booking"`
}

// DayGrid maps hour-of-day ("0".."23") to its status.
type DayGrid map[string]HourStatus

const dateKeyFormat = "2006-01-02"

// WeekGrid builds an hour-by-hour occupancy map for one box over `days`
// consecutive dates starting at from. Every hour starts available; each
// booking marks the hours it covers, truncated at the day boundary. Hours
// outside [0,24) are dropped rather than wrapped.
func WeekGrid(from time.Time, days int, bookings []GridBooking) map[string]DayGrid {
	grid := make(map[string]DayGrid, days)

	for i := 0; i < days; i++ {
		key := from.AddDate(0, 0, i).Format(dateKeyFormat)
		day := make(DayGrid, HoursPerDay)
		for hour := 0; hour < HoursPerDay; hour++ {
			day[hourKey(hour)] = HourStatus{Available: true}
		}
		grid[key] = day
	}

	for _, b := range bookings {
		day, ok := grid[b.Date.Format(dateKeyFormat)]
		if !ok {
			continue
		}

		info := &SlotInfo{
			BookingID: b.ID,
			StartHour: b.StartHour,
			Duration:  b.DurationHours,
			EndHour:   b.StartHour + b.DurationHours,
		}
		for hour := b.StartHour; hour < b.StartHour+b.DurationHours; hour++ {
			if hour < 0 || hour >= HoursPerDay {
				continue
			}
			day[hourKey(hour)] = HourStatus{Available: false, Booking: info}
		}
	}

	return grid
}

// Hour keys are strings to match the JSON shape consumed by the admin UI.
func hourKey(hour int) string {
	return strconv.Itoa(hour)
}
