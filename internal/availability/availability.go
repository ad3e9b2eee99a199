// Package availability computes free booking slots for boxes within a single
// day. It is pure: callers supply the existing bookings and a query, and get
// back every start hour at which a booking of the requested duration would
// not collide with anything already on the books.
package availability

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// HoursPerDay is the exclusive upper bound of the day-local timeline.
	// All intervals are half-open [start, end) with end <= 24.
	HoursPerDay = 24

	MinDuration = 1
	MaxDuration = 4
)

var (
	ErrInvalidArgument = errors.New("invalid argument")

	ErrInvalidHour     = fmt.Errorf("%w: hour must be between 0 and 23", ErrInvalidArgument)
	ErrInvalidDuration = fmt.Errorf("%w: duration must be between 1 and 4 hours", ErrInvalidArgument)
	ErrInvalidClock    = fmt.Errorf("%w: clock must be formatted HH:MM or HHMM", ErrInvalidArgument)
	ErrInvalidDate     = fmt.Errorf("%w: date must be formatted YYYY-MM-DD", ErrInvalidArgument)
)

// Hour is a day-local hour of day. Construct via NewHour so the bound is
// checked once at the boundary instead of at every use site.
type Hour int

func NewHour(h int) (Hour, error) {
	if h < 0 || h >= HoursPerDay {
		return 0, ErrInvalidHour
	}
	return Hour(h), nil
}

func (h Hour) Int() int { return int(h) }

// Slot is a candidate reservation window [StartHour, EndHour).
type Slot struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Booking is the engine-side view of a persisted booking: the interval it
// occupies on one box. Callers filter by date before handing bookings in.
type Booking struct {
	BoxID         int
	StartHour     int
	DurationHours int
}

// Query asks for every slot of Duration hours starting at or after
// EarliestStart.
type Query struct {
	EarliestStart Hour
	Duration      int
}

// Result maps box IDs to their free slots in ascending start order. Boxes
// with nothing free are omitted. NoSlotsToday is set when the candidate
// range is empty before any booking is even considered (for example a query
// at 23:00 for two hours); it lets callers report "no more bookings today"
// instead of an indistinguishable empty map.
type Result struct {
	EarliestStart int            `json:"next_available_hour"`
	Duration      int            `json:"duration_hours"`
	NoSlotsToday  bool           `json:"-"`
	ByBox         map[int][]Slot `json:"box_availability"`
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return !(aEnd <= bStart || aStart >= bEnd)
}

// Compute enumerates, for every box, each start hour s in
// [query.EarliestStart, 24-query.Duration] such that [s, s+duration) is
// disjoint from all existing bookings on that box. It owns no state and
// performs no I/O; identical inputs always yield identical output.
func Compute(query Query, bookingsByBox map[int][]Booking) (*Result, error) {
	if query.Duration < MinDuration || query.Duration > MaxDuration {
		return nil, ErrInvalidDuration
	}
	if _, err := NewHour(query.EarliestStart.Int()); err != nil {
		return nil, err
	}

	result := &Result{
		EarliestStart: query.EarliestStart.Int(),
		Duration:      query.Duration,
		ByBox:         make(map[int][]Slot),
	}

	lastStart := HoursPerDay - query.Duration
	if query.EarliestStart.Int() > lastStart {
		result.NoSlotsToday = true
		return result, nil
	}

	boxIDs := make([]int, 0, len(bookingsByBox))
	for id := range bookingsByBox {
		boxIDs = append(boxIDs, id)
	}
	sort.Ints(boxIDs)

	for _, boxID := range boxIDs {
		bookings := bookingsByBox[boxID]

		var slots []Slot
		for start := query.EarliestStart.Int(); start <= lastStart; start++ {
			end := start + query.Duration

			free := true
			for _, b := range bookings {
				if Overlaps(start, end, b.StartHour, b.StartHour+b.DurationHours) {
					free = false
					break
				}
			}

			if free {
				slots = append(slots, Slot{StartHour: start, EndHour: end})
			}
		}

		if len(slots) > 0 {
			result.ByBox[boxID] = slots
		}
	}

	return result, nil
}

// FirstOpenHour returns the earliest hour a new booking may start given the
// current wall-clock time: the next whole hour. The second return value is
// false after 23:00, when nothing can start today anymore.
func FirstOpenHour(now time.Time) (Hour, bool) {
	return FirstOpenAfter(Hour(now.Hour()))
}

// FirstOpenAfter is FirstOpenHour for an already-extracted hour of day.
func FirstOpenAfter(current Hour) (Hour, bool) {
	if current.Int() >= HoursPerDay-1 {
		return 0, false
	}
	return current + 1, true
}

// NearestHour rounds the wall-clock time to the nearest whole hour, capped at
// 23 so the result stays inside the current day.
func NearestHour(now time.Time) Hour {
	h := now.Hour()
	if now.Minute() >= 30 && h < HoursPerDay-1 {
		h++
	}
	return Hour(h)
}

// ParseClock parses a time-of-day string in "HH:MM" or "HHMM" form and
// returns its hour component. The minute part is validated but discarded.
func ParseClock(s string) (Hour, error) {
	var hh, mm string
	switch {
	case len(s) == 5 && s[2] == ':':
		hh, mm = s[:2], s[3:]
	case len(s) == 4 && !strings.Contains(s, ":"):
		hh, mm = s[:2], s[2:]
	default:
		return 0, ErrInvalidClock
	}

	hour, err := strconv.Atoi(hh)
	if err != nil {
		return 0, ErrInvalidClock
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, ErrInvalidClock
	}

	h, err := NewHour(hour)
	if err != nil {
		return 0, ErrInvalidClock
	}
	return h, nil
}

// ParseDate parses a calendar day in "YYYY-MM-DD" form.
func ParseDate(s string) (time.Time, error) {
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}
