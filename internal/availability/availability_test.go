package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHour(t *testing.T) {
	for _, h := range []int{0, 1, 12, 23} {
		hour, err := NewHour(h)
		require.NoError(t, err)
		assert.Equal(t, h, hour.Int())
	}

	for _, h := range []int{-1, 24, 25, 100} {
		_, err := NewHour(h)
		assert.ErrorIs(t, err, ErrInvalidHour)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 10, 12, 10, 12, true},
		{"contained", 10, 14, 11, 12, true},
		{"partial left", 9, 11, 10, 12, true},
		{"partial right", 11, 13, 10, 12, true},
		{"touching left edge", 8, 10, 10, 12, false},
		{"touching right edge", 12, 14, 10, 12, false},
		{"disjoint", 0, 2, 10, 12, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestComputeInvalidDuration(t *testing.T) {
	for _, d := range []int{0, -1, 5, 24} {
		result, err := Compute(Query{EarliestStart: 8, Duration: d}, nil)
		assert.ErrorIs(t, err, ErrInvalidDuration)
		assert.Nil(t, result, "no partial result on invalid duration")
	}
}

func TestComputeAroundExistingBooking(t *testing.T) {
	// Box 1 has a booking covering [10, 12). A two hour query from 08:00
	// must offer {8,10} and everything from {12,14} onwards, and must not
	// offer any window touching [10, 12).
	bookings := map[int][]Booking{
		1: {{BoxID: 1, StartHour: 10, DurationHours: 2}},
	}

	result, err := Compute(Query{EarliestStart: 8, Duration: 2}, bookings)
	require.NoError(t, err)
	require.False(t, result.NoSlotsToday)

	slots := result.ByBox[1]
	require.NotEmpty(t, slots)

	want := []Slot{{8, 10}}
	for s := 12; s <= 22; s++ {
		want = append(want, Slot{s, s + 2})
	}
	assert.Equal(t, want, slots)

	for _, s := range slots {
		assert.False(t, Overlaps(s.StartHour, s.EndHour, 10, 12),
			"slot %+v overlaps the existing booking", s)
	}
}

func TestComputeReturnedSlotInvariants(t *testing.T) {
	bookings := map[int][]Booking{
		7: {
			{BoxID: 7, StartHour: 6, DurationHours: 1},
			{BoxID: 7, StartHour: 13, DurationHours: 4},
			{BoxID: 7, StartHour: 20, DurationHours: 2},
		},
	}

	query := Query{EarliestStart: 5, Duration: 3}
	result, err := Compute(query, bookings)
	require.NoError(t, err)

	for _, slots := range result.ByBox {
		for i, s := range slots {
			assert.Equal(t, query.Duration, s.EndHour-s.StartHour)
			assert.GreaterOrEqual(t, s.StartHour, query.EarliestStart.Int())
			assert.LessOrEqual(t, s.EndHour, HoursPerDay)
			for _, b := range bookings[7] {
				assert.False(t, Overlaps(s.StartHour, s.EndHour, b.StartHour, b.StartHour+b.DurationHours))
			}
			if i > 0 {
				assert.Greater(t, s.StartHour, slots[i-1].StartHour, "slots must ascend")
			}
		}
	}
}

func TestComputeNoBookingsFullDay(t *testing.T) {
	// duration=4 from hour 0 over an empty box: {0,4},{1,5},...,{20,24}.
	result, err := Compute(Query{EarliestStart: 0, Duration: 4}, map[int][]Booking{3: nil})
	require.NoError(t, err)

	slots := result.ByBox[3]
	require.Len(t, slots, 21)
	assert.Equal(t, Slot{0, 4}, slots[0])
	assert.Equal(t, Slot{20, 24}, slots[20])
}

func TestComputeDayBoundary(t *testing.T) {
	// 23:00 with duration 1 leaves exactly one candidate, {23,24}.
	result, err := Compute(Query{EarliestStart: 23, Duration: 1}, map[int][]Booking{1: nil})
	require.NoError(t, err)
	assert.False(t, result.NoSlotsToday)
	assert.Equal(t, []Slot{{23, 24}}, result.ByBox[1])

	// 23:00 with duration 2 cannot fit before midnight.
	result, err = Compute(Query{EarliestStart: 23, Duration: 2}, map[int][]Booking{1: nil})
	require.NoError(t, err)
	assert.True(t, result.NoSlotsToday)
	assert.Empty(t, result.ByBox)
}

func TestComputeOmitsFullyBookedBoxes(t *testing.T) {
	// Box A is blocked all day, box B is empty: only B appears.
	full := make([]Booking, 0, 6)
	for s := 0; s < HoursPerDay; s += 4 {
		full = append(full, Booking{BoxID: 1, StartHour: s, DurationHours: 4})
	}
	bookings := map[int][]Booking{1: full, 2: nil}

	result, err := Compute(Query{EarliestStart: 0, Duration: 2}, bookings)
	require.NoError(t, err)

	assert.NotContains(t, result.ByBox, 1)
	assert.Contains(t, result.ByBox, 2)
	assert.Len(t, result.ByBox, 1)
}

func TestComputeDeterministic(t *testing.T) {
	bookings := map[int][]Booking{
		4: {{BoxID: 4, StartHour: 9, DurationHours: 3}},
		2: {{BoxID: 2, StartHour: 14, DurationHours: 2}},
		9: nil,
	}
	query := Query{EarliestStart: 7, Duration: 2}

	first, err := Compute(query, bookings)
	require.NoError(t, err)
	second, err := Compute(query, bookings)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeEmptyInput(t *testing.T) {
	result, err := Compute(Query{EarliestStart: 10, Duration: 1}, nil)
	require.NoError(t, err)
	assert.False(t, result.NoSlotsToday)
	assert.Empty(t, result.ByBox)
}

func TestFirstOpenHour(t *testing.T) {
	tests := []struct {
		clock string
		want  int
		ok    bool
	}{
		{"08:15", 9, true},
		{"00:00", 1, true},
		{"22:59", 23, true},
		{"23:00", 0, false},
		{"23:59", 0, false},
	}
	for _, tt := range tests {
		now, err := time.Parse("15:04", tt.clock)
		require.NoError(t, err)

		hour, ok := FirstOpenHour(now)
		assert.Equal(t, tt.ok, ok, tt.clock)
		if tt.ok {
			assert.Equal(t, tt.want, hour.Int(), tt.clock)
		}
	}
}

func TestNearestHour(t *testing.T) {
	tests := []struct {
		clock string
		want  int
	}{
		{"10:00", 10},
		{"10:29", 10},
		{"10:30", 11},
		{"10:59", 11},
		{"23:45", 23}, // capped, never wraps to tomorrow
	}
	for _, tt := range tests {
		now, err := time.Parse("15:04", tt.clock)
		require.NoError(t, err)
		assert.Equal(t, tt.want, NearestHour(now).Int(), tt.clock)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"08:30", 8, false},
		{"0830", 8, false},
		{"23:59", 23, false},
		{"00:00", 0, false},
		{"2400", 0, true},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"8:30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
		{"123", 0, true},
	}
	for _, tt := range tests {
		hour, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidArgument, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, hour.Int(), tt.in)
	}
}

func TestComputeInvalidEarliestStart(t *testing.T) {
	_, err := Compute(Query{EarliestStart: Hour(24), Duration: 2}, nil)
	assert.ErrorIs(t, err, ErrInvalidHour)

	_, err = Compute(Query{EarliestStart: Hour(-1), Duration: 2}, nil)
	assert.ErrorIs(t, err, ErrInvalidHour)
}
