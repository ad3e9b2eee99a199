package box

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"fitboks/internal/availability"
	"fitboks/internal/booking"
	"fitboks/internal/logger"
	"fitboks/internal/metrics"
)

var ErrInvalidStatus = errors.New("status must be 'free' or 'closed'")

type Service interface {
	// Availability computes, for every box of a center, the free slots of
	// the requested duration on the given date, starting after the given
	// wall clock.
	Availability(ctx context.Context, centerID int, date, clock string, duration int) (*availability.Result, error)
	ListWithOccupancy(ctx context.Context, centerID int, now time.Time) ([]BoxWithOccupancy, error)
	WeekAvailability(ctx context.Context, centerID, boxID int, from time.Time) (*WeekView, error)
	UpdateStatus(ctx context.Context, userID int, req UpdateStatusRequest, now time.Time) error
	Create(ctx context.Context, req CreateBoxRequest) (*Box, error)
}

type service struct {
	repo        Repository
	bookingRepo booking.Repository
}

func NewService(repo Repository, bookingRepo booking.Repository) Service {
	return &service{
		repo:        repo,
		bookingRepo: bookingRepo,
	}
}

func (s *service) Availability(ctx context.Context, centerID int, date, clock string, duration int) (*availability.Result, error) {
	day, err := availability.ParseDate(date)
	if err != nil {
		metrics.RecordAvailabilityQuery("invalid")
		return nil, err
	}

	currentHour, err := availability.ParseClock(clock)
	if err != nil {
		metrics.RecordAvailabilityQuery("invalid")
		return nil, err
	}

	if duration < availability.MinDuration || duration > availability.MaxDuration {
		metrics.RecordAvailabilityQuery("invalid")
		return nil, availability.ErrInvalidDuration
	}

	earliest, ok := availability.FirstOpenAfter(currentHour)
	if !ok {
		metrics.RecordAvailabilityQuery("no_slots_today")
		return &availability.Result{
			Duration:     duration,
			NoSlotsToday: true,
			ByBox:        map[int][]availability.Slot{},
		}, nil
	}

	boxes, err := s.repo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	boxIDs := make([]int, len(boxes))
	for i, b := range boxes {
		boxIDs[i] = b.ID
	}

	existing, err := s.bookingRepo.ListForBoxesOnDate(ctx, boxIDs, day)
	if err != nil {
		return nil, err
	}

	// Boxes without bookings still need an entry so the engine reports
	// them as fully free.
	byBox := make(map[int][]availability.Booking, len(boxes))
	for _, id := range boxIDs {
		byBox[id] = nil
	}
	for _, b := range existing {
		byBox[b.BoxID] = append(byBox[b.BoxID], availability.Booking{
			BoxID:         b.BoxID,
			StartHour:     b.StartHour,
			DurationHours: b.DurationHours,
		})
	}

	result, err := availability.Compute(availability.Query{
		EarliestStart: earliest,
		Duration:      duration,
	}, byBox)
	if err != nil {
		metrics.RecordAvailabilityQuery("invalid")
		return nil, err
	}

	if result.NoSlotsToday {
		metrics.RecordAvailabilityQuery("no_slots_today")
	} else {
		metrics.RecordAvailabilityQuery("ok")
	}

	return result, nil
}

func (s *service) ListWithOccupancy(ctx context.Context, centerID int, now time.Time) ([]BoxWithOccupancy, error) {
	boxes, err := s.repo.ListByCenter(ctx, centerID)
	if err != nil {
		return nil, err
	}

	// Occupancy is judged at the next whole hour; after 23:00 at the last
	// hour of the day.
	hour, ok := availability.FirstOpenHour(now)
	if !ok {
		hour = availability.Hour(availability.HoursPerDay - 1)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	boxIDs := make([]int, len(boxes))
	for i, b := range boxes {
		boxIDs[i] = b.ID
	}

	bookings, err := s.bookingRepo.ListForBoxesOnDate(ctx, boxIDs, today)
	if err != nil {
		return nil, err
	}

	occupied := make(map[int]bool)
	for _, b := range bookings {
		if b.StartHour <= hour.Int() && b.StartHour+b.DurationHours > hour.Int() {
			occupied[b.BoxID] = true
		}
	}

	result := make([]BoxWithOccupancy, len(boxes))
	for i, b := range boxes {
		result[i] = BoxWithOccupancy{Box: b, Occupied: occupied[b.ID]}
	}

	return result, nil
}

func (s *service) WeekAvailability(ctx context.Context, centerID, boxID int, from time.Time) (*WeekView, error) {
	box, err := s.repo.GetByCenterAndID(ctx, centerID, boxID)
	if err != nil {
		return nil, err
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := start.AddDate(0, 0, 6)

	bookings, err := s.bookingRepo.ListForBoxBetween(ctx, box.ID, start, end)
	if err != nil {
		return nil, err
	}

	gridBookings := make([]availability.GridBooking, len(bookings))
	for i, b := range bookings {
		gridBookings[i] = availability.GridBooking{
			ID:            b.ID,
			Date:          b.Date,
			StartHour:     b.StartHour,
			DurationHours: b.DurationHours,
		}
	}

	return &WeekView{
		BoxID: box.ID,
		Dates: availability.WeekGrid(start, 7, gridBookings),
	}, nil
}

// UpdateStatus lets staff close a box on the spot (maintenance, cleaning)
// or free it again. Closing removes whatever booking covers the current
// hour and blocks the box with a walk-in booking of the given duration.
func (s *service) UpdateStatus(ctx context.Context, userID int, req UpdateStatusRequest, now time.Time) error {
	box, err := s.repo.GetByCenterAndID(ctx, req.FitnessCenterID, req.BoxID)
	if err != nil {
		return err
	}

	hour := availability.NearestHour(now)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	deleted, err := s.bookingRepo.DeleteCoveringHour(ctx, box.ID, today, hour.Int())
	if err != nil {
		return err
	}
	if deleted > 0 {
		logger.Info("cleared bookings for box status change",
			"box_id", box.ID, "hour", hour.Int(), "deleted", deleted)
	}

	switch req.Status {
	case StatusFree:
		return s.repo.UpdateStatus(ctx, box.ID, StatusFree)

	case StatusClosed:
		duration := req.DurationHours
		if duration < availability.MinDuration || duration > availability.MaxDuration {
			return availability.ErrInvalidDuration
		}
		// Truncate at day end; blocks never spill into tomorrow.
		if hour.Int()+duration > availability.HoursPerDay {
			duration = availability.HoursPerDay - hour.Int()
		}

		if _, err := s.bookingRepo.Create(ctx, booking.NewBooking{
			UserID:        userID,
			BoxID:         box.ID,
			Date:          today,
			Code:          newBlockCode(),
			StartHour:     hour.Int(),
			DurationHours: duration,
		}); err != nil {
			return err
		}

		return s.repo.UpdateStatus(ctx, box.ID, StatusClosed)

	default:
		return ErrInvalidStatus
	}
}

func (s *service) Create(ctx context.Context, req CreateBoxRequest) (*Box, error) {
	return s.repo.Create(ctx, req.FitnessCenterID, req.Number)
}

const blockCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newBlockCode mirrors member booking codes but in letters+digits so staff
// can tell a maintenance block from a walk-in at a glance.
func newBlockCode() string {
	code := make([]byte, 4)
	for i := range code {
		code[i] = blockCodeAlphabet[rand.IntN(len(blockCodeAlphabet))]
	}
	return string(code)
}
