package booking

import (
	"context"
	"time"
)

type NewBooking struct {
	UserID        int
	BoxID         int
	Date          time.Time
	Code          string
	StartHour     int
	DurationHours int
}

type Repository interface {
	// Create inserts the booking only if no existing booking on the same
	// box and date overlaps it; the lost race returns ErrSlotTaken.
	Create(ctx context.Context, b NewBooking) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	// AdminDetail joins the booking with its member, scoped to one center.
	AdminDetail(ctx context.Context, centerID, bookingID int) (*AdminBookingDetail, error)
	BoxInCenter(ctx context.Context, boxID, centerID int) (bool, error)
	Delete(ctx context.Context, id int) error
	ListForUser(ctx context.Context, userID int) ([]Booking, error)
	ListForBoxesOnDate(ctx context.Context, boxIDs []int, date time.Time) ([]Booking, error)
	ListForBoxBetween(ctx context.Context, boxID int, from, to time.Time) ([]Booking, error)
	DeleteCoveringHour(ctx context.Context, boxID int, date time.Time, hour int) (int64, error)
}
