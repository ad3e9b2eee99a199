package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"fitboks/internal/availability"
	"fitboks/internal/logger"
	"fitboks/internal/metrics"
	"fitboks/internal/user"
)

var (
	ErrNotOwner    = errors.New("can only cancel own bookings")
	ErrBoxNotFound = errors.New("box not found")
	ErrPastDayEnd  = fmt.Errorf("%w: booking must end by hour 24", availability.ErrInvalidArgument)
)

// Mailer is the slice of the email service bookings need.
type Mailer interface {
	SendBookingConfirmation(ctx context.Context, email, name string, boxID int, date time.Time, startHour, endHour int, code string) error
	SendBookingCancellation(ctx context.Context, email, name string, boxID int, date time.Time, startHour int) error
}

type Service interface {
	Create(ctx context.Context, userID, centerID int, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) error
	ListMine(ctx context.Context, userID int) ([]Booking, error)
	AdminDetail(ctx context.Context, centerID, bookingID int) (*AdminBookingDetail, error)
}

type service struct {
	repo     Repository
	userRepo user.Repository
	mailer   Mailer
}

func NewService(repo Repository, userRepo user.Repository, mailer Mailer) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		mailer:   mailer,
	}
}

func (s *service) Create(ctx context.Context, userID, centerID int, req CreateBookingRequest) (*Booking, error) {
	date, err := availability.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}

	startHour, err := availability.NewHour(req.StartHour)
	if err != nil {
		return nil, err
	}
	if req.DurationHours < availability.MinDuration || req.DurationHours > availability.MaxDuration {
		return nil, availability.ErrInvalidDuration
	}
	if startHour.Int()+req.DurationHours > availability.HoursPerDay {
		return nil, ErrPastDayEnd
	}

	inCenter, err := s.repo.BoxInCenter(ctx, req.BoxID, centerID)
	if err != nil {
		return nil, err
	}
	if !inCenter {
		return nil, ErrBoxNotFound
	}

	// Re-validate against a fresh snapshot before insert. The guarded
	// insert still decides the race; this keeps the common conflict off
	// the database.
	existing, err := s.repo.ListForBoxesOnDate(ctx, []int{req.BoxID}, date)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if availability.Overlaps(
			startHour.Int(), startHour.Int()+req.DurationHours,
			b.StartHour, b.StartHour+b.DurationHours,
		) {
			metrics.RecordBookingConflict()
			return nil, ErrSlotTaken
		}
	}

	booking, err := s.repo.Create(ctx, NewBooking{
		UserID:        userID,
		BoxID:         req.BoxID,
		Date:          date,
		Code:          newBookingCode(),
		StartHour:     startHour.Int(),
		DurationHours: req.DurationHours,
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			metrics.RecordBookingConflict()
		}
		return nil, err
	}

	metrics.RecordBooking()

	if member, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if err := s.mailer.SendBookingConfirmation(
			ctx, member.Email, member.FirstName,
			booking.BoxID, booking.Date, booking.StartHour, booking.EndHour, booking.Code,
		); err != nil {
			logger.Error("failed to queue booking confirmation", "booking_id", booking.ID, "error", err)
		}
	}

	return booking, nil
}

func (s *service) Cancel(ctx context.Context, userID, bookingID int) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return ErrBookingNotFound
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()

	if member, err := s.userRepo.FindByID(ctx, userID); err == nil {
		if err := s.mailer.SendBookingCancellation(
			ctx, member.Email, member.FirstName,
			booking.BoxID, booking.Date, booking.StartHour,
		); err != nil {
			logger.Error("failed to queue cancellation email", "booking_id", bookingID, "error", err)
		}
	}

	return nil
}

func (s *service) ListMine(ctx context.Context, userID int) ([]Booking, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) AdminDetail(ctx context.Context, centerID, bookingID int) (*AdminBookingDetail, error) {
	return s.repo.AdminDetail(ctx, centerID, bookingID)
}

// newBookingCode returns the 4 digit code members show at the door.
func newBookingCode() string {
	return fmt.Sprintf("%04d", rand.IntN(10000))
}
