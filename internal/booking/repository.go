package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fitboks/internal/db"
)

var (
	ErrSlotTaken       = errors.New("slot already booked")
	ErrBookingNotFound = errors.New("booking not found")
)

// exclusionViolation is the Postgres error code raised by the bookings
// no-overlap EXCLUDE constraint.
const exclusionViolation = "23P01"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const bookingColumns = `id, user_id, box_id, booking_date, booking_code, start_hour, duration_hours, end_hour, created_at`

func (r *repository) Create(ctx context.Context, b NewBooking) (*Booking, error) {
	// Guarded insert: the WHERE NOT EXISTS makes check-and-insert one
	// statement, and the EXCLUDE constraint in the schema backs it up.
	query := `
		INSERT INTO bookings (user_id, box_id, booking_date, booking_code, start_hour, duration_hours, end_hour)
		SELECT $1, $2, $3, $4, $5, $6, $5 + $6
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE box_id = $2
			  AND booking_date = $3
			  AND start_hour < $5 + $6
			  AND start_hour + duration_hours > $5
		)
		RETURNING ` + bookingColumns

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query,
		b.UserID, b.BoxID, b.Date, b.Code, b.StartHour, b.DurationHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotTaken
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &booking, nil
}

func (r *repository) AdminDetail(ctx context.Context, centerID, bookingID int) (*AdminBookingDetail, error) {
	query := `
		SELECT b.id, b.user_id, b.box_id, b.booking_date, b.booking_code,
		       b.start_hour, b.duration_hours, b.end_hour, b.created_at,
		       u.email, u.first_name, u.last_name, u.phone
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN boxes bx ON bx.id = b.box_id
		WHERE b.id = $1 AND bx.fitness_center_id = $2
	`

	var detail AdminBookingDetail
	err := r.db.GetContext(ctx, &detail, query, bookingID, centerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	return &detail, nil
}

func (r *repository) BoxInCenter(ctx context.Context, boxID, centerID int) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM boxes WHERE id = $1 AND fitness_center_id = $2)`,
		boxID, centerID)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY booking_date DESC, start_hour DESC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListForBoxesOnDate(ctx context.Context, boxIDs []int, date time.Time) ([]Booking, error) {
	if len(boxIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE box_id IN (?) AND booking_date = ?
		ORDER BY box_id ASC, start_hour ASC
	`, boxIDs, date)
	if err != nil {
		return nil, err
	}

	var bookings []Booking
	err = r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListForBoxBetween(ctx context.Context, boxID int, from, to time.Time) ([]Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE box_id = $1 AND booking_date >= $2 AND booking_date <= $3
		ORDER BY booking_date ASC, start_hour ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, boxID, from, to)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) DeleteCoveringHour(ctx context.Context, boxID int, date time.Time, hour int) (int64, error) {
	query := `
		DELETE FROM bookings
		WHERE box_id = $1
		  AND booking_date = $2
		  AND start_hour <= $3
		  AND start_hour + duration_hours > $3
	`

	result, err := r.db.ExecContext(ctx, query, boxID, date, hour)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
