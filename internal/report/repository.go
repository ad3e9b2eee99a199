package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Stats collects the dashboard counters for one fitness center. All counts
// are taken relative to now so callers can pin the clock in tests.
func (r *Repository) Stats(ctx context.Context, centerID int, now time.Time) (*Stats, error) {
	stats := &Stats{}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	query := `
		SELECT COUNT(*) FROM users
		WHERE fitness_center_id = $1 AND is_member = TRUE AND created_at >= $2
	`
	if err := r.db.GetContext(ctx, &stats.NewMembersThisMonth, query, centerID, monthStart); err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &stats.NewMembersToday, query, centerID, dayStart); err != nil {
		return nil, err
	}

	query = `
		SELECT COUNT(*) FROM users
		WHERE fitness_center_id = $1 AND is_member = TRUE
	`
	if err := r.db.GetContext(ctx, &stats.TotalMembers, query, centerID); err != nil {
		return nil, err
	}

	query = `
		SELECT COUNT(*) FROM boxes
		WHERE fitness_center_id = $1
	`
	if err := r.db.GetContext(ctx, &stats.TotalBoxes, query, centerID); err != nil {
		return nil, err
	}

	query = `
		SELECT COUNT(*) FROM bookings b
		JOIN boxes bx ON bx.id = b.box_id
		WHERE bx.fitness_center_id = $1 AND b.booking_date = $2
	`
	if err := r.db.GetContext(ctx, &stats.BookingsToday, query, centerID, dayStart.Format("2006-01-02")); err != nil {
		return nil, err
	}

	daily, err := r.dailyBookings(ctx, centerID, dayStart)
	if err != nil {
		return nil, err
	}
	stats.DailyBookings = daily

	return stats, nil
}

// dailyBookings returns per-day booking counts for the trailing 30 days,
// oldest first. Days with no bookings are filled in with zero counts.
func (r *Repository) dailyBookings(ctx context.Context, centerID int, dayStart time.Time) ([]DailyBooking, error) {
	windowStart := dayStart.AddDate(0, 0, -29)

	query := `
		SELECT b.booking_date::text AS day, COUNT(*) AS count
		FROM bookings b
		JOIN boxes bx ON bx.id = b.box_id
		WHERE bx.fitness_center_id = $1
		  AND b.booking_date >= $2
		  AND b.booking_date <= $3
		GROUP BY b.booking_date
		ORDER BY b.booking_date ASC
	`

	var rows []DailyBooking
	err := r.db.SelectContext(ctx, &rows, query, centerID,
		windowStart.Format("2006-01-02"), dayStart.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Date] = row.Count
	}

	daily := make([]DailyBooking, 0, 30)
	for d := windowStart; !d.After(dayStart); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		daily = append(daily, DailyBooking{Date: key, Count: counts[key]})
	}

	return daily, nil
}
