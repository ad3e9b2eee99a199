package booking

import "time"

type Booking struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	BoxID         int       `db:"box_id" json:"box_id"`
	Date          time.Time `db:"booking_date" json:"booking_date"`
	Code          string    `db:"booking_code" json:"booking_code"`
	StartHour     int       `db:"start_hour" json:"start_hour"`
	DurationHours int       `db:"duration_hours" json:"duration_hours"`
	EndHour       int       `db:"end_hour" json:"end_hour"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// AdminBookingDetail is the booking joined with its member for the admin
// lookup by ID.
type AdminBookingDetail struct {
	Booking
	UserEmail     string `db:"email" json:"user_email"`
	UserFirstName string `db:"first_name" json:"user_first_name"`
	UserLastName  string `db:"last_name" json:"user_last_name"`
	UserPhone     string `db:"phone" json:"user_phone"`
}

type CreateBookingRequest struct {
	BoxID         int    `json:"box_id" binding:"required,min=1"`
	Date          string `json:"booking_date" binding:"required"`
	StartHour     int    `json:"start_hour" binding:"min=0,max=23"`
	DurationHours int    `json:"duration_hours" binding:"required,min=1,max=4"`
}

type CreateBookingResponse struct {
	Booking *Booking `json:"booking"`
	Message string   `json:"message" example:"Booking created successfully"`
}

type CancelBookingResponse struct {
	Message string `json:"message" example:"Booking cancelled successfully"`
}
