package box

import (
	"time"

	"fitboks/internal/availability"
)

const (
	StatusFree   = "free"
	StatusClosed = "closed"
)

type Box struct {
	ID              int       `db:"id" json:"box_id"`
	Number          int       `db:"number" json:"box_number"`
	Status          string    `db:"status" json:"status"`
	FitnessCenterID int       `db:"fitness_center_id" json:"fitness_center_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// BoxWithOccupancy adds whether the box is taken at the upcoming hour.
type BoxWithOccupancy struct {
	Box
	Occupied bool `json:"occupied"`
}

// AvailabilityResponse serializes an engine result. Slots are keyed by box
// ID; boxes without free slots are absent.
type AvailabilityResponse struct {
	NextAvailableHour int                         `json:"next_available_hour"`
	DurationHours     int                         `json:"duration_hours"`
	BoxAvailability   map[int][]availability.Slot `json:"box_availability"`
}

// NoSlotsResponse replaces AvailabilityResponse when nothing can start
// before the day ends.
type NoSlotsResponse struct {
	Message string `json:"message" example:"No more bookings available today"`
}

// WeekView is one box's hour-by-hour occupancy for the next seven days.
type WeekView struct {
	BoxID int                             `json:"box_id"`
	Dates map[string]availability.DayGrid `json:"dates"`
}

type UpdateStatusRequest struct {
	BoxID           int    `json:"box_id" binding:"required,min=1"`
	FitnessCenterID int    `json:"fitness_center_id" binding:"required,min=1"`
	Status          string `json:"status" binding:"required,oneof=free closed"`
	DurationHours   int    `json:"duration_hours" binding:"omitempty,min=1,max=4"`
}

type CreateBoxRequest struct {
	Number          int `json:"box_number" binding:"required,min=1"`
	FitnessCenterID int `json:"fitness_center_id" binding:"required,min=1"`
}
