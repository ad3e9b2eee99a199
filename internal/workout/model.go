package workout

import "time"

// Workout is a training program from the seeded catalog. The JSON tags
// double as the seed-file format, so a catalog export can be loaded back
// as-is; database IDs are assigned on insert.
type Workout struct {
	ID          int       `db:"id" json:"workout_id"`
	Name        string    `db:"name" json:"workout_name"`
	Description string    `db:"description" json:"workout_description"`
	Level       string    `db:"level" json:"workout_level"`
	Image       *string   `db:"image" json:"workout_image"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
	Weeks       []Week    `json:"workout_weeks"`
}

type Week struct {
	ID          int        `db:"id" json:"week_id"`
	WorkoutID   int        `db:"workout_id" json:"-"`
	Name        string     `db:"name" json:"week_name"`
	Description string     `db:"description" json:"week_description"`
	Exercises   []Exercise `json:"exercises"`
}

type Exercise struct {
	ID          int    `db:"id" json:"-"`
	WeekID      int    `db:"week_id" json:"-"`
	Name        string `db:"name" json:"exercise_name"`
	Description string `db:"description" json:"exercise_description"`
}

type CatalogResponse struct {
	Workouts []Workout `json:"workouts"`
}
