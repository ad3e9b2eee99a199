package workout

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Load inserts a catalog of workouts with their weeks and exercises in one
// transaction. IDs from the seed data are ignored; the database assigns
// fresh ones so the load can run against a non-empty catalog.
func (r *Repository) Load(ctx context.Context, workouts []Workout) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, w := range workouts {
		var workoutID int
		err := tx.GetContext(ctx, &workoutID, `
			INSERT INTO workouts (name, description, level, image)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, w.Name, w.Description, w.Level, w.Image)
		if err != nil {
			return err
		}

		for _, week := range w.Weeks {
			var weekID int
			err := tx.GetContext(ctx, &weekID, `
				INSERT INTO workout_weeks (workout_id, name, description)
				VALUES ($1, $2, $3)
				RETURNING id
			`, workoutID, week.Name, week.Description)
			if err != nil {
				return err
			}

			for _, exercise := range week.Exercises {
				_, err := tx.ExecContext(ctx, `
					INSERT INTO workout_exercises (week_id, name, description)
					VALUES ($1, $2, $3)
				`, weekID, exercise.Name, exercise.Description)
				if err != nil {
					return err
				}
			}
		}
	}

	return tx.Commit()
}

// List returns the full catalog with weeks and exercises nested. Three flat
// queries and an in-memory join keep it a fixed number of round trips
// regardless of catalog size.
func (r *Repository) List(ctx context.Context) ([]Workout, error) {
	var workouts []Workout
	err := r.db.SelectContext(ctx, &workouts, `
		SELECT id, name, description, level, image, created_at, updated_at
		FROM workouts
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return []Workout{}, nil
	}

	var weeks []Week
	err = r.db.SelectContext(ctx, &weeks, `
		SELECT id, workout_id, name, description
		FROM workout_weeks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}

	var exercises []Exercise
	err = r.db.SelectContext(ctx, &exercises, `
		SELECT id, week_id, name, description
		FROM workout_exercises
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}

	exercisesByWeek := make(map[int][]Exercise)
	for _, e := range exercises {
		exercisesByWeek[e.WeekID] = append(exercisesByWeek[e.WeekID], e)
	}

	weeksByWorkout := make(map[int][]Week)
	for _, w := range weeks {
		w.Exercises = exercisesByWeek[w.ID]
		weeksByWorkout[w.WorkoutID] = append(weeksByWorkout[w.WorkoutID], w)
	}

	for i := range workouts {
		workouts[i].Weeks = weeksByWorkout[workouts[i].ID]
	}

	return workouts, nil
}
