package box

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrBoxNotFound = errors.New("box not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const boxColumns = `id, number, status, fitness_center_id, created_at`

func (r *repository) ListByCenter(ctx context.Context, centerID int) ([]Box, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM boxes
		WHERE fitness_center_id = $1
		ORDER BY number ASC
	`

	var boxes []Box
	err := r.db.SelectContext(ctx, &boxes, query, centerID)
	if err != nil {
		return nil, err
	}

	return boxes, nil
}

func (r *repository) GetByCenterAndID(ctx context.Context, centerID, boxID int) (*Box, error) {
	query := `
		SELECT ` + boxColumns + `
		FROM boxes
		WHERE fitness_center_id = $1 AND id = $2
	`

	var box Box
	err := r.db.GetContext(ctx, &box, query, centerID, boxID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoxNotFound
		}
		return nil, err
	}

	return &box, nil
}

func (r *repository) Create(ctx context.Context, centerID, number int) (*Box, error) {
	query := `
		INSERT INTO boxes (fitness_center_id, number, status)
		VALUES ($1, $2, 'free')
		RETURNING ` + boxColumns

	var box Box
	err := r.db.GetContext(ctx, &box, query, centerID, number)
	if err != nil {
		return nil, err
	}

	return &box, nil
}

func (r *repository) UpdateStatus(ctx context.Context, boxID int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE boxes SET status = $2 WHERE id = $1`, boxID, status)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBoxNotFound
	}

	return nil
}
