package center

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrCenterNotFound = errors.New("fitness center not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context) ([]Center, error) {
	query := `
		SELECT id, name, address, created_at
		FROM fitness_centers
		ORDER BY name ASC
	`

	var centers []Center
	err := r.db.SelectContext(ctx, &centers, query)
	if err != nil {
		return nil, err
	}

	return centers, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Center, error) {
	query := `
		SELECT id, name, address, created_at
		FROM fitness_centers
		WHERE id = $1
	`

	var center Center
	err := r.db.GetContext(ctx, &center, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}

	return &center, nil
}

func (r *Repository) Create(ctx context.Context, name, address string) (*Center, error) {
	query := `
		INSERT INTO fitness_centers (name, address)
		VALUES ($1, $2)
		RETURNING id, name, address, created_at
	`

	var center Center
	err := r.db.GetContext(ctx, &center, query, name, address)
	if err != nil {
		return nil, err
	}

	return &center, nil
}
