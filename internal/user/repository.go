package user

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"fitboks/internal/db"
)

var ErrUserNotFound = errors.New("user not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

const userColumns = `id, email, first_name, last_name, phone, role, fitness_center_id, is_member, password_hash, created_at, updated_at`

func (r *repository) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, phone, password_hash, role, fitness_center_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query,
		params.Email, params.FirstName, params.LastName, params.Phone,
		params.PasswordHash, params.Role, params.FitnessCenterID)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) UpdateProfile(ctx context.Context, id int, email, firstName, lastName, phone string) (*User, error) {
	query := `
		UPDATE users
		SET email = $2, first_name = $3, last_name = $4, phone = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var user User
	err := r.db.GetContext(ctx, &user, query, id, email, firstName, lastName, phone)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) ListByCenter(ctx context.Context, centerID, limit, offset int) ([]AdminUser, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM users WHERE fitness_center_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, centerID); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, first_name, last_name, email, phone, is_member, role
		FROM users
		WHERE fitness_center_id = $1
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	var users []AdminUser
	if err := r.db.SelectContext(ctx, &users, query, centerID, limit, offset); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *repository) UpdateMembership(ctx context.Context, centerID, userID int, isMember bool) error {
	query := `
		UPDATE users
		SET is_member = $3, updated_at = NOW()
		WHERE id = $2 AND fitness_center_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, centerID, userID, isMember)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, centerID, userID int) error {
	query := `DELETE FROM users WHERE id = $2 AND fitness_center_id = $1`

	result, err := r.db.ExecContext(ctx, query, centerID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) SearchByCenter(ctx context.Context, centerID int, search string, limit, offset int) ([]AdminUser, int, error) {
	pattern := "%" + search + "%"

	filter := `
		WHERE fitness_center_id = $1
		  AND (first_name ILIKE $2 OR last_name ILIKE $2 OR email ILIKE $2 OR phone ILIKE $2)
	`

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users `+filter, centerID, pattern); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, first_name, last_name, email, phone, is_member, role
		FROM users ` + filter + `
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`

	var users []AdminUser
	if err := r.db.SelectContext(ctx, &users, query, centerID, pattern, limit, offset); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
