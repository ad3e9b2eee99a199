package user

import "context"

type CreateUserParams struct {
	Email           string
	FirstName       string
	LastName        string
	Phone           string
	PasswordHash    string
	Role            string
	FitnessCenterID int
}

type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int, email, firstName, lastName, phone string) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	ListByCenter(ctx context.Context, centerID, limit, offset int) ([]AdminUser, int, error)
	SearchByCenter(ctx context.Context, centerID int, query string, limit, offset int) ([]AdminUser, int, error)
	// UpdateMembership and Delete are scoped to the admin's center; a user
	// in another center reads as not found.
	UpdateMembership(ctx context.Context, centerID, userID int, isMember bool) error
	Delete(ctx context.Context, centerID, userID int) error
}
