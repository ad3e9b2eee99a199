package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func userRows(u User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "phone", "role", "fitness_center_id", "is_member", "password_hash", "created_at", "updated_at"}).
		AddRow(u.ID, u.Email, u.FirstName, u.LastName, u.Phone, u.Role, u.FitnessCenterID, u.IsMember, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
}

func testUser() User {
	now := time.Now()
	return User{
		ID: 1, Email: "mette@example.com", FirstName: "Mette", LastName: "Jensen",
		Phone: "12345678", Role: "member", FitnessCenterID: 2, IsMember: true,
		PasswordHash: "$2a$10$hash", CreatedAt: now, UpdatedAt: now,
	}
}

func TestCreateUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	want := testUser()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(want.Email, want.FirstName, want.LastName, want.Phone, want.PasswordHash, want.Role, want.FitnessCenterID).
		WillReturnRows(userRows(want))

	u, err := repo.Create(context.Background(), CreateUserParams{
		Email: want.Email, FirstName: want.FirstName, LastName: want.LastName,
		Phone: want.Phone, PasswordHash: want.PasswordHash, Role: want.Role,
		FitnessCenterID: want.FitnessCenterID,
	})
	require.NoError(t, err)
	require.Equal(t, 1, u.ID)
	require.Equal(t, "member", u.Role)
}

func TestFindByEmail(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	want := testUser()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs(want.Email).
		WillReturnRows(userRows(want))

	u, err := repo.FindByEmail(context.Background(), want.Email)
	require.NoError(t, err)
	require.Equal(t, want.Email, u.Email)
}

func TestEmailExists(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)")).
		WithArgs("mette@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "mette@example.com")
	require.NoError(t, err)
	require.True(t, exists)
}

func TestUpdatePassword(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(1, "$2a$10$newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), 1, "$2a$10$newhash"))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs(99, "$2a$10$newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.UpdatePassword(context.Background(), 99, "$2a$10$newhash"), ErrUserNotFound)
}

func TestListByCenter(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users WHERE fitness_center_id = $1")).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs(2, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "is_member", "role"}).
			AddRow(1, "Mette", "Jensen", "mette@example.com", "12345678", true, "member"))

	users, total, err := repo.ListByCenter(context.Background(), 2, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 12, total)
	require.Len(t, users, 1)
}

func TestSearchByCenter(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WithArgs(2, "%mette%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(regexp.QuoteMeta("ILIKE $2")).
		WithArgs(2, "%mette%", 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "phone", "is_member", "role"}).
			AddRow(1, "Mette", "Jensen", "mette@example.com", "12345678", true, "member"))

	users, total, err := repo.SearchByCenter(context.Background(), 2, "mette", 10, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, users, 1)
	require.Equal(t, "Mette", users[0].FirstName)
}

func TestUpdateMembershipRepo(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("SET is_member = $3")).
		WithArgs(2, 7, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateMembership(context.Background(), 2, 7, false))

	// A user outside the center matches no rows.
	mock.ExpectExec(regexp.QuoteMeta("SET is_member = $3")).
		WithArgs(2, 99, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.UpdateMembership(context.Background(), 2, 99, true), ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRepo(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE id = $2 AND fitness_center_id = $1")).
		WithArgs(2, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 2, 7))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs(2, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.ErrorIs(t, repo.Delete(context.Background(), 2, 99), ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
