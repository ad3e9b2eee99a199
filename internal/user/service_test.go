package user

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitboks/internal/auth"
	"fitboks/internal/logger"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

type MockMailer struct{ mock.Mock }

func (m *MockMailer) SendWelcome(ctx context.Context, email, name string) error {
	return m.Called(ctx, email, name).Error(0)
}

// newTestService wires a mailer that accepts any welcome mail; tests that
// care about the mail set their own expectations.
func newTestService(repo Repository) Service {
	mailer := new(MockMailer)
	mailer.On("SendWelcome", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return NewService(repo, testSecret, mailer)
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) FindByID(ctx context.Context, id int) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepo) UpdateProfile(ctx context.Context, id int, email, firstName, lastName, phone string) (*User, error) {
	args := m.Called(ctx, id, email, firstName, lastName, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepo) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockRepo) ListByCenter(ctx context.Context, centerID, limit, offset int) ([]AdminUser, int, error) {
	args := m.Called(ctx, centerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]AdminUser), args.Int(1), args.Error(2)
}

func (m *MockRepo) SearchByCenter(ctx context.Context, centerID int, query string, limit, offset int) ([]AdminUser, int, error) {
	args := m.Called(ctx, centerID, query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]AdminUser), args.Int(1), args.Error(2)
}

func (m *MockRepo) UpdateMembership(ctx context.Context, centerID, userID int, isMember bool) error {
	return m.Called(ctx, centerID, userID, isMember).Error(0)
}

func (m *MockRepo) Delete(ctx context.Context, centerID, userID int) error {
	return m.Called(ctx, centerID, userID).Error(0)
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:           "mette@example.com",
		Password:        "Str0ng!pass",
		FirstName:       "Mette",
		LastName:        "Jensen",
		Phone:           "12345678",
		FitnessCenterID: 2,
	}
}

func TestRegister(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("EmailExists", mock.Anything, "mette@example.com").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p CreateUserParams) bool {
		return p.Email == "mette@example.com" && p.Role == "member" && p.PasswordHash != "Str0ng!pass"
	})).Return(&User{ID: 1, Email: "mette@example.com", Role: "member", FitnessCenterID: 2}, nil)

	u, access, refresh, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, 2, claims.FitnessCenterID)
	repo.AssertExpectations(t)
}

func TestRegisterWeakPassword(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	tests := []string{
		"alllowercase1!",
		"ALLUPPERCASE1!",
		"NoDigits!!",
		"NoSpecials11Aa",
		"Ab1!",
	}

	for _, password := range tests {
		req := validRegisterRequest()
		req.Password = password
		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q", password)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterInvalidPhone(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	for _, phone := range []string{"1234567", "123456789", "1234567a", ""} {
		req := validRegisterRequest()
		req.Phone = phone
		_, _, _, err := svc.Register(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPhone, "phone %q", phone)
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("EmailExists", mock.Anything, "mette@example.com").Return(true, nil)

	_, _, _, err := svc.Register(context.Background(), validRegisterRequest())
	assert.ErrorIs(t, err, ErrEmailExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "mette@example.com").Return(&User{
		ID: 1, Email: "mette@example.com", Role: "member", FitnessCenterID: 2, PasswordHash: hash,
	}, nil)

	u, access, refresh, err := svc.Login(context.Background(), LoginRequest{
		Email: "mette@example.com", Password: "Str0ng!pass",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	hash, err := auth.HashPassword("Str0ng!pass")
	require.NoError(t, err)

	repo.On("FindByEmail", mock.Anything, "mette@example.com").Return(&User{
		ID: 1, Email: "mette@example.com", PasswordHash: hash,
	}, nil)

	_, _, _, err = svc.Login(context.Background(), LoginRequest{
		Email: "mette@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)

	_, _, _, err := svc.Login(context.Background(), LoginRequest{
		Email: "nobody@example.com", Password: "Str0ng!pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	_, refreshToken, err := auth.GenerateTokens(1, "mette@example.com", "member", 2, testSecret)
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{
		ID: 1, Email: "mette@example.com", Role: "member", FitnessCenterID: 2,
	}, nil)

	access, u, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	claims, err := auth.ValidateToken(access, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshWithAccessToken(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	accessToken, _, err := auth.GenerateTokens(1, "mette@example.com", "member", 2, testSecret)
	require.NoError(t, err)

	_, _, err = svc.Refresh(context.Background(), accessToken)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	hash, err := auth.HashPassword("Old!pass1")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, PasswordHash: hash}, nil)
	repo.On("UpdatePassword", mock.Anything, 1, mock.AnythingOfType("string")).Return(nil)

	err = svc.ChangePassword(context.Background(), 1, ChangePasswordRequest{
		OldPassword: "Old!pass1", NewPassword: "New!pass2", ConfirmPassword: "New!pass2",
	})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangePasswordMismatch(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	hash, err := auth.HashPassword("Old!pass1")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, PasswordHash: hash}, nil)

	err = svc.ChangePassword(context.Background(), 1, ChangePasswordRequest{
		OldPassword: "Old!pass1", NewPassword: "New!pass2", ConfirmPassword: "Other!3x",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangePasswordWrongOld(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	hash, err := auth.HashPassword("Old!pass1")
	require.NoError(t, err)

	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, PasswordHash: hash}, nil)

	err = svc.ChangePassword(context.Background(), 1, ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "New!pass2", ConfirmPassword: "New!pass2",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("FindByID", mock.Anything, 1).Return(&User{ID: 1, Email: "mette@example.com"}, nil)
	repo.On("EmailExists", mock.Anything, "taken@example.com").Return(true, nil)

	_, err := svc.UpdateProfile(context.Background(), 1, UpdateProfileRequest{
		Email: "taken@example.com", FirstName: "Mette", LastName: "Jensen", Phone: "12345678",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestListMembersPaging(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("ListByCenter", mock.Anything, 2, 10, 10).Return([]AdminUser{
		{ID: 11, FirstName: "Mette"},
	}, 25, nil)

	page, err := svc.ListMembers(context.Background(), 2, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Users, 1)
}

func TestSetMembership(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("UpdateMembership", mock.Anything, 2, 7, false).Return(nil)
	assert.NoError(t, svc.SetMembership(context.Background(), 2, 7, false))
	repo.AssertExpectations(t)

	// A user from another center reads as not found.
	repo.On("UpdateMembership", mock.Anything, 2, 99, true).Return(ErrUserNotFound)
	assert.ErrorIs(t, svc.SetMembership(context.Background(), 2, 99, true), ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	repo := new(MockRepo)
	svc := newTestService(repo)

	repo.On("Delete", mock.Anything, 2, 7).Return(nil)
	assert.NoError(t, svc.DeleteUser(context.Background(), 2, 7))
	repo.AssertExpectations(t)

	repo.On("Delete", mock.Anything, 2, 99).Return(ErrUserNotFound)
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), 2, 99), ErrUserNotFound)
}
