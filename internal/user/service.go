package user

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"fitboks/internal/auth"
	"fitboks/internal/logger"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must contain at least 8 characters, an upper and lower case letter, a digit and a special character")
	ErrInvalidPhone       = errors.New("phone number must be 8 digits")
)

// Mailer is the slice of the email service registration needs.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, *User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*User, error)
	ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error
	ListMembers(ctx context.Context, centerID, page, pageSize int) (*UserPage, error)
	SearchMembers(ctx context.Context, centerID int, query string, page, pageSize int) (*UserPage, error)
	SetMembership(ctx context.Context, centerID, userID int, isMember bool) error
	DeleteUser(ctx context.Context, centerID, userID int) error
}

type service struct {
	repo      Repository
	jwtSecret string
	mailer    Mailer
}

func NewService(repo Repository, jwtSecret string, mailer Mailer) Service {
	return &service{
		repo:      repo,
		jwtSecret: jwtSecret,
		mailer:    mailer,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, string, string, error) {
	if !validPassword(req.Password) {
		return nil, "", "", ErrWeakPassword
	}
	if !validPhone(req.Phone) {
		return nil, "", "", ErrInvalidPhone
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	user, err := s.repo.Create(ctx, CreateUserParams{
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		PasswordHash:    passwordHash,
		Role:            "member",
		FitnessCenterID: req.FitnessCenterID,
	})
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		user.ID, user.Email, user.Role, user.FitnessCenterID, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.mailer.SendWelcome(ctx, user.Email, user.FirstName); err != nil {
		logger.Error("failed to queue welcome email", "user_id", user.ID, "error", err)
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*User, string, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		user.ID, user.Email, user.Role, user.FitnessCenterID, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, *User, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrUserNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(
		user.ID, user.Email, user.Role, user.FitnessCenterID, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, user, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*User, error) {
	if !validPhone(req.Phone) {
		return nil, ErrInvalidPhone
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Email != current.Email {
		exists, err := s.repo.EmailExists(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailExists
		}
	}

	return s.repo.UpdateProfile(ctx, userID, req.Email, req.FirstName, req.LastName, req.Phone)
}

func (s *service) ChangePassword(ctx context.Context, userID int, req ChangePasswordRequest) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !auth.CheckPassword(user.PasswordHash, req.OldPassword) {
		return ErrInvalidCredentials
	}

	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if !validPassword(req.NewPassword) {
		return ErrWeakPassword
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

func (s *service) ListMembers(ctx context.Context, centerID, page, pageSize int) (*UserPage, error) {
	offset := (page - 1) * pageSize

	users, total, err := s.repo.ListByCenter(ctx, centerID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return newUserPage(users, total, page, pageSize), nil
}

func (s *service) SearchMembers(ctx context.Context, centerID int, query string, page, pageSize int) (*UserPage, error) {
	offset := (page - 1) * pageSize

	users, total, err := s.repo.SearchByCenter(ctx, centerID, strings.TrimSpace(query), pageSize, offset)
	if err != nil {
		return nil, err
	}

	return newUserPage(users, total, page, pageSize), nil
}

func (s *service) SetMembership(ctx context.Context, centerID, userID int, isMember bool) error {
	return s.repo.UpdateMembership(ctx, centerID, userID, isMember)
}

func (s *service) DeleteUser(ctx context.Context, centerID, userID int) error {
	return s.repo.Delete(ctx, centerID, userID)
}

func newUserPage(users []AdminUser, total, page, pageSize int) *UserPage {
	totalPages := (total + pageSize - 1) / pageSize

	return &UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// validPassword requires at least 8 characters with an upper and lower case
// letter, a digit and one of the allowed specials.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune("!@#$%^&*()-+", char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

func validPhone(phone string) bool {
	if len(phone) != 8 {
		return false
	}
	for _, char := range phone {
		if !unicode.IsDigit(char) {
			return false
		}
	}
	return true
}
