package user

import "time"

type User struct {
	ID              int       `db:"id" json:"id"`
	Email           string    `db:"email" json:"email"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Phone           string    `db:"phone" json:"phone"`
	Role            string    `db:"role" json:"role"`
	FitnessCenterID int       `db:"fitness_center_id" json:"fitness_center_id"`
	IsMember        bool      `db:"is_member" json:"is_member"`
	PasswordHash    string    `db:"password_hash" json:"-"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FirstName       string `json:"first_name" binding:"required,min=2"`
	LastName        string `json:"last_name" binding:"required,min=2"`
	Phone           string `json:"phone" binding:"required"`
	FitnessCenterID int    `json:"fitness_center_id" binding:"required,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type UpdateProfileRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required,min=2"`
	LastName  string `json:"last_name" binding:"required,min=2"`
	Phone     string `json:"phone" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// MembershipRequest toggles whether a user counts as an active member.
// IsMember is a pointer so that an explicit false is distinguishable from
// a missing field.
type MembershipRequest struct {
	UserID   int   `json:"user_id" binding:"required,min=1"`
	IsMember *bool `json:"is_member" binding:"required"`
}

// AdminUser is the reduced row the admin member list shows.
type AdminUser struct {
	ID        int    `db:"id" json:"user_id"`
	FirstName string `db:"first_name" json:"first_name"`
	LastName  string `db:"last_name" json:"last_name"`
	Email     string `db:"email" json:"email"`
	Phone     string `db:"phone" json:"phone"`
	IsMember  bool   `db:"is_member" json:"is_member"`
	Role      string `db:"role" json:"role"`
}

type UserPage struct {
	Users      []AdminUser `json:"users"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}
