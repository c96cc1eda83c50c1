package dto

import (
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusPending = "pending"
	StatusError   = "error"
)

// StatusRes is the common {status, message} envelope. Errors use it with StatusError.
type StatusRes struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserRes is the public projection of a user. It never carries the password hash.
type UserRes struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

// UserListItem is one row of the admin user lists.
type UserListItem struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"`
	IsApproved bool      `json:"is_approved"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// UserStatusRes is returned by the steps that end with a user, e.g. verify-otp.
type UserStatusRes struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	User    UserRes `json:"user"`
}

// AdminActionData names the user an admin action applied to.
type AdminActionData struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// AdminRes is returned by approve-user and delete-user.
type AdminRes struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    AdminActionData `json:"data"`
}

// NewUserRes projects u for a client response.
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       u.Role,
		IsApproved: u.IsApproved,
	}
}

// NewUserList projects users for the admin lists. The result is never nil.
func NewUserList(users []entity.User) []UserListItem {
	items := make([]UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, UserListItem{
			ID:         u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Phone:      u.Phone,
			Role:       u.Role,
			IsApproved: u.IsApproved,
			IsActive:   u.IsActive,
			CreatedAt:  u.CreatedAt,
		})
	}
	return items
}
