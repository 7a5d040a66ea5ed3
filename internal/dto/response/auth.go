package response

import (
	"time"

	"ecommerce-demo/internal/data/entity"
)

type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	DateJoined  time.Time `json:"date_joined"`
}

type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginResponse struct {
	Refresh string      `json:"refresh"`
	Access  string      `json:"access"`
	User    UserSummary `json:"user"`
}

type RefreshResponse struct {
	Access string `json:"access"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       deref(user.Email),
		FirstName:   deref(user.FirstName),
		LastName:    deref(user.LastName),
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		DateJoined:  user.DateJoined,
	}
}

func UserToSummary(user *entity.User) UserSummary {
	return UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: deref(user.FirstName),
		LastName:  deref(user.LastName),
	}
}
