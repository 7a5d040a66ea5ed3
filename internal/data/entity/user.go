package entity

import "time"

type User struct {
	ID          int64     `db:"id"`
	Username    string    `db:"username"`
	Email       *string   `db:"email"`
	FirstName   *string   `db:"first_name"`
	LastName    *string   `db:"last_name"`
	Password    string    `db:"password"`
	IsActive    bool      `db:"is_active"`
	IsStaff     bool      `db:"is_staff"`
	IsSuperuser bool      `db:"is_superuser"`
	DateJoined  time.Time `db:"date_joined"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// EmailAddress returns the email or "" when the user has none
func (u *User) EmailAddress() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u *User) DisplayName() string {
	if u.FirstName != nil && *u.FirstName != "" {
		return *u.FirstName
	}
	return u.Username
}
