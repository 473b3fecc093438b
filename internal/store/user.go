package store

import (
	"time"
)

const (
	RoleUser    = "user"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

func ListRoles() []string {
	return []string{RoleUser, RoleTeacher, RoleAdmin}
}

// UserProfile holds the optional descriptive fields of a user.
type UserProfile struct {
	FullName       string `json:"full_name"`
	Initials       string `json:"initials"`
	ContactNumber  string `json:"contact_number"`
	Address        string `json:"address"`
	GuardianName   string `json:"guardian_name"`
	GuardianNumber string `json:"guardian_number"`
	ImageFilename  string `json:"-"`
}

type User struct {
	UserID       int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	UserProfile
	CreatedAt time.Time `json:"created_at"`

	// both set or both nil
	ResetCode       *string    `json:"-"`
	ResetCodeExpiry *time.Time `json:"-"`
}

func (u *User) HasResetCode() bool {
	return u != nil && u.ResetCode != nil && u.ResetCodeExpiry != nil
}

type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	Role         string
	UserProfile
}

type LoginAttempt struct {
	LoginHistoryID     int64     `json:"id"`
	LoginHistoryUserID int64     `json:"user_id"`
	LoginTime          time.Time `json:"login_time"`
	IPAddress          string    `json:"ip_address" db:"ip_address"`
	UserAgent          string    `json:"user_agent"`
	Success            bool      `json:"success"`
}
