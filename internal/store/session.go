package store

import "time"

// AuthSession is the server-side state referenced by a session cookie. A
// session may belong to a user, carry the super admin flag, or both.
type AuthSession struct {
	AuthSessionID         string    `json:"id"`
	AuthSessionUserID     *int64    `json:"user_id"`
	AuthSessionRole       string    `json:"role"`
	AuthSessionSuperAdmin bool      `json:"super_admin"`
	AuthSessionExpires    time.Time `json:"expires"`
}

func (s *AuthSession) HasUser() bool {
	return s != nil && s.AuthSessionUserID != nil
}

func (s *AuthSession) IsSuperAdmin() bool {
	return s != nil && s.AuthSessionSuperAdmin
}

func (s *AuthSession) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.AuthSessionExpires)
}
