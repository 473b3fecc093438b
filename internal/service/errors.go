package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCode        = errors.New("invalid reset code")
	ErrExpiredCode        = errors.New("reset code expired")
	ErrUserNotFound       = errors.New("user not found")
	ErrNotFound           = errors.New("not found")
	ErrMailDispatch       = errors.New("unable to send reset code")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnsupportedFile    = errors.New("unsupported file type")
)

// MissingFieldError names the required fields that were empty. It matches
// ErrMissingField with errors.Is.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required fields: %v", e.Fields)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// requireFields returns a *MissingFieldError for every name whose value is
// empty. Arguments alternate name, value.
func requireFields(nameValues ...string) error {
	var missing []string
	for i := 0; i+1 < len(nameValues); i += 2 {
		if nameValues[i+1] == "" {
			missing = append(missing, nameValues[i])
		}
	}
	if len(missing) > 0 {
		return &MissingFieldError{Fields: missing}
	}
	return nil
}
