//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode"
)

const (
	maxEmailLen    = 254
	maxFullNameLen = 255
	minPasswordLen = 8
)

// User is the identity record persisted in the users table.
// PasswordHash is never serialized; API responses carry the zero value.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	FullName     string    `json:"full_name"  db:"full_name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Sanitized returns a copy of the user with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// UserProfile is the companion profile record keyed by the user id.
// It is upserted on registration and read by the crew listing.
type UserProfile struct {
	ID          string    `json:"id"           db:"id"`
	Email       string    `json:"email"        db:"email"`
	FullName    string    `json:"full_name"    db:"full_name"`
	DisplayName string    `json:"display_name" db:"display_name"`
	UpdatedAt   time.Time `json:"updated_at"   db:"updated_at"`
}

// CrewMember is the profile projection returned by the crew listing,
// annotated with the crew roles the user holds.
type CrewMember struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FullName    string   `json:"full_name"`
	DisplayName string   `json:"display_name"`
	Roles       []string `json:"roles"`
}

// Password strength sub-check names reported to the caller when
// registration is rejected for a weak password.
const (
	PasswordCheckLength  = "length"
	PasswordCheckUpper   = "upper"
	PasswordCheckLower   = "lower"
	PasswordCheckDigit   = "digit"
	PasswordCheckSpecial = "special"
)

// CheckPasswordStrength evaluates the five strength sub-checks and returns
// the names of those that failed, in a stable order. An empty result means
// the password satisfies the policy.
func CheckPasswordStrength(password string) []string {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	var failed []string
	if len([]rune(password)) < minPasswordLen {
		failed = append(failed, PasswordCheckLength)
	}
	if !hasUpper {
		failed = append(failed, PasswordCheckUpper)
	}
	if !hasLower {
		failed = append(failed, PasswordCheckLower)
	}
	if !hasDigit {
		failed = append(failed, PasswordCheckDigit)
	}
	if !hasSpecial {
		failed = append(failed, PasswordCheckSpecial)
	}
	return failed
}

// WeakPasswordError reports which strength sub-checks a password failed.
type WeakPasswordError struct {
	Failed []string
}

func (e *WeakPasswordError) Error() string {
	return "password does not meet strength requirements: failed " + strings.Join(e.Failed, ", ")
}

// RegisterRequest carries registration input.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// Validate checks presence and password strength. Email lookup uniqueness is
// enforced by the store's constraint, not here.
func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if len(r.Email) > maxEmailLen {
		return errors.New("email cannot exceed 254 characters")
	}
	if len(r.FullName) > maxFullNameLen {
		return errors.New("fullName cannot exceed 255 characters")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	if failed := CheckPasswordStrength(r.Password); len(failed) > 0 {
		return &WeakPasswordError{Failed: failed}
	}
	return nil
}

// LoginRequest carries login input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks presence only; credential correctness is the
// authenticator's concern.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
