//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const maxAircraftModelLen = 120

// Tail numbers in the operating fleet follow the Brazilian registry shape
// (two-letter prefix, dash, three letters), e.g. PR-ABC, PT-XYZ.
var registrationPattern = regexp.MustCompile(`^[A-Z]{2}-[A-Z]{3}$`)

// Aircraft is a fleet registry entry.
type Aircraft struct {
	ID           string    `json:"id"           db:"id"`
	Registration string    `json:"registration" db:"registration"`
	Model        string    `json:"model"        db:"model"`
	Capacity     int       `json:"capacity"     db:"capacity"`
	Active       bool      `json:"active"       db:"active"`
	CreatedAt    time.Time `json:"created_at"   db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"   db:"updated_at"`
}

// CreateAircraftRequest represents parameters to register an aircraft.
type CreateAircraftRequest struct {
	Registration string `json:"registration"`
	Model        string `json:"model"`
	Capacity     int    `json:"capacity"`
	Active       *bool  `json:"active,omitempty"`
}

// UpdateAircraftRequest represents parameters to update an aircraft.
type UpdateAircraftRequest struct {
	Model    *string `json:"model,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// Validate validates CreateAircraftRequest.
func (r *CreateAircraftRequest) Validate() error {
	reg := strings.ToUpper(strings.TrimSpace(r.Registration))
	if reg == "" {
		return errors.New("registration is required")
	}
	if !registrationPattern.MatchString(reg) {
		return errors.New("registration must match the pattern XX-XXX")
	}
	r.Registration = reg
	if strings.TrimSpace(r.Model) == "" {
		return errors.New("model is required")
	}
	if utf8.RuneCountInString(r.Model) > maxAircraftModelLen {
		return errors.New("model cannot exceed 120 characters")
	}
	if r.Capacity <= 0 {
		return errors.New("capacity must be > 0")
	}
	return nil
}

// Validate validates UpdateAircraftRequest.
func (r *UpdateAircraftRequest) Validate() error {
	if r.Model != nil && strings.TrimSpace(*r.Model) == "" {
		return errors.New("model cannot be empty")
	}
	if r.Capacity != nil && *r.Capacity <= 0 {
		return errors.New("capacity must be > 0")
	}
	return nil
}
