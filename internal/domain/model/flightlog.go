//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxStationLen = 8
	maxRemarksLen = 2000
	// A single block entry longer than 24h is a data-entry error.
	maxBlockMinutes = 24 * 60
)

// FlightLog is a single aircraft logbook entry.
type FlightLog struct {
	ID           string    `json:"id"            db:"id"`
	AircraftID   string    `json:"aircraft_id"   db:"aircraft_id"`
	PilotID      string    `json:"pilot_id"      db:"pilot_id"`
	LogDate      time.Time `json:"log_date"      db:"log_date"`
	Origin       string    `json:"origin"        db:"origin"`
	Destination  string    `json:"destination"   db:"destination"`
	BlockMinutes int       `json:"block_minutes" db:"block_minutes"`
	Cycles       int       `json:"cycles"        db:"cycles"`
	Remarks      *string   `json:"remarks,omitempty" db:"remarks"`
	CreatedAt    time.Time `json:"created_at"    db:"created_at"`
}

// CreateFlightLogRequest represents parameters to append a logbook entry.
// PilotID is taken from the authenticated caller, not the body.
type CreateFlightLogRequest struct {
	AircraftID   string    `json:"aircraft_id"`
	LogDate      time.Time `json:"log_date"`
	Origin       string    `json:"origin"`
	Destination  string    `json:"destination"`
	BlockMinutes int       `json:"block_minutes"`
	Cycles       int       `json:"cycles"`
	Remarks      *string   `json:"remarks,omitempty"`
}

// FlightLogListOptions controls paging and filtering of logbook listings.
type FlightLogListOptions struct {
	Limit      int
	Offset     int
	AircraftID *string
	PilotID    *string
}

// Validate validates CreateFlightLogRequest.
func (r *CreateFlightLogRequest) Validate() error {
	if strings.TrimSpace(r.AircraftID) == "" {
		return errors.New("aircraft_id is required")
	}
	if r.LogDate.IsZero() {
		return errors.New("log_date is required")
	}
	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	if r.Origin == "" || r.Destination == "" {
		return errors.New("origin and destination are required")
	}
	if utf8.RuneCountInString(r.Origin) > maxStationLen || utf8.RuneCountInString(r.Destination) > maxStationLen {
		return errors.New("origin and destination cannot exceed 8 characters")
	}
	if r.BlockMinutes <= 0 || r.BlockMinutes > maxBlockMinutes {
		return errors.New("block_minutes must be between 1 and 1440")
	}
	if r.Cycles < 0 {
		return errors.New("cycles cannot be negative")
	}
	if r.Remarks != nil && utf8.RuneCountInString(*r.Remarks) > maxRemarksLen {
		return errors.New("remarks cannot exceed 2000 characters")
	}
	return nil
}
