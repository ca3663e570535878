package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// ErrInvalidRequest marks input the repository rejected before issuing
	// any statement, so callers can map it separately from store failures.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUserNotFound is returned when a user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when the users.email unique constraint fires.
	ErrEmailExists = errors.New("email already registered")

	// ErrAircraftNotFound is returned when an aircraft is not found.
	ErrAircraftNotFound = errors.New("aircraft not found")
	// ErrRegistrationExists is returned on a duplicate tail number.
	ErrRegistrationExists = errors.New("aircraft registration already exists")

	// ErrFlightLogNotFound is returned when a logbook entry is not found.
	ErrFlightLogNotFound = errors.New("flight log not found")

	// ErrExpenseNotFound is returned when an expense report is not found.
	ErrExpenseNotFound = errors.New("expense not found")
)
