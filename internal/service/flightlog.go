package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aerolink/charter-ops/internal/data"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
	"github.com/aerolink/charter-ops/internal/ports"
)

// FlightLogService manages the aircraft logbook. Entries are append-only
// and attributed to the authenticated pilot.
type FlightLogService struct {
	logs     ports.FlightLogRepository
	aircraft ports.AircraftRepository
}

// NewFlightLogService constructs a new FlightLogService.
func NewFlightLogService(logs ports.FlightLogRepository, aircraft ports.AircraftRepository) *FlightLogService {
	return &FlightLogService{logs: logs, aircraft: aircraft}
}

// Create appends a logbook entry for pilotID. The aircraft must exist.
func (s *FlightLogService) Create(ctx context.Context, pilotID string, req *model.CreateFlightLogRequest) (*model.FlightLog, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	if _, err := s.aircraft.GetByID(ctx, req.AircraftID); err != nil {
		if errors.Is(err, data.ErrAircraftNotFound) {
			return nil, apperrors.ValidationField("aircraft_id", "aircraft not found")
		}
		return nil, apperrors.MapDBError(err)
	}

	out, err := s.logs.Create(ctx, pilotID, req)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// Get retrieves a logbook entry by id.
func (s *FlightLogService) Get(ctx context.Context, id string) (*model.FlightLog, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	out, err := s.logs.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// List pages through logbook entries, newest first.
func (s *FlightLogService) List(ctx context.Context, opts model.FlightLogListOptions) ([]*model.FlightLog, error) {
	out, err := s.logs.List(ctx, opts)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if out == nil {
		out = []*model.FlightLog{}
	}
	return out, nil
}

// mapErr translates repository errors. Anything not recognized as a
// client fault surfaces as an internal error, never as validation.
func (s *FlightLogService) mapErr(err error) error {
	if errors.Is(err, data.ErrFlightLogNotFound) {
		return apperrors.NotFound("flight log not found")
	}
	if errors.Is(err, data.ErrInvalidRequest) {
		return apperrors.Validation(err.Error())
	}
	mapped := apperrors.MapDBError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "flight log store failure")
}
