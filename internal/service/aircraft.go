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

// AircraftService manages the fleet registry.
type AircraftService struct {
	aircraft ports.AircraftRepository
}

// NewAircraftService constructs a new AircraftService.
func NewAircraftService(aircraft ports.AircraftRepository) *AircraftService {
	return &AircraftService{aircraft: aircraft}
}

// Create registers a new aircraft. Duplicate tail numbers are rejected at
// the registration unique constraint.
func (s *AircraftService) Create(ctx context.Context, req *model.CreateAircraftRequest) (*model.Aircraft, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.aircraft.Create(ctx, req)
	if err != nil {
		if errors.Is(err, data.ErrRegistrationExists) {
			return nil, apperrors.Conflict("aircraft registration already exists")
		}
		return nil, s.mapErr(err)
	}
	return out, nil
}

// Get retrieves an aircraft by id.
func (s *AircraftService) Get(ctx context.Context, id string) (*model.Aircraft, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	out, err := s.aircraft.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// List pages through the fleet ordered by registration.
func (s *AircraftService) List(ctx context.Context, limit, offset int) ([]*model.Aircraft, error) {
	out, err := s.aircraft.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if out == nil {
		out = []*model.Aircraft{}
	}
	return out, nil
}

// Update applies partial changes to an aircraft.
func (s *AircraftService) Update(ctx context.Context, id string, req model.UpdateAircraftRequest) (*model.Aircraft, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.aircraft.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, data.ErrRegistrationExists) {
			return nil, apperrors.Conflict("aircraft registration already exists")
		}
		return nil, s.mapErr(err)
	}
	return out, nil
}

// Delete removes an aircraft from the registry.
func (s *AircraftService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField("id", "id is required")
	}
	deleted, err := s.aircraft.Delete(ctx, id)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if !deleted {
		return apperrors.NotFound("aircraft not found")
	}
	return nil
}

// mapErr translates repository errors. Anything not recognized as a
// client fault surfaces as an internal error, never as validation.
func (s *AircraftService) mapErr(err error) error {
	if errors.Is(err, data.ErrAircraftNotFound) {
		return apperrors.NotFound("aircraft not found")
	}
	if errors.Is(err, data.ErrInvalidRequest) {
		return apperrors.Validation(err.Error())
	}
	mapped := apperrors.MapDBError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "aircraft store failure")
}
