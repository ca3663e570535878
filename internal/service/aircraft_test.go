package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolink/charter-ops/internal/data"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
	"github.com/aerolink/charter-ops/internal/ports"
)

// fakeAircraftRepo is a map-backed AircraftRepository for unit tests.
type fakeAircraftRepo struct {
	byID   map[string]*model.Aircraft
	nextID int

	// err, when set, is returned by every method before any state change.
	err error
}

var _ ports.AircraftRepository = (*fakeAircraftRepo)(nil)

func newFakeAircraftRepo() *fakeAircraftRepo {
	return &fakeAircraftRepo{byID: make(map[string]*model.Aircraft)}
}

func (f *fakeAircraftRepo) Create(_ context.Context, req *model.CreateAircraftRequest) (*model.Aircraft, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidRequest, err)
	}
	for _, ac := range f.byID {
		if ac.Registration == req.Registration {
			return nil, data.ErrRegistrationExists
		}
	}
	f.nextID++
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	ac := &model.Aircraft{
		ID:           string(rune('a' + f.nextID)),
		Registration: req.Registration,
		Model:        req.Model,
		Capacity:     req.Capacity,
		Active:       active,
	}
	f.byID[ac.ID] = ac
	return ac, nil
}

func (f *fakeAircraftRepo) GetByID(_ context.Context, id string) (*model.Aircraft, error) {
	if f.err != nil {
		return nil, f.err
	}
	ac, ok := f.byID[id]
	if !ok {
		return nil, data.ErrAircraftNotFound
	}
	return ac, nil
}

func (f *fakeAircraftRepo) List(_ context.Context, _, _ int) ([]*model.Aircraft, error) {
	out := make([]*model.Aircraft, 0, len(f.byID))
	for _, ac := range f.byID {
		out = append(out, ac)
	}
	return out, nil
}

func (f *fakeAircraftRepo) Update(_ context.Context, id string, req model.UpdateAircraftRequest) (*model.Aircraft, error) {
	if f.err != nil {
		return nil, f.err
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidRequest, err)
	}
	ac, ok := f.byID[id]
	if !ok {
		return nil, data.ErrAircraftNotFound
	}
	if req.Model != nil {
		ac.Model = *req.Model
	}
	if req.Capacity != nil {
		ac.Capacity = *req.Capacity
	}
	if req.Active != nil {
		ac.Active = *req.Active
	}
	return ac, nil
}

func (f *fakeAircraftRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func TestAircraftService_CreateAndGet(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateAircraftRequest{
		Registration: "pr-abc",
		Model:        "Phenom 300E",
		Capacity:     9,
	})
	require.NoError(t, err)
	assert.Equal(t, "PR-ABC", created.Registration)
	assert.True(t, created.Active)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}

func TestAircraftService_Create_DuplicateRegistration(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())
	ctx := context.Background()

	req := model.CreateAircraftRequest{Registration: "PR-ABC", Model: "Phenom 300E", Capacity: 9}
	_, err := svc.Create(ctx, &req)
	require.NoError(t, err)

	dup := req
	_, err = svc.Create(ctx, &dup)
	assert.True(t, apperrors.IsConflict(err))
}

func TestAircraftService_Create_ValidationSurfaced(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())

	_, err := svc.Create(context.Background(), &model.CreateAircraftRequest{Registration: "BAD", Model: "m", Capacity: 1})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(context.Background(), nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestAircraftService_Get_Errors(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())
	ctx := context.Background()

	_, err := svc.Get(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Get(ctx, " ")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAircraftService_StoreFailureIsInternal(t *testing.T) {
	repo := newFakeAircraftRepo()
	repo.err = errors.New("write tcp 10.0.0.1:5432: broken pipe")
	svc := NewAircraftService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, "a")
	assert.True(t, apperrors.IsInternal(err))
	assert.False(t, apperrors.IsValidation(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "aircraft store failure", appErr.Message)

	_, err = svc.Create(ctx, &model.CreateAircraftRequest{Registration: "PR-ABC", Model: "Phenom 300E", Capacity: 9})
	assert.True(t, apperrors.IsInternal(err))
}

func TestAircraftService_Update(t *testing.T) {
	repo := newFakeAircraftRepo()
	svc := NewAircraftService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateAircraftRequest{Registration: "PR-ABC", Model: "Phenom 300E", Capacity: 9})
	require.NoError(t, err)

	inactive := false
	seats := 8
	updated, err := svc.Update(ctx, created.ID, model.UpdateAircraftRequest{Capacity: &seats, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Capacity)
	assert.False(t, updated.Active)

	_, err = svc.Update(ctx, "missing", model.UpdateAircraftRequest{Capacity: &seats})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAircraftService_Delete(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, &model.CreateAircraftRequest{Registration: "PR-ABC", Model: "Phenom 300E", Capacity: 9})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.True(t, apperrors.IsNotFound(svc.Delete(ctx, created.ID)))
}

func TestAircraftService_List_EmptyIsNotNil(t *testing.T) {
	svc := NewAircraftService(newFakeAircraftRepo())

	out, err := svc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
