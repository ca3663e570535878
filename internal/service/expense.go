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

// ExpenseService manages client expense reports and reconciliation
// summaries.
type ExpenseService struct {
	expenses ports.ExpenseRepository
}

// NewExpenseService constructs a new ExpenseService.
func NewExpenseService(expenses ports.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses}
}

// Create files an expense report submitted by the authenticated caller.
// New reports start in pending status.
func (s *ExpenseService) Create(ctx context.Context, submittedBy string, req *model.CreateExpenseRequest) (*model.Expense, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.expenses.Create(ctx, submittedBy, req)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// Get retrieves an expense report by id.
func (s *ExpenseService) Get(ctx context.Context, id string) (*model.Expense, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	out, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// List pages through expense reports with optional client and status
// filters.
func (s *ExpenseService) List(ctx context.Context, opts model.ExpenseListOptions) ([]*model.Expense, error) {
	out, err := s.expenses.List(ctx, opts)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if out == nil {
		out = []*model.Expense{}
	}
	return out, nil
}

// Update reviews an expense report: status change and description edits.
func (s *ExpenseService) Update(ctx context.Context, id string, req model.UpdateExpenseRequest) (*model.Expense, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationField("id", "id is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	out, err := s.expenses.Update(ctx, id, req)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return out, nil
}

// Delete removes an expense report.
func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.ValidationField("id", "id is required")
	}
	deleted, err := s.expenses.Delete(ctx, id)
	if err != nil {
		return apperrors.MapDBError(err)
	}
	if !deleted {
		return apperrors.NotFound("expense not found")
	}
	return nil
}

// Reconcile aggregates a client's expenses into per-currency, per-status
// totals.
func (s *ExpenseService) Reconcile(ctx context.Context, clientID string) (*model.ClientReconciliation, error) {
	if strings.TrimSpace(clientID) == "" {
		return nil, apperrors.ValidationField("clientId", "clientId is required")
	}
	out, err := s.expenses.SummarizeByClient(ctx, clientID)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	if out.Totals == nil {
		out.Totals = []model.ReconciliationLine{}
	}
	if out.ExpenseIDs == nil {
		out.ExpenseIDs = []string{}
	}
	return out, nil
}

// mapErr translates repository errors. Anything not recognized as a
// client fault surfaces as an internal error, never as validation.
func (s *ExpenseService) mapErr(err error) error {
	if errors.Is(err, data.ErrExpenseNotFound) {
		return apperrors.NotFound("expense not found")
	}
	if errors.Is(err, data.ErrInvalidRequest) {
		return apperrors.Validation(err.Error())
	}
	mapped := apperrors.MapDBError(err)
	var appErr *apperrors.AppError
	if errors.As(mapped, &appErr) {
		return mapped
	}
	return apperrors.Wrap(err, apperrors.ErrCodeInternal, "expense store failure")
}
