package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerolink/charter-ops/internal/data"
	"github.com/aerolink/charter-ops/internal/domain/model"
	"github.com/aerolink/charter-ops/internal/ports"
	"github.com/aerolink/charter-ops/internal/service"
)

// memExpenseRepo is a minimal ExpenseRepository for handler tests.
type memExpenseRepo struct {
	expenses []*model.Expense
}

var _ ports.ExpenseRepository = (*memExpenseRepo)(nil)

func (m *memExpenseRepo) Create(_ context.Context, submittedBy string, req *model.CreateExpenseRequest) (*model.Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidRequest, err)
	}
	exp := &model.Expense{
		ID:          fmt.Sprintf("exp-%d", len(m.expenses)+1),
		ClientID:    req.ClientID,
		SubmittedBy: submittedBy,
		Category:    req.Category,
		Description: req.Description,
		AmountCents: req.AmountCents,
		Currency:    req.Currency,
		IncurredOn:  req.IncurredOn,
		Status:      model.ExpenseStatusPending,
	}
	m.expenses = append(m.expenses, exp)
	return exp, nil
}

func (m *memExpenseRepo) GetByID(_ context.Context, id string) (*model.Expense, error) {
	for _, e := range m.expenses {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, data.ErrExpenseNotFound
}

func (m *memExpenseRepo) List(_ context.Context, opts model.ExpenseListOptions) ([]*model.Expense, error) {
	var out []*model.Expense
	for _, e := range m.expenses {
		if opts.ClientID != nil && e.ClientID != *opts.ClientID {
			continue
		}
		if opts.Status != nil && e.Status != *opts.Status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memExpenseRepo) Update(_ context.Context, id string, req model.UpdateExpenseRequest) (*model.Expense, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", data.ErrInvalidRequest, err)
	}
	exp, err := m.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		exp.Status = *req.Status
	}
	if req.Description != nil {
		exp.Description = *req.Description
	}
	return exp, nil
}

func (m *memExpenseRepo) Delete(_ context.Context, id string) (bool, error) {
	for i, e := range m.expenses {
		if e.ID == id {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memExpenseRepo) SummarizeByClient(_ context.Context, clientID string) (*model.ClientReconciliation, error) {
	out := &model.ClientReconciliation{ClientID: clientID}
	for _, e := range m.expenses {
		if e.ClientID != clientID {
			continue
		}
		out.ExpenseIDs = append(out.ExpenseIDs, e.ID)
		out.Totals = append(out.Totals, model.ReconciliationLine{
			Currency: e.Currency, Status: e.Status, TotalCents: e.AmountCents, Count: 1,
		})
	}
	return out, nil
}

func authedRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	ctx := SetPrincipalInContext(req.Context(), &Principal{User: &model.User{ID: "user-1"}})
	return req.WithContext(ctx)
}

func newExpenseHandlers() (*ExpenseHandlers, *memExpenseRepo) {
	repo := &memExpenseRepo{}
	return &ExpenseHandlers{Svc: service.NewExpenseService(repo)}, repo
}

func expenseBody() map[string]any {
	return map[string]any{
		"client_id":    "client-1",
		"category":     "fuel",
		"description":  "JET A-1 uplift",
		"amount_cents": 125000,
		"currency":     "BRL",
		"incurred_on":  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpenseHandlers_Create(t *testing.T) {
	h, _ := newExpenseHandlers()

	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/api/expenses", expenseBody()))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var exp model.Expense
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &exp))
	assert.Equal(t, "user-1", exp.SubmittedBy)
	assert.Equal(t, model.ExpenseStatusPending, exp.Status)
}

func TestExpenseHandlers_Create_NoPrincipal(t *testing.T) {
	h, _ := newExpenseHandlers()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/expenses", bytes.NewBufferString("{}"))
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "no_token", decodeErrorBody(t, rec)["error"])
}

func TestExpenseHandlers_List_InvalidStatusFilter(t *testing.T) {
	h, _ := newExpenseHandlers()

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/expenses?status=archived", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation", decodeErrorBody(t, rec)["error"])
}

func TestExpenseHandlers_List_FiltersAndPaging(t *testing.T) {
	h, repo := newExpenseHandlers()
	_, err := repo.Create(context.Background(), "user-1", &model.CreateExpenseRequest{
		ClientID: "client-1", Category: model.ExpenseCategoryFuel, Description: "d",
		AmountCents: 100, Currency: "BRL", IncurredOn: time.Now(),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.List(rec, authedRequest(http.MethodGet, "/api/expenses?clientId=client-1&status=pending", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Expenses []model.Expense `json:"expenses"`
		Limit    int             `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Expenses, 1)
	assert.Equal(t, 50, resp.Limit)
}

func TestExpenseHandlers_Reconcile(t *testing.T) {
	h, repo := newExpenseHandlers()
	_, err := repo.Create(context.Background(), "user-1", &model.CreateExpenseRequest{
		ClientID: "client-1", Category: model.ExpenseCategoryFuel, Description: "d",
		AmountCents: 100, Currency: "BRL", IncurredOn: time.Now(),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.Reconcile(rec, authedRequest(http.MethodGet, "/api/reconciliation?clientId=client-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var summary model.ClientReconciliation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "client-1", summary.ClientID)
	assert.Len(t, summary.ExpenseIDs, 1)

	rec = httptest.NewRecorder()
	h.Reconcile(rec, authedRequest(http.MethodGet, "/api/reconciliation", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
