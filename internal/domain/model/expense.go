//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxExpenseDescriptionLen = 1000

// ExpenseStatus is the review state of an expense report.
type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "pending"
	ExpenseStatusApproved ExpenseStatus = "approved"
	ExpenseStatusRejected ExpenseStatus = "rejected"
)

// Valid reports whether the expense status is supported.
func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected:
		return true
	default:
		return false
	}
}

// ExpenseCategory tags an expense report for reconciliation.
type ExpenseCategory string

const (
	ExpenseCategoryFuel        ExpenseCategory = "fuel"
	ExpenseCategoryHandling    ExpenseCategory = "handling"
	ExpenseCategoryMaintenance ExpenseCategory = "maintenance"
	ExpenseCategoryCatering    ExpenseCategory = "catering"
	ExpenseCategoryCrew        ExpenseCategory = "crew"
	ExpenseCategoryOther       ExpenseCategory = "other"
)

// Valid reports whether the expense category is supported.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case ExpenseCategoryFuel, ExpenseCategoryHandling, ExpenseCategoryMaintenance,
		ExpenseCategoryCatering, ExpenseCategoryCrew, ExpenseCategoryOther:
		return true
	default:
		return false
	}
}

// Expense is a single expense report attributed to a client account.
// Amounts are stored in integer cents to avoid float rounding.
type Expense struct {
	ID          string          `json:"id"           db:"id"`
	ClientID    string          `json:"client_id"    db:"client_id"`
	SubmittedBy string          `json:"submitted_by" db:"submitted_by"`
	Category    ExpenseCategory `json:"category"     db:"category"`
	Description string          `json:"description"  db:"description"`
	AmountCents int64           `json:"amount_cents" db:"amount_cents"`
	Currency    string          `json:"currency"     db:"currency"`
	IncurredOn  time.Time       `json:"incurred_on"  db:"incurred_on"`
	Status      ExpenseStatus   `json:"status"       db:"status"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"   db:"updated_at"`
}

// CreateExpenseRequest represents parameters to file an expense report.
// SubmittedBy is taken from the authenticated caller.
type CreateExpenseRequest struct {
	ClientID    string          `json:"client_id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	AmountCents int64           `json:"amount_cents"`
	Currency    string          `json:"currency"`
	IncurredOn  time.Time       `json:"incurred_on"`
}

// UpdateExpenseRequest represents parameters to review an expense report.
type UpdateExpenseRequest struct {
	Status      *ExpenseStatus `json:"status,omitempty"`
	Description *string        `json:"description,omitempty"`
}

// ExpenseListOptions controls paging and filtering of expense listings.
type ExpenseListOptions struct {
	Limit    int
	Offset   int
	ClientID *string
	Status   *ExpenseStatus
}

// ClientReconciliation summarizes expense totals for one client account,
// grouped by currency and status.
type ClientReconciliation struct {
	ClientID   string               `json:"client_id"`
	Totals     []ReconciliationLine `json:"totals"`
	ExpenseIDs []string             `json:"expense_ids"`
}

// ReconciliationLine is one aggregated total in a reconciliation summary.
type ReconciliationLine struct {
	Currency   string        `json:"currency"     db:"currency"`
	Status     ExpenseStatus `json:"status"       db:"status"`
	TotalCents int64         `json:"total_cents"  db:"total_cents"`
	Count      int           `json:"count"        db:"count"`
}

// Validate validates CreateExpenseRequest.
func (r *CreateExpenseRequest) Validate() error {
	if strings.TrimSpace(r.ClientID) == "" {
		return errors.New("client_id is required")
	}
	if !r.Category.Valid() {
		return errors.New("category is not a recognized expense category")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxExpenseDescriptionLen {
		return errors.New("description cannot exceed 1000 characters")
	}
	if r.AmountCents <= 0 {
		return errors.New("amount_cents must be > 0")
	}
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if len(r.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if r.IncurredOn.IsZero() {
		return errors.New("incurred_on is required")
	}
	return nil
}

// Validate validates UpdateExpenseRequest.
func (r *UpdateExpenseRequest) Validate() error {
	if r.Status == nil && r.Description == nil {
		return errors.New("no fields to update")
	}
	if r.Status != nil && !r.Status.Valid() {
		return errors.New("status is not a recognized expense status")
	}
	if r.Description != nil {
		if strings.TrimSpace(*r.Description) == "" {
			return errors.New("description cannot be empty")
		}
		if utf8.RuneCountInString(*r.Description) > maxExpenseDescriptionLen {
			return errors.New("description cannot exceed 1000 characters")
		}
	}
	return nil
}
