package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	plain := Validation("bad input")
	assert.Equal(t, "bad input", plain.Error())

	cause := stderrors.New("boom")
	wrapped := Wrap(cause, ErrCodeInternal, "query users")
	assert.Equal(t, "query users: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "nothing"))
	assert.Nil(t, Wrapf(nil, ErrCodeInternal, "nothing %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		pred func(error) bool
	}{
		{name: "not found", err: NotFound("x"), pred: IsNotFound},
		{name: "conflict", err: Conflict("x"), pred: IsConflict},
		{name: "validation", err: Validation("x"), pred: IsValidation},
		{name: "unauthorized", err: Unauthorized("x"), pred: IsUnauthorized},
		{name: "forbidden", err: Forbidden("x"), pred: IsForbidden},
		{name: "internal", err: Internal("x"), pred: IsInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.pred(tt.err))
			assert.False(t, tt.pred(stderrors.New("plain")))
		})
	}
}

func TestCodePredicates_SeeThroughWrapping(t *testing.T) {
	inner := Conflict("dup")
	outer := Wrap(inner, ErrCodeInternal, "outer")

	// errors.As finds the outermost AppError first.
	assert.True(t, IsInternal(outer))
	assert.Equal(t, ErrCodeInternal, GetCode(outer))
}

func TestGetField(t *testing.T) {
	assert.Equal(t, "email", GetField(ValidationField("email", "taken")))
	assert.Empty(t, GetField(stderrors.New("plain")))
}
