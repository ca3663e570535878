package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		failed   []string
	}{
		{name: "strong", password: "Abcdef1!", failed: nil},
		{name: "empty fails everything", password: "", failed: []string{"length", "upper", "lower", "digit", "special"}},
		{name: "too short", password: "Ab1!", failed: []string{"length"}},
		{name: "no upper", password: "abcdef1!", failed: []string{"upper"}},
		{name: "no lower", password: "ABCDEF1!", failed: []string{"lower"}},
		{name: "no digit", password: "Abcdefg!", failed: []string{"digit"}},
		{name: "no special", password: "Abcdefg1", failed: []string{"special"}},
		{name: "short and no digit", password: "Abc!", failed: []string{"length", "digit"}},
		{name: "accented letters count as lower", password: "ÁÇÃOabc1!", failed: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckPasswordStrength(tt.password)
			if tt.failed == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.failed, got)
		})
	}
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{Email: "ana@aerolink.com.br", Password: "Abcdef1!", FullName: "Ana"}
	assert.NoError(t, valid.Validate())

	t.Run("missing email", func(t *testing.T) {
		r := valid
		r.Email = "  "
		assert.EqualError(t, r.Validate(), "email is required")
	})

	t.Run("email too long", func(t *testing.T) {
		r := valid
		r.Email = strings.Repeat("a", 250) + "@x.com"
		assert.Error(t, r.Validate())
	})

	t.Run("missing password", func(t *testing.T) {
		r := valid
		r.Password = ""
		assert.EqualError(t, r.Validate(), "password is required")
	})

	t.Run("weak password reports sub-checks", func(t *testing.T) {
		r := valid
		r.Password = "abc"
		err := r.Validate()
		require.Error(t, err)
		weak, ok := err.(*WeakPasswordError)
		require.True(t, ok)
		assert.Equal(t, []string{"length", "upper", "digit", "special"}, weak.Failed)
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Email: "a@b.c", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Email: "a@b.c"}).Validate())
}

func TestUser_Sanitized(t *testing.T) {
	u := User{ID: "u-1", Email: "a@b.c", PasswordHash: "hash", FullName: "Ana"}
	s := u.Sanitized()
	assert.Empty(t, s.PasswordHash)
	assert.Equal(t, "hash", u.PasswordHash)
	assert.Equal(t, u.Email, s.Email)
}
