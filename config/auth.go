package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig groups token signing and password hashing configuration.
type AuthConfig struct {
	// TokenSecret is the HMAC key used to sign session tokens. The process
	// refuses to start without it.
	TokenSecret string `env:"TOKEN_SECRET,required"`

	// TokenTTL is how long issued session tokens remain valid.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"168h"`

	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.TokenTTL <= 0 {
		a.TokenTTL = 168 * time.Hour
	}
	if a.BcryptCost < bcrypt.MinCost || a.BcryptCost > bcrypt.MaxCost {
		a.BcryptCost = bcrypt.DefaultCost
	}
}
