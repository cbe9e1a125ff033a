package auth

import (
	"fmt"
	"time"

	"prizzys-backend/internal/domain/apperr"
	domainUser "prizzys-backend/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrBadCredentials = fmt.Errorf("email or password is incorrect: %w", apperr.ErrAuthFailure)
	ErrInvalidToken   = fmt.Errorf("token is invalid: %w", apperr.ErrAuthFailure)
)

type Options struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
	// Zero means bcrypt.DefaultCost.
	BcryptCost int
}

type RegisterInput struct {
	Name     string          `validate:"required,max=128"`
	Email    string          `validate:"required,email,max=255"`
	Phone    string          `validate:"omitempty,max=32"`
	Password string          `validate:"required,min=8,max=72"`
	Role     domainUser.Role `validate:"required,oneof=ADMIN LOANER LOANEE"`
	Currency string          `validate:"omitempty,len=3"`
}

type Result struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *domainUser.User `json:"user"`
}

// Claims are carried in the bearer token; ID (jti) names the server-side session.
type Claims struct {
	Role domainUser.Role `json:"role"`
	jwt.RegisteredClaims
}
