package auth

import (
	"context"
	"fmt"
	"fxconvert/internal/domain"
	"strings"

	"github.com/go-chi/jwtauth/v5"
)

const RoleClaim = "role"

// JWTValidator accepts HS256 tokens carrying a "sub" and a "role" claim.
type JWTValidator struct {
	auth *jwtauth.JWTAuth
}

func (v *JWTValidator) Validate(_ context.Context, token string) (Credential, error) {
	t, err := jwtauth.VerifyToken(v.auth, token)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	subject := t.Subject()
	if subject == "" {
		return Credential{}, fmt.Errorf("%w: missing subject", ErrInvalidCredential)
	}

	var rawRole string
	if claim, ok := t.Get(RoleClaim); ok {
		rawRole, _ = claim.(string)
	}

	return Credential{
		Auth:      domain.AuthContext{Subject: subject, Role: ParseRole(rawRole)},
		ExpiresAt: t.Expiration(),
	}, nil
}

// ParseRole maps a role claim to a Role. Any valid credential is at least a user.
func ParseRole(raw string) domain.Role {
	if strings.EqualFold(strings.TrimSpace(raw), string(domain.RoleAdmin)) {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{auth: jwtauth.New("HS256", []byte(secret), nil)}
}
