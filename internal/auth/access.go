package auth

import (
	"context"
	"errors"
	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

var ErrInvalidCredential = errors.New("invalid credential")

// Credential is a validated bearer token. A zero ExpiresAt means the token does not expire.
type Credential struct {
	Auth      domain.AuthContext
	ExpiresAt time.Time
}

type CredentialValidator interface {
	Validate(ctx context.Context, token string) (Credential, error)
}

type AccessControl struct {
	validator CredentialValidator
	cache     adapters.CredentialCache
	cacheTTL  time.Duration
	clock     clockwork.Clock
}

// Resolve maps an Authorization header value to an AuthContext.
// Anything that is not a valid bearer credential resolves to anonymous.
func (a *AccessControl) Resolve(ctx context.Context, header string) domain.AuthContext {
	token, ok := BearerToken(header)
	if !ok {
		return domain.Anonymous()
	}

	if a.cache != nil {
		if actx, hit := a.cache.Get(token); hit {
			return actx
		}
	}

	cred, err := a.validator.Validate(ctx, token)
	if err != nil {
		logrus.WithError(err).Debug("Bearer credential rejected, treating request as anonymous")
		return domain.Anonymous()
	}

	if a.cache != nil {
		a.cache.Set(token, cred.Auth, a.ttlFor(cred))
	}
	return cred.Auth
}

func (a *AccessControl) ttlFor(cred Credential) time.Duration {
	ttl := a.cacheTTL
	if !cred.ExpiresAt.IsZero() {
		if untilExpiry := cred.ExpiresAt.Sub(a.clock.Now()); untilExpiry < ttl {
			ttl = untilExpiry
		}
	}
	return ttl
}

// Check applies the policy matrix: mutations need admin, reads and conversions are open.
func (a *AccessControl) Check(actx domain.AuthContext, op domain.Operation) error {
	if !op.Mutating() {
		return nil
	}
	if !actx.Authenticated() {
		return domain.ErrUnauthenticated
	}
	if actx.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return nil
}

func (a *AccessControl) Authorize(ctx context.Context, header string, op domain.Operation) (domain.AuthContext, error) {
	actx := a.Resolve(ctx, header)
	return actx, a.Check(actx, op)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// NewAccessControl builds an AccessControl; cache may be nil to disable credential caching.
func NewAccessControl(validator CredentialValidator, cache adapters.CredentialCache, cacheTTL time.Duration, clock clockwork.Clock) *AccessControl {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AccessControl{validator: validator, cache: cache, cacheTTL: cacheTTL, clock: clock}
}
