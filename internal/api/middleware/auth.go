package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// Context keys set by Identify.
const (
	IdentityKey  = "identity"
	SessionIDKey = "session_id"
)

// IdentityResolver turns a bearer token into the caller's current identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Identity, string, error)
}

// Identify resolves the bearer token, when one is sent, into an identity and
// stores it in the context. A request without an Authorization header passes
// through signed out; a bad or expired token is rejected with 401.
func Identify(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			token, ok := bearerToken(authHeader)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, sessionID, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrSessionNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
				}
				return err
			}

			c.Set(IdentityKey, identity)
			c.Set(SessionIDKey, sessionID)
			return next(c)
		}
	}
}

// IdentifyOptional is Identify for routes a signed-out caller may use. A
// token that no longer resolves leaves the caller signed out instead of
// failing the request; session store failures still propagate.
func IdentifyOptional(resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return next(c)
			}

			identity, sessionID, err := resolver.Resolve(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrSessionNotFound):
				return next(c)
			case err != nil:
				return err
			}

			c.Set(IdentityKey, identity)
			c.Set(SessionIDKey, sessionID)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// IdentityFrom returns the identity stored by Identify, or nil for a
// signed-out caller.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}

// SessionIDFrom returns the session id stored by Identify.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get(SessionIDKey).(string)
	return sid
}
