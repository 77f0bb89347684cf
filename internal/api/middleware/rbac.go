package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/api/metrics"
	"github.com/greenfield-farms/farm-manager/internal/core/access"
)

type deniedResponse struct {
	Error     string           `json:"error"`
	Retryable bool             `json:"retryable"`
	Fallback  *access.Fallback `json:"fallback,omitempty"`
}

// Gate protects a route group with req. The decision is made on every request
// from the identity Identify stored, so a logout takes effect immediately.
//
// A denied signed-out caller gets 401 and a denied signed-in caller gets 403,
// both carrying the fallback content. Hide-mode routes answer 404.
func Gate(section string, req access.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := access.Evaluate(IdentityFrom(c), req)
			metrics.AccessDecisionsTotal.WithLabelValues(section, string(d.Outcome)).Inc()

			switch {
			case d.Granted:
				return next(c)
			case d.Outcome == access.RenderNothing:
				return echo.ErrNotFound
			}

			status := http.StatusForbidden
			if d.Reason == access.ReasonUnauthenticated {
				status = http.StatusUnauthorized
			}
			return c.JSON(status, deniedResponse{Error: d.Fallback.Message, Fallback: d.Fallback})
		}
	}
}
