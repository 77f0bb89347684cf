package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/api/middleware"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// mustIdentity fails fast with 401 when the route was reached without an
// identity; gated routes never get here in that state.
func mustIdentity(c echo.Context) (*domain.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
	}
	return id, nil
}
