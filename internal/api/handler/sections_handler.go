package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/api/metrics"
	"github.com/greenfield-farms/farm-manager/internal/api/middleware"
	"github.com/greenfield-farms/farm-manager/internal/core/access"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

// SectionsHandler exposes the management shell as the caller may see it.
type SectionsHandler struct {
	registry *access.Registry
}

func NewSectionsHandler(registry *access.Registry) *SectionsHandler {
	return &SectionsHandler{registry: registry}
}

type sectionsResponse struct {
	Identity *domain.Identity `json:"identity,omitempty"`
	Sections []access.Section `json:"sections"`
}

// List handles GET /v1/sections.
//
// @Summary      Navigation sections for the caller
// @Description  Hidden sections are omitted; locked sections carry a notice.
// @Tags         sections
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sectionsResponse
// @Router       /v1/sections [get]
func (h *SectionsHandler) List(c echo.Context) error {
	id := middleware.IdentityFrom(c)
	sections := h.registry.Resolve(id)
	for _, s := range sections {
		outcome := access.RenderChildren
		if !s.Granted {
			outcome = access.RenderFallback
		}
		metrics.AccessDecisionsTotal.WithLabelValues(s.Key, string(outcome)).Inc()
	}
	return c.JSON(http.StatusOK, sectionsResponse{Identity: id, Sections: sections})
}

// ContentHandler serves the public site panels.
type ContentHandler struct {
	service ports.CollectionService[domain.ContentPanel]
}

func NewContentHandler(service ports.CollectionService[domain.ContentPanel]) *ContentHandler {
	return &ContentHandler{service: service}
}

// Published handles GET /public/content. No identity is needed.
//
// @Summary      Published site content
// @Tags         content
// @Produce      json
// @Success      200  {object}  listResponse[domain.ContentPanel]
// @Failure      502  {object}  map[string]string
// @Router       /public/content [get]
func (h *ContentHandler) Published(c echo.Context) error {
	rows, err := h.service.List(c.Request().Context(), ports.Query{
		Eq:     map[string]any{"published": true},
		SortBy: "sort_order",
	})
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(h.service.Name()).Inc()
		return err
	}
	return c.JSON(http.StatusOK, listResponse[domain.ContentPanel]{Rows: rows, Count: len(rows)})
}
