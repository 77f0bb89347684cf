package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/greenfield-farms/farm-manager/internal/api/metrics"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

const maxListLimit = 500

// ListOptions whitelists the query parameters a collection accepts on GET.
// Anything not listed is ignored.
type ListOptions struct {
	Filters     []string // exact-match string fields
	BoolFilters []string // exact-match boolean fields
	Sorts       []string // fields accepted by ?sort=
}

// CollectionHandler serves list and write routes for one collection.
type CollectionHandler[T any] struct {
	service ports.CollectionService[T]
	opts    ListOptions
}

func NewCollectionHandler[T any](service ports.CollectionService[T], opts ListOptions) *CollectionHandler[T] {
	return &CollectionHandler[T]{service: service, opts: opts}
}

type listResponse[T any] struct {
	Rows  []T `json:"rows"`
	Count int `json:"count"`
}

// writeResponse carries the stored row and the collection as reloaded after
// the write. ReloadError is set when the write succeeded but the reload did
// not; the client should retry the list.
type writeResponse[T any] struct {
	Row         *T     `json:"row,omitempty"`
	Rows        []T    `json:"rows"`
	ReloadError string `json:"reload_error,omitempty"`
}

// List handles GET /v1/<collection>.
func (h *CollectionHandler[T]) List(c echo.Context) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	rows, err := h.service.List(c.Request().Context(), q)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(h.service.Name()).Inc()
		return err
	}
	return c.JSON(http.StatusOK, listResponse[T]{Rows: rows, Count: len(rows)})
}

// Create handles POST /v1/<collection>.
func (h *CollectionHandler[T]) Create(c echo.Context) error {
	var row T
	if err := c.Bind(&row); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&row); err != nil {
		return err
	}
	return h.submit(c, http.StatusCreated, ports.Write[T]{Kind: ports.WriteCreate, Row: row})
}

// Update handles PUT /v1/<collection>/:id. The body replaces the stored row.
func (h *CollectionHandler[T]) Update(c echo.Context) error {
	var row T
	if err := c.Bind(&row); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&row); err != nil {
		return err
	}
	return h.submit(c, http.StatusOK, ports.Write[T]{Kind: ports.WriteUpdate, ID: c.Param("id"), Row: row})
}

// Delete handles DELETE /v1/<collection>/:id.
func (h *CollectionHandler[T]) Delete(c echo.Context) error {
	return h.submit(c, http.StatusOK, ports.Write[T]{Kind: ports.WriteDelete, ID: c.Param("id")})
}

// submit runs the write and, only when it succeeded, reloads the collection.
// A failed write returns the error and reloads nothing.
func (h *CollectionHandler[T]) submit(c echo.Context, status int, w ports.Write[T]) error {
	ctx := c.Request().Context()

	res := h.service.Submit(ctx, w)
	if !res.OK {
		metrics.WritesTotal.WithLabelValues(h.service.Name(), string(w.Kind), "error").Inc()
		return res.Err
	}
	metrics.WritesTotal.WithLabelValues(h.service.Name(), string(w.Kind), "ok").Inc()

	resp := writeResponse[T]{}
	if w.Kind != ports.WriteDelete {
		row := res.Row
		resp.Row = &row
	}

	rows, err := h.service.Reload(ctx)
	if err != nil {
		metrics.FetchErrorsTotal.WithLabelValues(h.service.Name()).Inc()
		resp.ReloadError = err.Error()
	} else {
		resp.Rows = rows
	}
	return c.JSON(status, resp)
}

func (h *CollectionHandler[T]) parseQuery(c echo.Context) (ports.Query, error) {
	q := ports.Query{}

	for _, f := range h.opts.Filters {
		if v := c.QueryParam(f); v != "" {
			if q.Eq == nil {
				q.Eq = make(map[string]any)
			}
			q.Eq[f] = v
		}
	}
	for _, f := range h.opts.BoolFilters {
		raw := c.QueryParam(f)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return q, fmt.Errorf("%w: %s must be true or false", domain.ErrValidation, f)
		}
		if q.Eq == nil {
			q.Eq = make(map[string]any)
		}
		q.Eq[f] = v
	}

	if sort := c.QueryParam("sort"); sort != "" {
		if !contains(h.opts.Sorts, sort) {
			return q, fmt.Errorf("%w: cannot sort by %s", domain.ErrValidation, sort)
		}
		q.SortBy = sort
		q.Desc = c.QueryParam("desc") == "true"
	}

	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return q, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation)
		}
		q.Limit = min(n, maxListLimit)
	}
	return q, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
