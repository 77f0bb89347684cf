package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/greenfield-farms/farm-manager/internal/api/metrics"
	"github.com/greenfield-farms/farm-manager/internal/core/access"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

const maxHorizonDays = 365

// FinanceRequirement guards the finance figures, both on their own route and
// as a section of the overview.
var FinanceRequirement = access.Require(access.ModeHide, domain.RoleAdministrator)

// DashboardHandler serves the derived views. Every request fetches a fresh
// snapshot; nothing is cached between requests.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func observe(view string) func() {
	timer := prometheus.NewTimer(metrics.DerivedViewDuration.WithLabelValues(view))
	return func() { timer.ObserveDuration() }
}

// Overview handles GET /v1/dashboard.
//
// @Summary      Dashboard overview
// @Description  Sections whose fetch failed are omitted and listed under "errors".
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Overview
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	id, err := mustIdentity(c)
	if err != nil {
		return err
	}
	defer observe("overview")()

	finance := access.Evaluate(id, FinanceRequirement)
	return c.JSON(http.StatusOK, h.service.Overview(c.Request().Context(), finance.Granted))
}

// Animals handles GET /v1/dashboard/animals.
//
// @Summary      Animal counts
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  derive.AnimalSummary
// @Failure      502  {object}  map[string]string
// @Router       /v1/dashboard/animals [get]
func (h *DashboardHandler) Animals(c echo.Context) error {
	defer observe("animals")()
	v, err := h.service.Animals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Inventory handles GET /v1/dashboard/inventory.
//
// @Summary      Inventory with stock status
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  derive.InventoryView
// @Failure      502  {object}  map[string]string
// @Router       /v1/dashboard/inventory [get]
func (h *DashboardHandler) Inventory(c echo.Context) error {
	defer observe("inventory")()
	v, err := h.service.Inventory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// HealthReminders handles GET /v1/dashboard/health-reminders.
//
// @Summary      Overdue and due-soon health records
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        horizon  query     int  false  "Look-ahead in days"
// @Success      200      {array}   derive.Reminder
// @Failure      400      {object}  map[string]string
// @Failure      502      {object}  map[string]string
// @Router       /v1/dashboard/health-reminders [get]
func (h *DashboardHandler) HealthReminders(c echo.Context) error {
	horizon := 0
	if raw := c.QueryParam("horizon"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxHorizonDays {
			return fmt.Errorf("%w: horizon must be between 1 and %d days", domain.ErrValidation, maxHorizonDays)
		}
		horizon = n
	}

	defer observe("health_reminders")()
	v, err := h.service.HealthReminders(c.Request().Context(), horizon)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Breeding handles GET /v1/dashboard/breeding.
//
// @Summary      Breeding records with expected dates
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   derive.BreedingLine
// @Failure      502  {object}  map[string]string
// @Router       /v1/dashboard/breeding [get]
func (h *DashboardHandler) Breeding(c echo.Context) error {
	defer observe("breeding")()
	v, err := h.service.Breeding(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}

// Finance handles GET /v1/dashboard/finance.
//
// @Summary      Income, expenses and net of completed transactions
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  derive.FinanceSummary
// @Failure      502  {object}  map[string]string
// @Router       /v1/dashboard/finance [get]
func (h *DashboardHandler) Finance(c echo.Context) error {
	defer observe("finance")()
	v, err := h.service.Finance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, v)
}
