package ports

import (
	"context"

	"github.com/greenfield-farms/farm-manager/internal/core/derive"
)

// Overview bundles every dashboard view. A section whose fetch failed is nil
// and its error message is recorded in Errors under the section key.
type Overview struct {
	Animals   *derive.AnimalSummary  `json:"animals,omitempty"`
	Inventory *derive.InventoryView  `json:"inventory,omitempty"`
	Reminders []derive.Reminder      `json:"health_reminders,omitempty"`
	Breeding  []derive.BreedingLine  `json:"breeding,omitempty"`
	Finance   *derive.FinanceSummary `json:"finance,omitempty"`
	Errors    map[string]string      `json:"errors,omitempty"`
}

type DashboardService interface {
	Animals(ctx context.Context) (*derive.AnimalSummary, error)
	Inventory(ctx context.Context) (*derive.InventoryView, error)
	HealthReminders(ctx context.Context, horizonDays int) ([]derive.Reminder, error)
	Breeding(ctx context.Context) ([]derive.BreedingLine, error)
	Finance(ctx context.Context) (*derive.FinanceSummary, error)
	// Overview includes finance only when includeFinance is set.
	Overview(ctx context.Context, includeFinance bool) *Overview
}
