package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greenfield-farms/farm-manager/internal/core/derive"
	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

// DashboardStores are the collections the dashboard reads.
type DashboardStores struct {
	Animals      ports.RowStore[domain.Animal]
	Inventory    ports.RowStore[domain.InventoryItem]
	Health       ports.RowStore[domain.HealthRecord]
	Breeding     ports.RowStore[domain.BreedingRecord]
	Transactions ports.RowStore[domain.Transaction]
}

// DashboardService fetches a fresh snapshot per call and derives the views
// from it. Nothing derived is kept between calls.
type DashboardService struct {
	stores  DashboardStores
	horizon int
	log     zerolog.Logger
	now     func() time.Time
}

func NewDashboardService(stores DashboardStores, horizonDays int, log zerolog.Logger) *DashboardService {
	if horizonDays <= 0 {
		horizonDays = derive.DefaultHorizonDays
	}
	return &DashboardService{
		stores:  stores,
		horizon: horizonDays,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for "today".
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

var breedingJoins = []ports.Join{
	{From: domain.CollectionAnimals, LocalField: "mother_id", As: "mother"},
	{From: domain.CollectionAnimals, LocalField: "father_id", As: "father"},
}

func (s *DashboardService) Animals(ctx context.Context) (*derive.AnimalSummary, error) {
	rows, err := s.stores.Animals.Select(ctx, ports.Query{})
	if err != nil {
		return nil, err
	}
	v := derive.SummarizeAnimals(rows)
	return &v, nil
}

func (s *DashboardService) Inventory(ctx context.Context) (*derive.InventoryView, error) {
	rows, err := s.stores.Inventory.Select(ctx, ports.Query{SortBy: "name"})
	if err != nil {
		return nil, err
	}
	v := derive.InventoryReport(rows)
	return &v, nil
}

func (s *DashboardService) HealthReminders(ctx context.Context, horizonDays int) ([]derive.Reminder, error) {
	if horizonDays <= 0 {
		horizonDays = s.horizon
	}
	rows, err := s.stores.Health.Select(ctx, ports.Query{
		Joins: []ports.Join{{From: domain.CollectionAnimals, LocalField: "animal_id", As: "animal"}},
	})
	if err != nil {
		return nil, err
	}
	reminders := derive.HealthReminders(rows, s.now(), horizonDays)
	s.log.Debug().Int("records", len(rows)).Int("reminders", len(reminders)).Msg("health reminders derived")
	return reminders, nil
}

func (s *DashboardService) Breeding(ctx context.Context) ([]derive.BreedingLine, error) {
	rows, err := s.stores.Breeding.Select(ctx, ports.Query{Joins: breedingJoins, SortBy: "breeding_date", Desc: true})
	if err != nil {
		return nil, err
	}
	return derive.BreedingOutlook(rows, s.now()), nil
}

func (s *DashboardService) Finance(ctx context.Context) (*derive.FinanceSummary, error) {
	rows, err := s.stores.Transactions.Select(ctx, ports.Query{})
	if err != nil {
		return nil, err
	}
	v := derive.Finances(rows)
	return &v, nil
}

// Overview builds every section independently; one failing fetch leaves the
// other sections intact.
func (s *DashboardService) Overview(ctx context.Context, includeFinance bool) *ports.Overview {
	out := &ports.Overview{}
	fail := func(section string, err error) {
		if out.Errors == nil {
			out.Errors = make(map[string]string)
		}
		out.Errors[section] = err.Error()
		s.log.Warn().Err(err).Str("section", section).Msg("dashboard section unavailable")
	}

	if v, err := s.Animals(ctx); err != nil {
		fail("animals", err)
	} else {
		out.Animals = v
	}
	if v, err := s.Inventory(ctx); err != nil {
		fail("inventory", err)
	} else {
		out.Inventory = v
	}
	if v, err := s.HealthReminders(ctx, s.horizon); err != nil {
		fail("health_reminders", err)
	} else {
		out.Reminders = v
	}
	if v, err := s.Breeding(ctx); err != nil {
		fail("breeding", err)
	} else {
		out.Breeding = v
	}
	if includeFinance {
		if v, err := s.Finance(ctx); err != nil {
			fail("finance", err)
		} else {
			out.Finance = v
		}
	}
	return out
}
