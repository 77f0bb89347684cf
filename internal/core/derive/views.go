package derive

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// AnimalSummary is the header of the animals screen.
type AnimalSummary struct {
	Total     int                         `json:"total"`
	Available int                         `json:"available"`
	ByStatus  map[domain.AnimalStatus]int `json:"by_status"`
	BySpecies map[domain.Species]int      `json:"by_species"`
}

func SummarizeAnimals(animals []domain.Animal) AnimalSummary {
	s := AnimalSummary{
		Total:     len(animals),
		ByStatus:  make(map[domain.AnimalStatus]int),
		BySpecies: make(map[domain.Species]int),
	}
	for _, a := range animals {
		s.ByStatus[a.Status]++
		s.BySpecies[a.Species]++
	}
	s.Available = CountBy(animals, func(a domain.Animal) bool { return a.Status == domain.AnimalAvailable })
	return s
}

// InventoryLine is an item with its derived stock status.
type InventoryLine struct {
	Item   domain.InventoryItem `json:"item"`
	Status StockStatus          `json:"stock_status"`
	Value  decimal.Decimal      `json:"stock_value"`
}

type InventoryView struct {
	Items      []InventoryLine `json:"items"`
	LowStock   int             `json:"low_stock"`
	TotalValue decimal.Decimal `json:"total_value"`
}

func InventoryReport(items []domain.InventoryItem) InventoryView {
	v := InventoryView{Items: make([]InventoryLine, 0, len(items)), TotalValue: decimal.Zero}
	for _, it := range items {
		line := InventoryLine{Item: it, Status: StockStatusOf(it), Value: it.Quantity.Mul(it.UnitCost)}
		if line.Status == StockLow {
			v.LowStock++
		}
		v.TotalValue = v.TotalValue.Add(line.Value)
		v.Items = append(v.Items, line)
	}
	return v
}

// Reminder is a health record that is overdue or due within the horizon.
type Reminder struct {
	Record  domain.HealthRecord `json:"record"`
	DueDate string              `json:"due_date"`
	Dueness Dueness             `json:"dueness"`
}

// HealthReminders returns overdue and due-soon records, earliest due first.
// Records without a next due date never appear.
func HealthReminders(records []domain.HealthRecord, today time.Time, horizonDays int) []Reminder {
	out := make([]Reminder, 0)
	for _, r := range records {
		d, ok := DuenessOf(r, today, horizonDays)
		if !ok || d.Kind == NotDue {
			continue
		}
		out = append(out, Reminder{Record: r, DueDate: r.NextDueDate, Dueness: d})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out
}

// BreedingLine is a breeding record with its projected birth date. Expected
// is empty when no date can be projected.
type BreedingLine struct {
	Record   domain.BreedingRecord `json:"record"`
	Expected string                `json:"expected_date"`
	DaysLeft *int                  `json:"days_left,omitempty"`
	Overdue  bool                  `json:"overdue"`
}

// BreedingOutlook projects expected dates. A stored expected date wins over
// the gestation lookup. Finished records (born or failed) carry no countdown.
func BreedingOutlook(records []domain.BreedingRecord, today time.Time) []BreedingLine {
	out := make([]BreedingLine, 0, len(records))
	for _, r := range records {
		line := BreedingLine{Record: r, Expected: r.ExpectedDate}
		if _, ok := domain.ParseDate(line.Expected); !ok {
			line.Expected = ExpectedDate(r.BreedingDate, r.Species)
		}
		if due, ok := domain.ParseDate(line.Expected); ok && isOpen(r.Status) {
			days := daysBetween(civil(today), due)
			line.DaysLeft = &days
			line.Overdue = days < 0
		}
		out = append(out, line)
	}
	return out
}

func isOpen(s domain.BreedingStatus) bool {
	return s == domain.BreedingPlanned || s == domain.BreedingConfirmed
}

// FinanceSummary totals completed transactions.
type FinanceSummary struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Net           decimal.Decimal `json:"net"`
	Pending       int             `json:"pending"`
}

func Finances(txs []domain.Transaction) FinanceSummary {
	income := SumCompleted(txs, IsRevenue)
	expenses := SumCompleted(txs, IsCost)
	return FinanceSummary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Net:           income.Sub(expenses),
		Pending:       CountBy(txs, func(t domain.Transaction) bool { return t.Status == domain.TransactionPending }),
	}
}
