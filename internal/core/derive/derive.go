// Package derive computes the summary values shown alongside a freshly
// fetched row snapshot. Every function is pure: the same rows always produce
// the same output, nothing is cached and nothing is written back.
package derive

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

// DefaultHorizonDays is the look-ahead used for due-soon reminders.
const DefaultHorizonDays = 30

// CountBy counts rows satisfying pred.
func CountBy[T any](rows []T, pred func(T) bool) int {
	n := 0
	for _, r := range rows {
		if pred(r) {
			n++
		}
	}
	return n
}

type StockStatus string

const (
	StockOK  StockStatus = "ok"
	StockLow StockStatus = "low"
)

// StockStatusOf is low when quantity is at or below the item's own threshold.
func StockStatusOf(item domain.InventoryItem) StockStatus {
	if item.Quantity.LessThanOrEqual(item.LowStockThreshold) {
		return StockLow
	}
	return StockOK
}

type DuenessKind string

const (
	Overdue DuenessKind = "overdue"
	DueSoon DuenessKind = "due_soon"
	NotDue  DuenessKind = "not_due"
)

// Dueness classifies a scheduled date against today. Days is days past due
// for Overdue and days remaining otherwise.
type Dueness struct {
	Kind DuenessKind `json:"kind"`
	Days int         `json:"days"`
}

// DuenessOf classifies record.NextDueDate. ok is false when the record has no
// usable next due date; such records are never classified.
func DuenessOf(record domain.HealthRecord, today time.Time, horizonDays int) (Dueness, bool) {
	due, ok := domain.ParseDate(record.NextDueDate)
	if !ok {
		return Dueness{}, false
	}
	days := daysBetween(civil(today), due)
	switch {
	case days < 0:
		return Dueness{Kind: Overdue, Days: -days}, true
	case days <= horizonDays:
		return Dueness{Kind: DueSoon, Days: days}, true
	default:
		return Dueness{Kind: NotDue, Days: days}, true
	}
}

var gestationDays = map[domain.Species]int{
	domain.SpeciesRabbit:    31,
	domain.SpeciesGuineaPig: 68,
	domain.SpeciesDog:       63,
	domain.SpeciesCat:       64,
	domain.SpeciesFowl:      21,
}

// GestationDays returns the fixed gestation (or incubation) length for species.
func GestationDays(species domain.Species) (int, bool) {
	d, ok := gestationDays[species]
	return d, ok
}

// ExpectedDate projects a birth date from a breeding date. It returns "" for
// a missing or malformed start date or an unknown species.
func ExpectedDate(startDate string, species domain.Species) string {
	days, ok := GestationDays(species)
	if !ok {
		return ""
	}
	return AddDays(startDate, days)
}

// AddDays returns startDate plus days, or "" when startDate is unusable.
func AddDays(startDate string, days int) string {
	start, ok := domain.ParseDate(startDate)
	if !ok {
		return ""
	}
	return start.AddDate(0, 0, days).Format(domain.DateLayout)
}

// IsRevenue matches money coming in.
func IsRevenue(t domain.Transaction) bool {
	return t.Type == domain.TransactionSale || t.Type == domain.TransactionIncome
}

// IsCost matches money going out.
func IsCost(t domain.Transaction) bool {
	return t.Type == domain.TransactionPurchase || t.Type == domain.TransactionExpense
}

// SumCompleted adds the amounts of completed transactions matching category.
func SumCompleted(txs []domain.Transaction, category func(domain.Transaction) bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if t.Status == domain.TransactionCompleted && category(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween counts whole calendar days from a to b; both are UTC midnights.
func daysBetween(a, b time.Time) int {
	// Unix seconds rather than Sub: a Duration saturates beyond ~292 years
	return int((b.Unix() - a.Unix()) / 86400)
}
