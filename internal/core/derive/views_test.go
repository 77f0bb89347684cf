package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
)

func TestSummarizeAnimals(t *testing.T) {
	s := SummarizeAnimals([]domain.Animal{
		{Species: domain.SpeciesRabbit, Status: domain.AnimalAvailable},
		{Species: domain.SpeciesRabbit, Status: domain.AnimalSold},
		{Species: domain.SpeciesDog, Status: domain.AnimalAvailable},
	})
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Available)
	assert.Equal(t, 1, s.ByStatus[domain.AnimalSold])
	assert.Equal(t, 2, s.BySpecies[domain.SpeciesRabbit])
}

func TestInventoryReport(t *testing.T) {
	v := InventoryReport([]domain.InventoryItem{
		{Name: "hay", Quantity: dec("5"), LowStockThreshold: dec("5"), UnitCost: dec("2")},
		{Name: "pellets", Quantity: dec("20"), LowStockThreshold: dec("5"), UnitCost: dec("1.5")},
	})
	require.Len(t, v.Items, 2)
	assert.Equal(t, StockLow, v.Items[0].Status)
	assert.Equal(t, StockOK, v.Items[1].Status)
	assert.Equal(t, 1, v.LowStock)
	assert.True(t, v.TotalValue.Equal(dec("40")), v.TotalValue.String())
}

func TestHealthReminders(t *testing.T) {
	today := day("2024-06-15")
	records := []domain.HealthRecord{
		{RowMeta: domain.RowMeta{ID: "later"}, NextDueDate: "2024-07-01"},
		{RowMeta: domain.RowMeta{ID: "none"}},
		{RowMeta: domain.RowMeta{ID: "past"}, NextDueDate: "2024-06-01"},
		{RowMeta: domain.RowMeta{ID: "far"}, NextDueDate: "2024-12-01"},
		{RowMeta: domain.RowMeta{ID: "bad"}, NextDueDate: "soon"},
	}
	got := HealthReminders(records, today, DefaultHorizonDays)
	require.Len(t, got, 2)
	assert.Equal(t, "past", got[0].Record.ID)
	assert.Equal(t, Overdue, got[0].Dueness.Kind)
	assert.Equal(t, 14, got[0].Dueness.Days)
	assert.Equal(t, "later", got[1].Record.ID)
	assert.Equal(t, DueSoon, got[1].Dueness.Kind)
	for _, r := range got {
		assert.NotEmpty(t, r.Record.NextDueDate)
	}
}

func TestBreedingOutlook(t *testing.T) {
	today := day("2024-01-20")
	got := BreedingOutlook([]domain.BreedingRecord{
		{Species: domain.SpeciesRabbit, BreedingDate: "2024-01-01", Status: domain.BreedingConfirmed},
		{Species: domain.SpeciesRabbit, BreedingDate: "2024-01-01", ExpectedDate: "2024-01-10", Status: domain.BreedingPlanned},
		{Species: domain.SpeciesRabbit, BreedingDate: "", Status: domain.BreedingPlanned},
		{Species: domain.SpeciesDog, BreedingDate: "2023-10-01", Status: domain.BreedingBorn},
	}, today)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-02-01", got[0].Expected)
	require.NotNil(t, got[0].DaysLeft)
	assert.Equal(t, 12, *got[0].DaysLeft)
	assert.False(t, got[0].Overdue)

	assert.Equal(t, "2024-01-10", got[1].Expected)
	assert.True(t, got[1].Overdue)

	assert.Equal(t, "", got[2].Expected)
	assert.Nil(t, got[2].DaysLeft)

	assert.Equal(t, "2023-12-03", got[3].Expected)
	assert.Nil(t, got[3].DaysLeft)
}

func TestViews_Idempotent(t *testing.T) {
	today := day("2024-06-15")
	items := []domain.InventoryItem{{Quantity: dec("1"), LowStockThreshold: dec("2"), UnitCost: dec("3")}}
	health := []domain.HealthRecord{{NextDueDate: "2024-06-20"}, {NextDueDate: "2024-01-01"}}
	txs := []domain.Transaction{{Type: domain.TransactionSale, Amount: dec("7"), Status: domain.TransactionCompleted}}
	breeding := []domain.BreedingRecord{{Species: domain.SpeciesCat, BreedingDate: "2024-05-01", Status: domain.BreedingPlanned}}

	assert.Equal(t, InventoryReport(items), InventoryReport(items))
	assert.Equal(t, HealthReminders(health, today, 30), HealthReminders(health, today, 30))
	assert.Equal(t, Finances(txs), Finances(txs))
	assert.Equal(t, BreedingOutlook(breeding, today), BreedingOutlook(breeding, today))
}
