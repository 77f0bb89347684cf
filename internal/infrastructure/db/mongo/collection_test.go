package mongo

import (
	"testing"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

func TestDecimalCodecRoundTrip(t *testing.T) {
	in := domain.Transaction{Type: domain.TransactionSale, Amount: decimal.RequireFromString("1234.56")}

	raw, err := bson.MarshalWithRegistry(registry, in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var check bson.M
	if err := bson.Unmarshal(raw, &check); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if _, ok := check["amount"].(primitive.Decimal128); !ok {
		t.Fatalf("expected amount stored as Decimal128, got %T", check["amount"])
	}

	var out domain.Transaction
	if err := bson.UnmarshalWithRegistry(registry, raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Amount.Equal(in.Amount) {
		t.Fatalf("expected %s, got %s", in.Amount, out.Amount)
	}
}

func TestDecimalCodecAcceptsNumbers(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"quantity": 12.5, "low_stock_threshold": int32(3), "unit_cost": "0.75"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var item domain.InventoryItem
	if err := bson.UnmarshalWithRegistry(registry, raw, &item); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !item.Quantity.Equal(decimal.RequireFromString("12.5")) ||
		!item.LowStockThreshold.Equal(decimal.NewFromInt(3)) ||
		!item.UnitCost.Equal(decimal.RequireFromString("0.75")) {
		t.Fatalf("unexpected decode: %+v", item)
	}
}

func TestToDocStripsJoinedFields(t *testing.T) {
	c := &Collection[domain.BreedingRecord]{name: "breeding_records", joinFields: []string{"mother", "father"}}

	doc, err := c.toDoc(domain.BreedingRecord{
		MotherID: "m1",
		FatherID: "f1",
		Mother:   &domain.Animal{Name: "Daisy"},
	})
	if err != nil {
		t.Fatalf("toDoc: %v", err)
	}
	if _, ok := doc["mother"]; ok {
		t.Fatalf("joined field must not be written")
	}
	if _, ok := doc["_id"]; ok {
		t.Fatalf("empty id must be omitted")
	}
	if doc["mother_id"] != "m1" {
		t.Fatalf("expected mother_id, got %v", doc["mother_id"])
	}
}

func TestBuildPipeline(t *testing.T) {
	p := buildPipeline(ports.Query{
		Eq:     map[string]any{"status": "available"},
		Joins:  []ports.Join{{From: "animals", LocalField: "animal_id", As: "animal"}},
		SortBy: "date",
		Desc:   true,
		Limit:  10,
	})
	if len(p) != 5 {
		t.Fatalf("expected match, lookup, unwind, sort, limit; got %d stages", len(p))
	}
	stages := []string{"$match", "$lookup", "$unwind", "$sort", "$limit"}
	for i, want := range stages {
		if p[i][0].Key != want {
			t.Fatalf("stage %d: expected %s, got %s", i, want, p[i][0].Key)
		}
	}

	if got := buildPipeline(ports.Query{}); len(got) != 0 {
		t.Fatalf("expected empty pipeline for zero query, got %d stages", len(got))
	}
}
