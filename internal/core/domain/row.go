package domain

import "time"

// DateLayout is the calendar-date format used by every date field on a row.
const DateLayout = "2006-01-02"

// Collection names as they exist in the row store.
const (
	CollectionAnimals         = "animals"
	CollectionBreedingRecords = "breeding_records"
	CollectionHealthRecords   = "health_records"
	CollectionInventory       = "inventory"
	CollectionCustomers       = "customers"
	CollectionSuppliers       = "suppliers"
	CollectionTransactions    = "transactions"
	CollectionFacilities      = "facilities"
	CollectionVeterinarians   = "veterinarians"
	CollectionContent         = "content_panels"
)

// RowMeta carries the fields the store owns on every row.
type RowMeta struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at,omitempty"`
}

// ParseDate parses a calendar date. Empty or malformed input reports false.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
