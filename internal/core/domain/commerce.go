package domain

import "github.com/shopspring/decimal"

// InventoryItem is a consumable stock line. LowStockThreshold is configured
// per item.
type InventoryItem struct {
	RowMeta           `bson:",inline"`
	Name              string          `json:"name" bson:"name" validate:"required"`
	Category          string          `json:"category" bson:"category" validate:"required,oneof=feed bedding medicine equipment other"`
	Quantity          decimal.Decimal `json:"quantity" bson:"quantity" validate:"gte=0"`
	Unit              string          `json:"unit" bson:"unit" validate:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold" bson:"low_stock_threshold" validate:"gte=0"`
	UnitCost          decimal.Decimal `json:"unit_cost" bson:"unit_cost" validate:"gte=0"`
	SupplierID        string          `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
}

type Customer struct {
	RowMeta  `bson:",inline"`
	FullName string `json:"full_name" bson:"full_name" validate:"required"`
	Email    string `json:"email" bson:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address  string `json:"address,omitempty" bson:"address,omitempty"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Supplier struct {
	RowMeta     `bson:",inline"`
	Name        string `json:"name" bson:"name" validate:"required"`
	ContactName string `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone" bson:"phone" validate:"required"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
}

type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionIncome   TransactionType = "income"
	TransactionPurchase TransactionType = "purchase"
	TransactionExpense  TransactionType = "expense"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionPending   TransactionStatus = "pending"
	TransactionCancelled TransactionStatus = "cancelled"
)

// Transaction is a single money movement.
type Transaction struct {
	RowMeta       `bson:",inline"`
	Type          TransactionType   `json:"type" bson:"type" validate:"required,oneof=sale income purchase expense"`
	Category      string            `json:"category,omitempty" bson:"category,omitempty"`
	Amount        decimal.Decimal   `json:"amount" bson:"amount" validate:"gt=0"`
	Status        TransactionStatus `json:"status" bson:"status" validate:"required,oneof=completed pending cancelled"`
	Date          string            `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Description   string            `json:"description,omitempty" bson:"description,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty" bson:"payment_method,omitempty"`
	CustomerID    string            `json:"customer_id,omitempty" bson:"customer_id,omitempty"`
	SupplierID    string            `json:"supplier_id,omitempty" bson:"supplier_id,omitempty"`
	AnimalID      string            `json:"animal_id,omitempty" bson:"animal_id,omitempty"`
}
