package ports

import "context"

// Join pulls a single related row into field As, matching LocalField against
// the related collection's id.
type Join struct {
	From       string
	LocalField string
	As         string
}

// Query narrows a select. The zero value selects every row in store order.
type Query struct {
	Eq     map[string]any // field -> exact value
	Joins  []Join
	SortBy string
	Desc   bool
	Limit  int
}

// RowStore is the remote row-oriented data service for one collection. Every
// call is a network round trip that can fail or be slow; failures carry a
// message suitable for showing to the user.
type RowStore[T any] interface {
	Select(ctx context.Context, q Query) ([]T, error)
	Insert(ctx context.Context, row T) (T, error)
	// Update applies patch (a row or a field map) to the row with id and
	// returns the stored result. Last write wins.
	Update(ctx context.Context, id string, patch any) (T, error)
	Delete(ctx context.Context, id string) error
}
