package domain

// ContentPanel is one block of the public site. Body is stored opaquely.
type ContentPanel struct {
	RowMeta   `bson:",inline"`
	Slug      string         `json:"slug" bson:"slug" validate:"required,max=64"`
	Title     string         `json:"title" bson:"title" validate:"required"`
	Body      map[string]any `json:"body,omitempty" bson:"body,omitempty"`
	Published bool           `json:"published" bson:"published"`
	SortOrder int            `json:"sort_order" bson:"sort_order"`
}
