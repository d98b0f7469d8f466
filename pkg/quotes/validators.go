package quotes

type CreateQuotePayload struct {
	Content   string   `json:"content" validate:"required,max=10000"`
	BookID    *string  `json:"book_id"`
	Page      *int     `json:"page" validate:"omitempty,min=1"`
	Chapter   *string  `json:"chapter" validate:"omitempty,max=300"`
	Favourite bool     `json:"favourite"`
	TagIDs    []string `json:"tag_ids"`
}

type UpdateQuotePayload struct {
	Content   string  `json:"content" validate:"required,max=10000"`
	BookID    *string `json:"book_id"`
	Page      *int    `json:"page" validate:"omitempty,min=1"`
	Chapter   *string `json:"chapter" validate:"omitempty,max=300"`
	Favourite bool    `json:"favourite"`

	// TagIDs replaces the tag set when present. An empty list clears it.
	TagIDs *[]string `json:"tag_ids"`
}

type SearchQuotesQuery struct {
	Query string `query:"query" validate:"required,max=200"`
}
