package books

type CreateBookPayload struct {
	Title           string   `json:"title" validate:"required,max=500"`
	Author          *string  `json:"author,omitempty" validate:"omitempty,max=300"`
	ISBN            *string  `json:"isbn,omitempty" validate:"omitempty,max=32"`
	CoverImage      *string  `json:"cover_image,omitempty" validate:"omitempty,max=2000"`
	PublicationDate *string  `json:"publication_date,omitempty" validate:"omitempty,date"`
	Publisher       *string  `json:"publisher,omitempty" validate:"omitempty,max=300"`
	Description     *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status          string   `json:"status,omitempty" default:"to-read" validate:"oneof=read reading to-read"`
	Rating          *int     `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Notes           *string  `json:"notes,omitempty" validate:"omitempty,max=10000"`
	TagIDs          []string `json:"tag_ids,omitempty" validate:"omitempty,dive,max=64"`
}

type UpdateBookPayload struct {
	Title           string  `json:"title" validate:"required,max=500"`
	Author          *string `json:"author,omitempty" validate:"omitempty,max=300"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,max=32"`
	CoverImage      *string `json:"cover_image,omitempty" validate:"omitempty,max=2000"`
	PublicationDate *string `json:"publication_date,omitempty" validate:"omitempty,date"`
	Publisher       *string `json:"publisher,omitempty" validate:"omitempty,max=300"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Status          string  `json:"status,omitempty" default:"to-read" validate:"oneof=read reading to-read"`
	Rating          *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Notes           *string `json:"notes,omitempty" validate:"omitempty,max=10000"`

	// TagIDs replaces the tag set when present; an empty list clears it.
	TagIDs *[]string `json:"tag_ids,omitempty" validate:"omitempty,dive,max=64"`
}

type SearchBooksQuery struct {
	Query string `query:"query" json:"query" validate:"required,max=200"`
}
