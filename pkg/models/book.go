package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	StatusRead    = "read"
	StatusReading = "reading"
	StatusToRead  = "to-read"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID              string    `bun:",pk,nullzero" json:"id"`
	UserID          string    `bun:",nullzero" json:"user_id"`
	Title           string    `bun:",nullzero" json:"title"`
	Author          *string   `json:"author,omitempty"`
	ISBN            *string   `json:"isbn,omitempty"`
	CoverImage      *string   `json:"cover_image,omitempty"`
	PublicationDate *string   `json:"publication_date,omitempty"`
	Publisher       *string   `json:"publisher,omitempty"`
	Description     *string   `json:"description,omitempty"`
	Status          string    `bun:",nullzero" json:"status"`
	Rating          *int      `json:"rating,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Tags is composed by the services from the book_tags join relation.
	Tags []*Tag `bun:"-" json:"tags"`
}
