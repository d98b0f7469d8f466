package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Quote struct {
	bun.BaseModel `bun:"table:quotes,alias:q"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	UserID    string    `bun:",nullzero" json:"user_id"`
	BookID    *string   `json:"book_id,omitempty"`
	Content   string    `bun:",nullzero" json:"content"`
	Page      *int      `json:"page,omitempty"`
	Chapter   *string   `json:"chapter,omitempty"`
	Favourite bool      `json:"favourite"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Tags is composed by the services from the quote_tags join relation.
	Tags []*Tag `bun:"-" json:"tags"`
}
