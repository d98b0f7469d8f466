package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	UserID    string    `bun:",nullzero" json:"user_id"`
	Name      string    `bun:",nullzero" json:"name"`
	Color     *string   `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type BookTag struct {
	bun.BaseModel `bun:"table:book_tags,alias:bt"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	BookID    string    `bun:",nullzero" json:"book_id"`
	TagID     string    `bun:",nullzero" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

type QuoteTag struct {
	bun.BaseModel `bun:"table:quote_tags,alias:qt"`

	ID        string    `bun:",pk,nullzero" json:"id"`
	QuoteID   string    `bun:",nullzero" json:"quote_id"`
	TagID     string    `bun:",nullzero" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
