package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Connection is a directed link between two quotes owned by the same user.
type Connection struct {
	bun.BaseModel `bun:"table:connections,alias:c"`

	ID            string    `bun:",pk,nullzero" json:"id"`
	UserID        string    `bun:",nullzero" json:"user_id"`
	SourceQuoteID string    `bun:",nullzero" json:"source_quote_id"`
	TargetQuoteID string    `bun:",nullzero" json:"target_quote_id"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
