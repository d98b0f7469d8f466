package quotes

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bookzoi/bookzoi/pkg/errcodes"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveQuoteOptions struct {
	ID     string
	UserID string

	// IncludeTags composes the quote's tags from the quote_tags join relation.
	IncludeTags bool
}

type ListQuotesOptions struct {
	UserID string
	BookID *string
	Search *string
}

type UpdateQuoteOptions struct {
	Columns []string

	// TagIDs replaces the quote's tag set when non-nil.
	TagIDs []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateQuote inserts the quote and its tag associations in one transaction.
func (svc *Service) CreateQuote(ctx context.Context, quote *models.Quote, tagIDs []string) error {
	now := time.Now()
	if quote.CreatedAt.IsZero() {
		quote.CreatedAt = now
	}
	quote.UpdatedAt = quote.CreatedAt

	if quote.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		quote.ID = id.String()
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(quote).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertQuoteTags(ctx, tx, quote.ID, tagIDs, quote.CreatedAt)
	})
}

func (svc *Service) RetrieveQuote(ctx context.Context, opts RetrieveQuoteOptions) (*models.Quote, error) {
	quote := &models.Quote{}

	err := svc.db.
		NewSelect().
		Model(quote).
		Where("q.id = ?", opts.ID).
		Where("q.user_id = ?", opts.UserID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Quote")
		}
		return nil, errors.WithStack(err)
	}

	// Tags is always an array on the wire, never null.
	quote.Tags = []*models.Tag{}
	if opts.IncludeTags {
		tags, err := svc.quoteTags(ctx, quote.ID)
		if err != nil {
			return nil, err
		}
		quote.Tags = tags
	}

	return quote, nil
}

func (svc *Service) ListQuotes(ctx context.Context, opts ListQuotesOptions) ([]*models.Quote, error) {
	quotes := []*models.Quote{}

	q := svc.db.
		NewSelect().
		Model(&quotes).
		Where("q.user_id = ?", opts.UserID).
		Order("q.created_at DESC")

	if opts.BookID != nil {
		q = q.Where("q.book_id = ?", *opts.BookID)
	}
	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + strings.ToLower(*opts.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("LOWER(q.content) LIKE ?", pattern).
				WhereOr("LOWER(q.chapter) LIKE ?", pattern)
		})
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, quote := range quotes {
		quote.Tags = []*models.Tag{}
	}

	return quotes, nil
}

// UpdateQuote overwrites the given columns and, when opts.TagIDs is non-nil,
// replaces the tag set wholesale. Everything runs in one transaction.
func (svc *Service) UpdateQuote(ctx context.Context, quote *models.Quote, opts UpdateQuoteOptions) error {
	now := time.Now()
	quote.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewUpdate().
			Model(quote).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if opts.TagIDs == nil {
			return nil
		}

		_, err = tx.
			NewDelete().
			Model((*models.QuoteTag)(nil)).
			Where("quote_id = ?", quote.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertQuoteTags(ctx, tx, quote.ID, opts.TagIDs, now)
	})
}

// DeleteQuote deletes a quote, its tag associations, and any connections
// that point at it.
func (svc *Service) DeleteQuote(ctx context.Context, quoteID string) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewDelete().
			Model((*models.QuoteTag)(nil)).
			Where("quote_id = ?", quoteID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.
			NewDelete().
			Model((*models.Connection)(nil)).
			Where("source_quote_id = ?", quoteID).
			WhereOr("target_quote_id = ?", quoteID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.
			NewDelete().
			Model((*models.Quote)(nil)).
			Where("id = ?", quoteID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

func (svc *Service) quoteTags(ctx context.Context, quoteID string) ([]*models.Tag, error) {
	var quoteTags []*models.QuoteTag
	err := svc.db.
		NewSelect().
		Model(&quoteTags).
		Where("qt.quote_id = ?", quoteID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(quoteTags) == 0 {
		return []*models.Tag{}, nil
	}

	tagIDs := make([]string, 0, len(quoteTags))
	for _, qt := range quoteTags {
		tagIDs = append(tagIDs, qt.TagID)
	}

	tags := []*models.Tag{}
	err = svc.db.
		NewSelect().
		Model(&tags).
		Where("t.id IN (?)", bun.In(tagIDs)).
		Order("t.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return tags, nil
}

func insertQuoteTags(ctx context.Context, tx bun.Tx, quoteID string, tagIDs []string, now time.Time) error {
	if len(tagIDs) == 0 {
		return nil
	}

	quoteTags := make([]*models.QuoteTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		quoteTags = append(quoteTags, &models.QuoteTag{
			ID:        id.String(),
			QuoteID:   quoteID,
			TagID:     tagID,
			CreatedAt: now,
		})
	}

	_, err := tx.
		NewInsert().
		Model(&quoteTags).
		Exec(ctx)
	return errors.WithStack(err)
}
