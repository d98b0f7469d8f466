package books

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

type RetrieveBookOptions struct {
	ID     string
	UserID string

	// IncludeTags composes the book's tags from the book_tags join relation.
	IncludeTags bool
}

type ListBooksOptions struct {
	UserID string
	Search *string
}

type UpdateBookOptions struct {
	Columns []string

	// TagIDs replaces the book's tag set when non-nil. An empty non-nil
	// slice clears all associations.
	TagIDs []string
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateBook inserts the book and its tag associations in one transaction.
func (svc *Service) CreateBook(ctx context.Context, book *models.Book, tagIDs []string) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	if book.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		book.ID = id.String()
	}
	if book.Status == "" {
		book.Status = models.StatusToRead
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewInsert().
			Model(book).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookTags(ctx, tx, book.ID, tagIDs, book.CreatedAt)
	})
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Where("b.id = ?", opts.ID).
		Where("b.user_id = ?", opts.UserID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	// Tags is always an array on the wire, never null.
	book.Tags = []*models.Tag{}
	if opts.IncludeTags {
		tags, err := svc.bookTags(ctx, book.ID)
		if err != nil {
			return nil, err
		}
		book.Tags = tags
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.Book, error) {
	books := []*models.Book{}

	q := svc.db.
		NewSelect().
		Model(&books).
		Where("b.user_id = ?", opts.UserID).
		Order("b.created_at DESC")

	if opts.Search != nil && *opts.Search != "" {
		pattern := "%" + strings.ToLower(*opts.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("LOWER(b.title) LIKE ?", pattern).
				WhereOr("LOWER(b.author) LIKE ?", pattern).
				WhereOr("LOWER(b.description) LIKE ?", pattern)
		})
	}

	err := q.Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		book.Tags = []*models.Tag{}
	}

	return books, nil
}

// ListBooksByTag returns the caller's books associated with the tag. The
// join relation is read first so a tag with no associations short-circuits
// without a books query.
func (svc *Service) ListBooksByTag(ctx context.Context, tagID, userID string) ([]*models.Book, error) {
	var bookTags []*models.BookTag
	err := svc.db.
		NewSelect().
		Model(&bookTags).
		Where("bt.tag_id = ?", tagID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bookTags) == 0 {
		return []*models.Book{}, nil
	}

	bookIDs := make([]string, 0, len(bookTags))
	for _, bt := range bookTags {
		bookIDs = append(bookIDs, bt.BookID)
	}

	books := []*models.Book{}
	err = svc.db.
		NewSelect().
		Model(&books).
		Where("b.id IN (?)", bun.In(bookIDs)).
		Where("b.user_id = ?", userID).
		Order("b.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		book.Tags = []*models.Tag{}
	}

	return books, nil
}

// UpdateBook overwrites the given columns and, when opts.TagIDs is non-nil,
// replaces the tag set wholesale. Everything runs in one transaction.
func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	now := time.Now()
	book.UpdatedAt = now
	columns := append(opts.Columns, "updated_at")

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewUpdate().
			Model(book).
			Column(columns...).
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		if opts.TagIDs == nil {
			return nil
		}

		// Replace the whole tag set, no partial diffing.
		_, err = tx.
			NewDelete().
			Model((*models.BookTag)(nil)).
			Where("book_id = ?", book.ID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		return insertBookTags(ctx, tx, book.ID, opts.TagIDs, now)
	})
}

// DeleteBook deletes a book and its tag associations. The schema cascades,
// but be explicit.
func (svc *Service) DeleteBook(ctx context.Context, bookID string) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.
			NewDelete().
			Model((*models.BookTag)(nil)).
			Where("book_id = ?", bookID).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		_, err = tx.
			NewDelete().
			Model((*models.Book)(nil)).
			Where("id = ?", bookID).
			Exec(ctx)
		return errors.WithStack(err)
	})
}

func (svc *Service) bookTags(ctx context.Context, bookID string) ([]*models.Tag, error) {
	var bookTags []*models.BookTag
	err := svc.db.
		NewSelect().
		Model(&bookTags).
		Where("bt.book_id = ?", bookID).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if len(bookTags) == 0 {
		return []*models.Tag{}, nil
	}

	tagIDs := make([]string, 0, len(bookTags))
	for _, bt := range bookTags {
		tagIDs = append(tagIDs, bt.TagID)
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

func insertBookTags(ctx context.Context, tx bun.Tx, bookID string, tagIDs []string, now time.Time) error {
	if len(tagIDs) == 0 {
		return nil
	}

	bookTags := make([]*models.BookTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		bookTags = append(bookTags, &models.BookTag{
			ID:        id.String(),
			BookID:    bookID,
			TagID:     tagID,
			CreatedAt: now,
		})
	}

	_, err := tx.
		NewInsert().
		Model(&bookTags).
		Exec(ctx)
	return errors.WithStack(err)
}
