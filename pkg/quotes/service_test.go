package quotes

import (
	"context"
	"database/sql"
	"testing"

	"github.com/bookzoi/bookzoi/pkg/errcodes"
	"github.com/bookzoi/bookzoi/pkg/migrations"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func createTestQuote(t *testing.T, db *bun.DB, userID, content string) *models.Quote {
	t.Helper()

	quote := &models.Quote{UserID: userID, Content: content}
	err := NewService(db).CreateQuote(context.Background(), quote, nil)
	require.NoError(t, err)

	return quote
}

func createTestTag(t *testing.T, db *bun.DB, userID, name string) *models.Tag {
	t.Helper()

	id, err := uuid.NewRandom()
	require.NoError(t, err)

	tag := &models.Tag{ID: id.String(), UserID: userID, Name: name}
	_, err = db.NewInsert().Model(tag).Exec(context.Background())
	require.NoError(t, err)

	return tag
}

func TestCreateQuoteWithTags(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	tag := createTestTag(t, db, "user-1", "wisdom")

	quote := &models.Quote{UserID: "user-1", Content: "Fear is the mind-killer."}
	err := svc.CreateQuote(ctx, quote, []string{tag.ID})
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)

	retrieved, err := svc.RetrieveQuote(ctx, RetrieveQuoteOptions{ID: quote.ID, UserID: "user-1", IncludeTags: true})
	require.NoError(t, err)
	require.Len(t, retrieved.Tags, 1)
	assert.Equal(t, "wisdom", retrieved.Tags[0].Name)
}

func TestRetrieveQuoteScopedToOwner(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	quote := createTestQuote(t, db, "user-1", "Fear is the mind-killer.")

	_, err := svc.RetrieveQuote(ctx, RetrieveQuoteOptions{ID: quote.ID, UserID: "user-2"})
	require.Error(t, err)

	var errCode *errcodes.Error
	require.True(t, errors.As(err, &errCode))
	assert.Equal(t, 404, errCode.HTTPCode)
	assert.Equal(t, "Quote not found.", errCode.Message)
}

func TestListQuotesByBook(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	bookID, err := uuid.NewRandom()
	require.NoError(t, err)
	book := &models.Book{ID: bookID.String(), UserID: "user-1", Title: "Dune", Status: models.StatusToRead}
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)

	inBook := &models.Quote{UserID: "user-1", BookID: &book.ID, Content: "Fear is the mind-killer."}
	require.NoError(t, svc.CreateQuote(ctx, inBook, nil))
	createTestQuote(t, db, "user-1", "Unattached quote.")

	quotes, err := svc.ListQuotes(ctx, ListQuotesOptions{UserID: "user-1", BookID: &book.ID})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, inBook.ID, quotes[0].ID)
}

func TestListQuotesSearchMatchesContentAndChapter(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	chapter := "Arrakis Awakening"
	require.NoError(t, svc.CreateQuote(ctx, &models.Quote{UserID: "user-1", Content: "Fear is the mind-killer."}, nil))
	require.NoError(t, svc.CreateQuote(ctx, &models.Quote{UserID: "user-1", Content: "He who controls the spice.", Chapter: &chapter}, nil))
	require.NoError(t, svc.CreateQuote(ctx, &models.Quote{UserID: "user-2", Content: "Fear nothing."}, nil))

	search := "FEAR"
	quotes, err := svc.ListQuotes(ctx, ListQuotesOptions{UserID: "user-1", Search: &search})
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	search = "arrakis"
	quotes, err = svc.ListQuotes(ctx, ListQuotesOptions{UserID: "user-1", Search: &search})
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "He who controls the spice.", quotes[0].Content)
}

func TestUpdateQuoteReplacesTagSet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	wisdom := createTestTag(t, db, "user-1", "wisdom")
	fear := createTestTag(t, db, "user-1", "fear")

	quote := &models.Quote{UserID: "user-1", Content: "Fear is the mind-killer."}
	require.NoError(t, svc.CreateQuote(ctx, quote, []string{wisdom.ID}))

	err := svc.UpdateQuote(ctx, quote, UpdateQuoteOptions{
		Columns: []string{"content"},
		TagIDs:  []string{fear.ID},
	})
	require.NoError(t, err)

	retrieved, err := svc.RetrieveQuote(ctx, RetrieveQuoteOptions{ID: quote.ID, UserID: "user-1", IncludeTags: true})
	require.NoError(t, err)
	require.Len(t, retrieved.Tags, 1)
	assert.Equal(t, fear.ID, retrieved.Tags[0].ID)
}

func TestDeleteQuoteRemovesConnections(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	source := createTestQuote(t, db, "user-1", "Fear is the mind-killer.")
	target := createTestQuote(t, db, "user-1", "He who controls the spice.")

	connID, err := uuid.NewRandom()
	require.NoError(t, err)
	connection := &models.Connection{
		ID:            connID.String(),
		UserID:        "user-1",
		SourceQuoteID: source.ID,
		TargetQuoteID: target.ID,
	}
	_, err = db.NewInsert().Model(connection).Exec(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteQuote(ctx, target.ID))

	count, err := db.NewSelect().
		Model((*models.Connection)(nil)).
		Where("source_quote_id = ?", source.ID).
		WhereOr("target_quote_id = ?", target.ID).
		Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The other quote survives.
	_, err = svc.RetrieveQuote(ctx, RetrieveQuoteOptions{ID: source.ID, UserID: "user-1"})
	require.NoError(t, err)
}
