package tags

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

func createTestTag(t *testing.T, db *bun.DB, userID, name string) *models.Tag {
	t.Helper()

	tag := &models.Tag{UserID: userID, Name: name}
	err := NewService(db).CreateTag(context.Background(), tag)
	require.NoError(t, err)

	return tag
}

func TestCreateTag(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	color := "#ff8800"
	tag := &models.Tag{UserID: "user-1", Name: "sci-fi", Color: &color}
	err := svc.CreateTag(ctx, tag)
	require.NoError(t, err)

	assert.NotEmpty(t, tag.ID)
	assert.False(t, tag.CreatedAt.IsZero())
}

func TestListTagsOrderedByName(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	createTestTag(t, db, "user-1", "sci-fi")
	createTestTag(t, db, "user-1", "classic")
	createTestTag(t, db, "user-2", "horror")

	tags, err := svc.ListTags(ctx, ListTagsOptions{UserID: "user-1"})
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "classic", tags[0].Name)
	assert.Equal(t, "sci-fi", tags[1].Name)
}

func TestRetrieveTagScopedToOwner(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	tag := createTestTag(t, db, "user-1", "sci-fi")

	_, err := svc.RetrieveTag(ctx, RetrieveTagOptions{ID: tag.ID, UserID: "user-2"})
	require.Error(t, err)

	var errCode *errcodes.Error
	require.True(t, errors.As(err, &errCode))
	assert.Equal(t, 404, errCode.HTTPCode)
	assert.Equal(t, "Tag not found.", errCode.Message)
}

func TestUpdateTag(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	tag := createTestTag(t, db, "user-1", "sci-fi")

	tag.Name = "science fiction"
	err := svc.UpdateTag(ctx, tag, UpdateTagOptions{Columns: []string{"name", "color"}})
	require.NoError(t, err)

	updated, err := svc.RetrieveTag(ctx, RetrieveTagOptions{ID: tag.ID, UserID: "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "science fiction", updated.Name)
}

func TestDeleteTagRemovesAssociations(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	tag := createTestTag(t, db, "user-1", "sci-fi")

	book := &models.Book{UserID: "user-1", Title: "Dune", Status: models.StatusToRead}
	insertRow(t, db, book)
	quote := &models.Quote{UserID: "user-1", Content: "Fear is the mind-killer."}
	insertRow(t, db, quote)

	insertRow(t, db, &models.BookTag{BookID: book.ID, TagID: tag.ID})
	insertRow(t, db, &models.QuoteTag{QuoteID: quote.ID, TagID: tag.ID})

	require.NoError(t, svc.DeleteTag(ctx, tag.ID))

	bookTags, err := db.NewSelect().Model((*models.BookTag)(nil)).Where("tag_id = ?", tag.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, bookTags)

	quoteTags, err := db.NewSelect().Model((*models.QuoteTag)(nil)).Where("tag_id = ?", tag.ID).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, quoteTags)

	// The book and quote themselves survive.
	count, err := db.NewSelect().Model((*models.Book)(nil)).Where("id = ?", book.ID).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func insertRow(t *testing.T, db *bun.DB, model any) {
	t.Helper()

	id, err := uuid.NewRandom()
	require.NoError(t, err)

	switch m := model.(type) {
	case *models.Book:
		m.ID = id.String()
	case *models.Quote:
		m.ID = id.String()
	case *models.BookTag:
		m.ID = id.String()
	case *models.QuoteTag:
		m.ID = id.String()
	}

	_, err = db.NewInsert().Model(model).Exec(context.Background())
	require.NoError(t, err)
}
