package connections

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

	id, err := uuid.NewRandom()
	require.NoError(t, err)

	quote := &models.Quote{ID: id.String(), UserID: userID, Content: content}
	_, err = db.NewInsert().Model(quote).Exec(context.Background())
	require.NoError(t, err)

	return quote
}

func TestCreateConnection(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	source := createTestQuote(t, db, "user-1", "Fear is the mind-killer.")
	target := createTestQuote(t, db, "user-1", "He who controls the spice.")

	description := "Both about control"
	connection := &models.Connection{
		UserID:        "user-1",
		SourceQuoteID: source.ID,
		TargetQuoteID: target.ID,
		Description:   &description,
	}
	err := svc.CreateConnection(ctx, connection)
	require.NoError(t, err)
	assert.NotEmpty(t, connection.ID)
}

func TestCreateConnectionRejectsForeignQuote(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	mine := createTestQuote(t, db, "user-1", "Fear is the mind-killer.")
	theirs := createTestQuote(t, db, "user-2", "He who controls the spice.")

	connection := &models.Connection{
		UserID:        "user-1",
		SourceQuoteID: mine.ID,
		TargetQuoteID: theirs.ID,
	}
	err := svc.CreateConnection(ctx, connection)
	require.Error(t, err)

	var errCode *errcodes.Error
	require.True(t, errors.As(err, &errCode))
	assert.Equal(t, 404, errCode.HTTPCode)
}

func TestCreateConnectionRejectsMissingQuote(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	mine := createTestQuote(t, db, "user-1", "Fear is the mind-killer.")

	connection := &models.Connection{
		UserID:        "user-1",
		SourceQuoteID: mine.ID,
		TargetQuoteID: "no-such-quote",
	}
	err := svc.CreateConnection(ctx, connection)
	require.Error(t, err)

	var errCode *errcodes.Error
	require.True(t, errors.As(err, &errCode))
	assert.Equal(t, 404, errCode.HTTPCode)
}

func TestListConnectionsByQuote(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	a := createTestQuote(t, db, "user-1", "Quote A")
	b := createTestQuote(t, db, "user-1", "Quote B")
	c := createTestQuote(t, db, "user-1", "Quote C")

	ab := &models.Connection{UserID: "user-1", SourceQuoteID: a.ID, TargetQuoteID: b.ID}
	require.NoError(t, svc.CreateConnection(ctx, ab))
	ca := &models.Connection{UserID: "user-1", SourceQuoteID: c.ID, TargetQuoteID: a.ID}
	require.NoError(t, svc.CreateConnection(ctx, ca))
	bc := &models.Connection{UserID: "user-1", SourceQuoteID: b.ID, TargetQuoteID: c.ID}
	require.NoError(t, svc.CreateConnection(ctx, bc))

	// Quote A appears as source in one connection and target in another.
	connections, err := svc.ListConnectionsByQuote(ctx, a.ID, "user-1")
	require.NoError(t, err)
	require.Len(t, connections, 2)

	ids := []string{connections[0].ID, connections[1].ID}
	assert.Contains(t, ids, ab.ID)
	assert.Contains(t, ids, ca.ID)
}

func TestListConnectionsScopedToOwner(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	a := createTestQuote(t, db, "user-1", "Quote A")
	b := createTestQuote(t, db, "user-1", "Quote B")
	require.NoError(t, svc.CreateConnection(ctx, &models.Connection{UserID: "user-1", SourceQuoteID: a.ID, TargetQuoteID: b.ID}))

	connections, err := svc.ListConnections(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, connections)
}

func TestDeleteConnection(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	ctx := context.Background()
	svc := NewService(db)

	a := createTestQuote(t, db, "user-1", "Quote A")
	b := createTestQuote(t, db, "user-1", "Quote B")

	connection := &models.Connection{UserID: "user-1", SourceQuoteID: a.ID, TargetQuoteID: b.ID}
	require.NoError(t, svc.CreateConnection(ctx, connection))

	require.NoError(t, svc.DeleteConnection(ctx, connection.ID))

	_, err := svc.RetrieveConnection(ctx, connection.ID, "user-1")
	require.Error(t, err)

	var errCode *errcodes.Error
	require.True(t, errors.As(err, &errCode))
	assert.Equal(t, 404, errCode.HTTPCode)
}
