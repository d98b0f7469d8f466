package connections

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookzoi/bookzoi/pkg/errcodes"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

// CreateConnection links two quotes. Both endpoints must belong to the
// caller; a connection to someone else's quote reads the same as a
// connection to a quote that does not exist.
func (svc *Service) CreateConnection(ctx context.Context, connection *models.Connection) error {
	count, err := svc.db.
		NewSelect().
		Model((*models.Quote)(nil)).
		Where("q.id IN (?)", bun.In([]string{connection.SourceQuoteID, connection.TargetQuoteID})).
		Where("q.user_id = ?", connection.UserID).
		Count(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if count != 2 {
		return errcodes.NotFound("Quote")
	}

	if connection.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return errors.WithStack(err)
		}
		connection.ID = id.String()
	}
	if connection.CreatedAt.IsZero() {
		connection.CreatedAt = time.Now()
	}

	_, err = svc.db.
		NewInsert().
		Model(connection).
		Returning("*").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveConnection(ctx context.Context, id, userID string) (*models.Connection, error) {
	connection := &models.Connection{}

	err := svc.db.
		NewSelect().
		Model(connection).
		Where("c.id = ?", id).
		Where("c.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Connection")
		}
		return nil, errors.WithStack(err)
	}

	return connection, nil
}

func (svc *Service) ListConnections(ctx context.Context, userID string) ([]*models.Connection, error) {
	connections := []*models.Connection{}

	err := svc.db.
		NewSelect().
		Model(&connections).
		Where("c.user_id = ?", userID).
		Order("c.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return connections, nil
}

// ListConnectionsByQuote returns connections where the quote is either
// endpoint.
func (svc *Service) ListConnectionsByQuote(ctx context.Context, quoteID, userID string) ([]*models.Connection, error) {
	connections := []*models.Connection{}

	err := svc.db.
		NewSelect().
		Model(&connections).
		Where("c.user_id = ?", userID).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				WhereOr("c.source_quote_id = ?", quoteID).
				WhereOr("c.target_quote_id = ?", quoteID)
		}).
		Order("c.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return connections, nil
}

func (svc *Service) DeleteConnection(ctx context.Context, connectionID string) error {
	_, err := svc.db.
		NewDelete().
		Model((*models.Connection)(nil)).
		Where("id = ?", connectionID).
		Exec(ctx)
	return errors.WithStack(err)
}
