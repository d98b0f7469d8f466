package connections

import (
	"net/http"

	"github.com/bookzoi/bookzoi/pkg/auth"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	connectionService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	connections, err := h.connectionService.ListConnections(ctx, auth.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"connections": connections}))
}

func (h *handler) byQuote(c echo.Context) error {
	ctx := c.Request().Context()

	connections, err := h.connectionService.ListConnectionsByQuote(ctx, c.Param("quoteId"), auth.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"connections": connections}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateConnectionPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	connection := &models.Connection{
		UserID:        auth.UserID(c),
		SourceQuoteID: params.SourceQuoteID,
		TargetQuoteID: params.TargetQuoteID,
		Description:   params.Description,
	}

	err := h.connectionService.CreateConnection(ctx, connection)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{"connection": connection}))
}

func (h *handler) deleteConnection(c echo.Context) error {
	ctx := c.Request().Context()

	connection, err := h.connectionService.RetrieveConnection(ctx, c.Param("id"), auth.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.connectionService.DeleteConnection(ctx, connection.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"message": "Connection deleted successfully"}))
}
