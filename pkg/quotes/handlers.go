package quotes

import (
	"net/http"

	"github.com/bookzoi/bookzoi/pkg/auth"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	quoteService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	quotes, err := h.quoteService.ListQuotes(ctx, ListQuotesOptions{
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"quotes": quotes}))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchQuotesQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	quotes, err := h.quoteService.ListQuotes(ctx, ListQuotesOptions{
		UserID: auth.UserID(c),
		Search: &params.Query,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"quotes": quotes}))
}

func (h *handler) byBook(c echo.Context) error {
	ctx := c.Request().Context()
	bookID := c.Param("bookId")

	quotes, err := h.quoteService.ListQuotes(ctx, ListQuotesOptions{
		UserID: auth.UserID(c),
		BookID: &bookID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"quotes": quotes}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	quote, err := h.quoteService.RetrieveQuote(ctx, RetrieveQuoteOptions{
		ID:          c.Param("id"),
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"quote": quote}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateQuotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	quote := &models.Quote{
		UserID:    auth.UserID(c),
		BookID:    params.BookID,
		Content:   params.Content,
		Page:      params.Page,
		Chapter:   params.Chapter,
		Favourite: params.Favourite,
	}

	err := h.quoteService.CreateQuote(ctx, quote, params.TagIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	created, err := h.quoteService.RetrieveQuote(ctx, RetrieveQuoteOptions{
		ID:          quote.ID,
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{"quote": created}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateQuotePayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Existence and ownership are checked together, so a quote owned by
	// someone else reads as not found.
	quote, err := h.quoteService.RetrieveQuote(ctx, RetrieveQuoteOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	quote.Content = params.Content
	quote.BookID = params.BookID
	quote.Page = params.Page
	quote.Chapter = params.Chapter
	quote.Favourite = params.Favourite

	opts := UpdateQuoteOptions{
		Columns: []string{"content", "book_id", "page", "chapter", "favourite"},
	}
	if params.TagIDs != nil {
		opts.TagIDs = *params.TagIDs
		if opts.TagIDs == nil {
			opts.TagIDs = []string{}
		}
	}

	err = h.quoteService.UpdateQuote(ctx, quote, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.quoteService.RetrieveQuote(ctx, RetrieveQuoteOptions{
		ID:          quote.ID,
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"quote": updated}))
}

func (h *handler) deleteQuote(c echo.Context) error {
	ctx := c.Request().Context()

	quote, err := h.quoteService.RetrieveQuote(ctx, RetrieveQuoteOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.quoteService.DeleteQuote(ctx, quote.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"message": "Quote deleted successfully"}))
}
