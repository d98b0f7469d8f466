package books

import (
	"net/http"

	"github.com/bookzoi/bookzoi/pkg/auth"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	bookService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"books": books}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:          c.Param("id"),
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"book": book}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		UserID:          auth.UserID(c),
		Title:           params.Title,
		Author:          params.Author,
		ISBN:            params.ISBN,
		CoverImage:      params.CoverImage,
		PublicationDate: params.PublicationDate,
		Publisher:       params.Publisher,
		Description:     params.Description,
		Status:          params.Status,
		Rating:          params.Rating,
		Notes:           params.Notes,
	}

	err := h.bookService.CreateBook(ctx, book, params.TagIDs)
	if err != nil {
		return errors.WithStack(err)
	}

	created, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:          book.ID,
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{"book": created}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	// Existence and ownership are checked together, so a book owned by
	// someone else reads as not found.
	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	book.Title = params.Title
	book.Author = params.Author
	book.ISBN = params.ISBN
	book.CoverImage = params.CoverImage
	book.PublicationDate = params.PublicationDate
	book.Publisher = params.Publisher
	book.Description = params.Description
	book.Status = params.Status
	book.Rating = params.Rating
	book.Notes = params.Notes

	opts := UpdateBookOptions{
		Columns: []string{
			"title", "author", "isbn", "cover_image", "publication_date",
			"publisher", "description", "status", "rating", "notes",
		},
	}
	if params.TagIDs != nil {
		opts.TagIDs = *params.TagIDs
		if opts.TagIDs == nil {
			opts.TagIDs = []string{}
		}
	}

	err = h.bookService.UpdateBook(ctx, book, opts)
	if err != nil {
		return errors.WithStack(err)
	}

	updated, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:          book.ID,
		UserID:      auth.UserID(c),
		IncludeTags: true,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"book": updated}))
}

func (h *handler) deleteBook(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.bookService.DeleteBook(ctx, book.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"message": "Book deleted successfully"}))
}

func (h *handler) search(c echo.Context) error {
	ctx := c.Request().Context()

	params := SearchBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, err := h.bookService.ListBooks(ctx, ListBooksOptions{
		UserID: auth.UserID(c),
		Search: &params.Query,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"books": books}))
}

func (h *handler) byTag(c echo.Context) error {
	ctx := c.Request().Context()

	books, err := h.bookService.ListBooksByTag(ctx, c.Param("tagId"), auth.UserID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"books": books}))
}
