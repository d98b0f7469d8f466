package tags

import (
	"net/http"

	"github.com/bookzoi/bookzoi/pkg/auth"
	"github.com/bookzoi/bookzoi/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type handler struct {
	tagService *Service
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	tags, err := h.tagService.ListTags(ctx, ListTagsOptions{
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"tags": tags}))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()

	params := CreateTagPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tag := &models.Tag{
		UserID: auth.UserID(c),
		Name:   params.Name,
		Color:  params.Color,
	}

	err := h.tagService.CreateTag(ctx, tag)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusCreated, map[string]any{"tag": tag}))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()

	params := UpdateTagPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	tag, err := h.tagService.RetrieveTag(ctx, RetrieveTagOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	tag.Name = params.Name
	tag.Color = params.Color

	err = h.tagService.UpdateTag(ctx, tag, UpdateTagOptions{
		Columns: []string{"name", "color"},
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"tag": tag}))
}

func (h *handler) deleteTag(c echo.Context) error {
	ctx := c.Request().Context()

	tag, err := h.tagService.RetrieveTag(ctx, RetrieveTagOptions{
		ID:     c.Param("id"),
		UserID: auth.UserID(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	err = h.tagService.DeleteTag(ctx, tag.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{"message": "Tag deleted successfully"}))
}
