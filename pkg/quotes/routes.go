package quotes

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		quoteService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/search", h.search)
	g.GET("/book/:bookId", h.byBook)
	g.GET("/:id", h.retrieve)
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.deleteQuote)
}
