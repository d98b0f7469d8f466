package connections

import (
	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
)

func RegisterRoutesWithGroup(g *echo.Group, db *bun.DB) {
	h := &handler{
		connectionService: NewService(db),
	}

	g.GET("", h.list)
	g.GET("/quote/:quoteId", h.byQuote)
	g.POST("", h.create)
	g.DELETE("/:id", h.deleteConnection)
}
