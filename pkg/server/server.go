package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bookzoi/bookzoi/pkg/auth"
	"github.com/bookzoi/bookzoi/pkg/binder"
	"github.com/bookzoi/bookzoi/pkg/books"
	"github.com/bookzoi/bookzoi/pkg/config"
	"github.com/bookzoi/bookzoi/pkg/connections"
	"github.com/bookzoi/bookzoi/pkg/errcodes"
	"github.com/bookzoi/bookzoi/pkg/quotes"
	"github.com/bookzoi/bookzoi/pkg/tags"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/health"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
	"github.com/robinjoseph08/golib/echo/v4/middleware/recovery"
	"github.com/uptrace/bun"
)

func New(cfg *config.Config, db *bun.DB) (*http.Server, error) {
	e := echo.New()

	b, err := binder.New()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	e.Binder = b

	e.Use(logger.Middleware())
	e.Use(recovery.Middleware())
	e.Use(middleware.CORS())

	health.RegisterRoutes(e)
	e.GET("/api/health", healthHandler)

	authMiddleware := auth.NewMiddleware(newVerifier(cfg))
	registerProtectedRoutes(e, db, authMiddleware)

	echo.NotFoundHandler = notFoundHandler
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler:           e,
		ReadHeaderTimeout: 3 * time.Second,
	}

	return srv, nil
}

// newVerifier picks JWT verification when a secret is configured and falls
// back to trusting the user-id header otherwise.
func newVerifier(cfg *config.Config) auth.Verifier {
	if cfg.AuthJWTSecret != "" {
		return auth.NewJWTVerifier(cfg.AuthJWTSecret)
	}
	return auth.NewHeaderVerifier()
}

// registerProtectedRoutes registers all resource routes. Every group requires
// an authenticated caller.
func registerProtectedRoutes(e *echo.Echo, db *bun.DB, authMiddleware *auth.Middleware) {
	booksGroup := e.Group("/books")
	booksGroup.Use(authMiddleware.Authenticate)
	books.RegisterRoutesWithGroup(booksGroup, db)

	tagsGroup := e.Group("/tags")
	tagsGroup.Use(authMiddleware.Authenticate)
	tags.RegisterRoutesWithGroup(tagsGroup, db)

	quotesGroup := e.Group("/quotes")
	quotesGroup.Use(authMiddleware.Authenticate)
	quotes.RegisterRoutesWithGroup(quotesGroup, db)

	connectionsGroup := e.Group("/connections")
	connectionsGroup.Use(authMiddleware.Authenticate)
	connections.RegisterRoutesWithGroup(connectionsGroup, db)
}

func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "Bookzoi API is running",
	})
}

func notFoundHandler(c echo.Context) error {
	c.SetPath("/:path")
	return errcodes.NotFound("Page")
}
