package auth

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const contextKeyUserID = "user_id"

// Middleware provides authentication middleware.
type Middleware struct {
	verifier Verifier
}

// NewMiddleware creates a new auth middleware backed by the given verifier.
func NewMiddleware(verifier Verifier) *Middleware {
	return &Middleware{
		verifier: verifier,
	}
}

// Authenticate resolves the calling user via the verifier and stores the
// user id in the request context. Requests the verifier rejects get a 401.
func (m *Middleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := m.verifier.Verify(c)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(contextKeyUserID, userID)

		return next(c)
	}
}

// UserID returns the verified user id stored by Authenticate, or the empty
// string when the request is unauthenticated.
func UserID(c echo.Context) string {
	userID, _ := c.Get(contextKeyUserID).(string)
	return userID
}
