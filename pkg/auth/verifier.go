package auth

import (
	"strings"

	"github.com/bookzoi/bookzoi/pkg/errcodes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderUserID is the header the client asserts its user identifier in.
const HeaderUserID = "user-id"

// Verifier resolves the calling user from a request. Implementations decide
// what counts as proof; handlers only ever see the resulting user id.
type Verifier interface {
	Verify(c echo.Context) (string, error)
}

// HeaderVerifier trusts a caller-supplied user-id header as asserted. It is
// a placeholder, not a security boundary; swap in a credential-backed
// Verifier without touching handler logic.
type HeaderVerifier struct{}

func NewHeaderVerifier() *HeaderVerifier {
	return &HeaderVerifier{}
}

func (v *HeaderVerifier) Verify(c echo.Context) (string, error) {
	userID := c.Request().Header.Get(HeaderUserID)
	if userID == "" {
		return "", errcodes.Unauthorized("Please provide a user-id in the request headers.")
	}
	return userID, nil
}

// JWTVerifier validates a bearer token signed with a shared HS256 secret and
// uses the subject claim as the user id.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	tokenString, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || tokenString == "" {
		return "", errcodes.Unauthorized("Authentication required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errcodes.Unauthorized("Invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errcodes.Unauthorized("Invalid or expired token")
	}

	return claims.Subject, nil
}
