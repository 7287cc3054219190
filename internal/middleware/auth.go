package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	// TokenContextKey is the echo context key holding the caller's backend credential.
	TokenContextKey = "token"

	tokenCookie = "token"
	tokenHeader = "token"
)

// Token creates a middleware that resolves the backend credential for the request.
// The "token" cookie wins, then the "token" header, then fallback. Requests without
// any credential are rejected with 401.
func Token(fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := fallback
			if h := c.Request().Header.Get(tokenHeader); h != "" {
				token = h
			}
			if cookie, err := c.Cookie(tokenCookie); err == nil && cookie.Value != "" {
				token = cookie.Value
			}

			if token == "" {
				FromContext(c.Request().Context()).Warn("request without a token", "path", c.Path())
				return echo.NewHTTPError(http.StatusUnauthorized, "Not Authorized Login Again")
			}

			c.Set(TokenContextKey, token)
			return next(c)
		}
	}
}

// TokenFrom returns the credential stored by Token.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(TokenContextKey).(string)
	return token
}
