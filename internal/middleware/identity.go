package middleware

// identity.go holds helpers shared by the rate limiter and the cache:
// a best-effort user identifier for building keys. Anonymous traffic
// shares the "anon" identity and is keyed by IP instead.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or
// "anon" when the request carries no usable identity. JWTAuth stores
// the raw "sub" claim, which arrives as a float64 from the JSON
// decoder.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "anon"
}
