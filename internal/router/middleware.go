package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"contactapp/internal/handler"
)

// banIPs rejects requests from a fixed deny list before any other handling.
func banIPs(banned []string) echo.MiddlewareFunc {
	denied := make(map[string]struct{}, len(banned))
	for _, ip := range banned {
		denied[ip] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := denied[c.RealIP()]; ok {
				return echo.NewHTTPError(http.StatusForbidden, "You are banned from accessing this resource.")
			}
			return next(c)
		}
	}
}

// rateLimit allows 5 requests per minute per identity. Authenticated requests
// are keyed by user id, anonymous ones by remote address.
func rateLimit() echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(5.0 / 60.0),
			Burst:     5,
			ExpiresIn: 3 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if user, ok := handler.CurrentUser(c); ok {
				return fmt.Sprintf("user:%d", user.ID), nil
			}
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests. Please try again later")
		},
	})
}
