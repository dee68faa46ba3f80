package middleware

import (
	"context"
	"strconv"
	"time"

	"bizdirectory/cmd/internal/infrastructure/metrics"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"
)

const HeaderRateLimitRemaining = "X-RateLimit-Remaining"

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, int64, error)
}

// NewRateLimit throttles public write routes per client IP. When the limiter
// backend fails the request is let through.
func NewRateLimit(route string, limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := route + ":" + c.RealIP()
			allowed, remaining, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Warnf("rate limiter unavailable for %s: %v", route, err)
				return next(c)
			}

			c.Response().Header().Set(HeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			if !allowed {
				metrics.RateLimited.WithLabelValues(route).Inc()
				return c.JSON(apierror.TooManyRequestsError.Code(), apierror.TooManyRequestsError)
			}
			return next(c)
		}
	}
}

// NewMemoryRateLimit is the single instance fallback used when no Redis is
// configured. Counters live in process memory.
func NewMemoryRateLimit(route string, limit int, window time.Duration) echo.MiddlewareFunc {
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(limit) / window.Seconds()),
		Burst:     limit,
		ExpiresIn: window,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return route + ":" + c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			metrics.RateLimited.WithLabelValues(route).Inc()
			return c.JSON(apierror.TooManyRequestsError.Code(), apierror.TooManyRequestsError)
		},
	})
}
