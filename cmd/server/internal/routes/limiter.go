package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/ratelimit"
	"github.com/acmchapter/recruitment-api/internal/config"
	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// Limiter keys are endpoint-prefixed client IPs so one endpoint's window
// never spends another's budget. Truncated to keep hostile header values
// from inflating store keys.
const maxIdentifierLen = 64

// NewLimiter builds a rate limiter middleware config for one endpoint window.
// The store comes from configuration: in-process fixed-window counters for a
// single instance, redis when counters must be shared. Store errors fail
// open inside the store itself; the limiter is an anti-abuse heuristic, not
// a security boundary.
func NewLimiter(
	cfg *config.RateLimitConfig,
	limiterKey string,
	window config.RateLimitWindow,
	denyMessage string,
	onlyMethod *string,
) middleware.RateLimiterConfig {
	l := logger.Logger
	var store middleware.RateLimiterStore

	switch cfg.Store {
	case "redis":
		redisAddr := cfg.RedisHost + ":6379"
		l.Debug("Setting up rate limiter with Redis", "redis", redisAddr)
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})

		store = ratelimit.NewRedisLimitStore(ratelimit.RedisLimiterConfig{
			RedisClient: rdb,
			LimiterKey:  limiterKey,
			MaxRequests: int64(window.MaxRequests),
			Window:      window.Window,
			FailOpen:    cfg.FailOpen,
		})
	default:
		l.Debug("Setting up in-memory rate limiter", "key", limiterKey)
		store = ratelimit.NewMemoryLimiterStore(ratelimit.MemoryLimiterConfig{
			MaxRequests: int64(window.MaxRequests),
			Window:      window.Window,
		})
	}

	skipper := middleware.DefaultSkipper
	if onlyMethod != nil {
		skipper = func(c echo.Context) bool {
			return c.Request().Method != *onlyMethod
		}
	}

	return middleware.RateLimiterConfig{
		Skipper: skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			identifier := limiterKey + "-" + c.RealIP()
			if len(identifier) > maxIdentifierLen {
				identifier = identifier[:maxIdentifierLen]
			}
			return identifier, nil
		},
		ErrorHandler: func(context echo.Context, _ error) error {
			return context.JSON(http.StatusForbidden, nil)
		},
		DenyHandler: func(context echo.Context, _ string, _ error) error {
			return context.JSON(http.StatusTooManyRequests, types.StringError(denyMessage))
		},
	}
}
