package portal

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/routes"
	"github.com/acmchapter/recruitment-api/internal/config"
	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/session"
	"github.com/acmchapter/recruitment-api/internal/upload"
)

const name = "github.com/acmchapter/recruitment-api/cmd/server/internal/routes/portal"

var tracer = otel.Tracer(name)

// Handler serves the public application form endpoints.
type Handler struct {
	DB *gorm.DB
	// If not nil accepted submissions are archived to object storage.
	archiver upload.Uploader
	sessions *session.Manager
	config   *config.Config
}

func NewHandler(
	db *gorm.DB,
	cfg *config.Config,
	archiver upload.Uploader,
	sessions *session.Manager,
) Handler {
	return Handler{
		DB:       db,
		archiver: archiver,
		sessions: sessions,
		config:   cfg,
	}
}

func (h *Handler) AddRoutes(e *echo.Echo) {
	l := logger.Logger

	submitGroup := e.Group("/submit")
	checkGroup := e.Group("/submissions/check")

	if h.config.RateLimit != nil && h.config.RateLimit.Submit.MaxRequests > 0 {
		post := http.MethodPost

		submitGroup.Use(
			middleware.RateLimiterWithConfig(
				routes.NewLimiter(
					h.config.RateLimit,
					"submit",
					h.config.RateLimit.Submit,
					"Too many submission attempts. Please wait 5 minutes before trying again.",
					&post,
				),
			),
		)
	} else {
		l.Warn("not configured to have a submit rate limit")
	}

	if h.config.RateLimit != nil && h.config.RateLimit.Check.MaxRequests > 0 {
		checkGroup.Use(
			middleware.RateLimiterWithConfig(
				routes.NewLimiter(
					h.config.RateLimit,
					"check",
					h.config.RateLimit.Check,
					"Too many requests. Please wait.",
					nil,
				),
			),
		)
	} else {
		l.Warn("not configured to have a check rate limit")
	}

	submitGroup.POST("/", h.Submit)
	checkGroup.GET("/", h.Check)
	e.GET("/csrf/", h.CSRF)
}
