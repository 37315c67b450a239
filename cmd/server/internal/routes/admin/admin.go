package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel"
	"gorm.io/gorm"

	servermiddleware "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/routes"
	"github.com/acmchapter/recruitment-api/internal/config"
	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/session"
)

const name = "github.com/acmchapter/recruitment-api/cmd/server/internal/routes/admin"

var tracer = otel.Tracer(name)

// Handler serves the single-identity admin surface: login, session status,
// logout, and the read-only submissions dashboard.
type Handler struct {
	DB       *gorm.DB
	sessions *session.Manager
	config   *config.Config
}

func NewHandler(db *gorm.DB, cfg *config.Config, sessions *session.Manager) Handler {
	return Handler{
		DB:       db,
		sessions: sessions,
		config:   cfg,
	}
}

func (h *Handler) AddRoutes(e *echo.Echo) {
	l := logger.Logger

	authGroup := e.Group("/admin/auth")

	if h.config.RateLimit != nil && h.config.RateLimit.AdminLogin.MaxRequests > 0 {
		post := http.MethodPost

		// Mounted ahead of the handler so a denied attempt never reaches
		// credential comparison.
		authGroup.Use(
			middleware.RateLimiterWithConfig(
				routes.NewLimiter(
					h.config.RateLimit,
					"admin-login",
					h.config.RateLimit.AdminLogin,
					"Too many login attempts. Please wait.",
					&post,
				),
			),
		)
	} else {
		l.Warn("not configured to have an admin login rate limit")
	}

	authGroup.POST("/", h.Login)
	authGroup.GET("/", h.Status)
	authGroup.DELETE("/", h.Logout)

	e.GET(
		"/admin/submissions/",
		h.ListSubmissions,
		servermiddleware.AdminSession(h.sessions),
	)
	e.GET(
		"/admin/security/",
		h.SecurityStats,
		servermiddleware.AdminSession(h.sessions),
	)
}
