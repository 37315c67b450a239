package routes

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	slogecho "github.com/samber/slog-echo"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	servermiddleware "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"
	"github.com/acmchapter/recruitment-api/internal/validator"
)

// Submission payloads are capped at 50KB; anything larger is rejected at the
// transport before binding.
const maxBodySize = "50K"

func BuildEcho(logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()

	validate := validator.Create()
	e.Validator = &validate

	e.Pre(middleware.AddTrailingSlash())

	e.Use(
		middleware.Secure(),
		middleware.BodyLimit(maxBodySize),
		otelecho.Middleware("recruitment-api"),
		slogecho.NewWithConfig(logger, slogecho.Config{}),
		servermiddleware.Time(servermiddleware.TimeKey),
	)

	e.GET("/health/", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	return e, nil
}
