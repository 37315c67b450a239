package middleware

import (
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/response"
	"github.com/acmchapter/recruitment-api/internal/session"
)

const name string = "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"

var tracer = otel.Tracer(name)

// AdminSession gates a route on a valid admin session cookie. The token is
// stateless so a missing, expired, or tampered cookie all look the same: 401.
func AdminSession(manager *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, span := tracer.Start(c.Request().Context(), "AdminSession")
			defer span.End()

			cookie, err := c.Cookie(session.CookieName)
			if err != nil {
				span.AddEvent("no session cookie")
				span.SetStatus(codes.Error, "no session cookie")
				return response.UnauthorizedError
			}

			if !manager.ValidateSession(cookie.Value) {
				span.AddEvent("invalid session token")
				span.SetStatus(codes.Error, "invalid session token")
				return response.UnauthorizedError
			}

			c.Set("admin", true)

			span.SetAttributes(attribute.Bool("authenticated", true))

			span.RecordError(nil)
			span.SetStatus(codes.Ok, "validated session")
			return next(c)
		}
	}
}
