package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Context key the Time middleware plants the received-at time under.
const TimeKey = "time"

// Sets a fixed time as the authoritative time for a request being received.
// Audit events read it back through [RequestTime] so every event for one
// request carries the same timestamp.
func Time(key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, span := tracer.Start(c.Request().Context(), "Time", trace.WithAttributes(
				attribute.String("key", key),
			))
			defer span.End()

			t := time.Now()
			c.Set(key, t)

			span.AddEvent("set_time", trace.WithAttributes(
				attribute.String("time", t.String()),
			))

			span.RecordError(nil)
			span.SetStatus(codes.Ok, "set time")
			return next(c)
		}
	}
}

// RequestTime returns the received-at time planted under [TimeKey], falling
// back to the current time when the middleware is not mounted.
func RequestTime(c echo.Context) time.Time {
	if t, ok := c.Get(TimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}
