package admin

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/acmchapter/recruitment-api/internal/security"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// SecurityStats reports the trailing-day rejection counters: failed logins,
// validation failures, and store-level submission rejections, with the
// busiest client IPs. Session gating happens in middleware.
func (h *Handler) SecurityStats(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "SecurityStats")
	defer span.End()

	stats := security.Report()

	span.SetAttributes(attribute.Int("total", stats.Total))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "reported security stats")
	return c.JSON(http.StatusOK, types.SecurityResponse{
		Success: true,
		Data: types.SecurityData{
			ErrorStats:     stats,
			SecurityStatus: "SECURE",
			LastUpdated:    time.Now().UTC(),
		},
	})
}
