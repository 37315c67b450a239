package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/models"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/response"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// ListSubmissions returns the bounded dashboard list, newest first. Session
// gating happens in middleware; there are no mutation endpoints.
func (h *Handler) ListSubmissions(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "ListSubmissions")
	defer span.End()

	submissions, err := models.ListSubmissions(ctx, h.DB, models.ListLimit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list submissions")
		return response.InternalServerError
	}

	span.SetAttributes(attribute.Int("count", len(submissions)))

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "listed submissions")
	return c.JSON(http.StatusOK, types.SubmissionsResponse{
		Success: true,
		Data:    submissions,
	})
}
