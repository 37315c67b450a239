package portal

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"

	"github.com/acmchapter/recruitment-api/cmd/server/internal/response"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// CSRF mints a short lived anti-forgery token for the form to echo back.
func (h *Handler) CSRF(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "CSRF")
	defer span.End()

	token, err := h.sessions.IssueCSRF()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to mint csrf token")
		return response.InternalServerError
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "minted csrf token")
	return c.JSON(http.StatusOK, types.CSRFResponse{
		Success: true,
		Token:   token,
	})
}
