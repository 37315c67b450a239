package portal

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	servermiddleware "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/models"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/response"
	"github.com/acmchapter/recruitment-api/internal/security"
	"github.com/acmchapter/recruitment-api/internal/types"
	"github.com/acmchapter/recruitment-api/internal/validator"
)

// Check lists the domains a roll number has already applied under, so the
// form can grey them out before a doomed submit.
func (h *Handler) Check(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Check")
	defer span.End()

	rollNumber := validator.NormalizeRollNumber(c.QueryParam("roll_number"))

	span.SetAttributes(attribute.String("roll_number", rollNumber))

	if rollNumber == "" {
		span.SetStatus(codes.Ok, "missing roll number")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("Roll number is required"),
		)
	}

	if !validator.ValidRollNumber(rollNumber) {
		span.SetStatus(codes.Ok, "malformed roll number")
		span.RecordError(nil)
		security.Record(security.Event{
			Type:     security.EvtValidationError,
			ClientIP: c.RealIP(),
			Endpoint: "/submissions/check/",
			At:       servermiddleware.RequestTime(c),
		})
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("Please enter a valid roll number (format: 23ucs123)"),
		)
	}

	domains, err := models.DomainsForRollNumber(ctx, h.DB, rollNumber)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list domains for roll number")
		return response.InternalServerError
	}

	domainNames := make([]string, 0, len(domains))
	for _, domain := range domains {
		domainNames = append(domainNames, domain.String())
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "listed submitted domains")
	return c.JSON(http.StatusOK, types.CheckResponse{
		Success: true,
		Domains: domainNames,
		Count:   len(domainNames),
	})
}
