package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	servermiddleware "github.com/acmchapter/recruitment-api/cmd/server/internal/middleware"
	"github.com/acmchapter/recruitment-api/cmd/server/internal/models"
	"github.com/acmchapter/recruitment-api/internal/archive"
	"github.com/acmchapter/recruitment-api/internal/audit"
	"github.com/acmchapter/recruitment-api/internal/security"
	"github.com/acmchapter/recruitment-api/internal/types"
	"github.com/acmchapter/recruitment-api/internal/validator"
)

// Per-domain repository calls get their own deadline so one slow insert
// cannot stall the rest of a multi-domain request past the client's patience.
const insertTimeout = 30 * time.Second

func (h *Handler) Submit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Submit")
	defer span.End()

	span.AddEvent("received submission request")

	var rdata types.SubmitRequest

	span.AddEvent("parsing request body")
	err := c.Bind(&rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to parse request data")
		span.RecordError(err)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError("Invalid JSON format"),
		)
	}

	span.AddEvent("validating request body")
	err = c.Validate(rdata)
	if err != nil {
		span.SetStatus(codes.Ok, "failed to validate request data")
		span.RecordError(err)
		security.Record(security.Event{
			Type:     security.EvtValidationError,
			ClientIP: c.RealIP(),
			Endpoint: "/submit/",
			At:       servermiddleware.RequestTime(c),
		})
		return echo.NewHTTPError(http.StatusBadRequest, types.ValidationError(err))
	}

	rollNumber := validator.NormalizeRollNumber(rdata.RollNumber)
	clientIP := c.RealIP()
	receivedAt := servermiddleware.RequestTime(c)
	auditContext := audit.Context{
		RollNumber: &rollNumber,
		ClientIP:   &clientIP,
		ReceivedAt: &receivedAt,
	}

	span.SetAttributes(
		attribute.String("roll_number", rollNumber),
		attribute.StringSlice("domains", rdata.Domains),
	)

	domains := make([]types.Domain, 0, len(rdata.Domains))
	hasCompetitive := false
	hasOther := false
	for _, raw := range rdata.Domains {
		domain := types.Domain(raw)
		if domain == types.DomainCompetitiveProgramming {
			hasCompetitive = true
		} else {
			hasOther = true
		}
		domains = append(domains, domain)
	}

	span.AddEvent("checking domain-conditional fields")
	if hasCompetitive &&
		strings.TrimSpace(rdata.CodeforcesProfile) == "" &&
		strings.TrimSpace(rdata.LeetcodeProfile) == "" {
		span.SetStatus(codes.Ok, "missing coding profile")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError(
				"At least one coding profile (Codeforces or LeetCode) is required for Competitive Programming domain",
			),
		)
	}

	if hasOther && strings.TrimSpace(rdata.ProjectTitle) == "" {
		span.SetStatus(codes.Ok, "missing project title")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError(
				"Project title is required for non-competitive programming domains",
			),
		)
	}

	// Free text is sanitized once; the per-domain rows share the cleaned
	// values.
	shared := models.Submission{
		Name:       validator.SanitizeText(rdata.Name),
		RollNumber: rollNumber,
		Email:      validator.NormalizeEmail(rdata.Email),
		Phone:      validator.SanitizeText(rdata.Phone),

		ProjectTitle:       validator.SanitizeText(rdata.ProjectTitle),
		ProjectDescription: validator.SanitizeText(rdata.ProjectDescription),
		ProjectLink:        validator.SanitizeText(rdata.ProjectLink),
		GithubLink:         validator.SanitizeText(rdata.GithubLink),
		AdditionalLinks:    validator.SanitizeText(rdata.AdditionalLinks),
		TechnologiesUsed:   validator.SanitizeText(rdata.TechnologiesUsed),
		ChallengesFaced:    validator.SanitizeText(rdata.ChallengesFaced),
		LearningOutcomes:   validator.SanitizeText(rdata.LearningOutcomes),
		AdditionalComments: validator.SanitizeText(rdata.AdditionalComments),

		CodeforcesProfile: validator.SanitizeText(rdata.CodeforcesProfile),
		CodeforcesRating:  validator.SanitizeText(rdata.CodeforcesRating),
		LeetcodeProfile:   validator.SanitizeText(rdata.LeetcodeProfile),
		LeetcodeRating:    validator.SanitizeText(rdata.LeetcodeRating),
	}

	results := make([]any, 0, len(domains))
	domainErrors := make([]string, 0)

	for _, domain := range domains {
		audit.LogSubmissionReceived(auditContext, domain.String())

		row := shared
		row.Domain = domain
		row.TaskOption = validator.SanitizeText(rdata.TaskOptions[domain.String()])
		if domain == types.DomainCompetitiveProgramming {
			row.ProjectTitle = types.CompetitiveProgrammingTitle
		}

		insertCtx, cancel := context.WithTimeout(ctx, insertTimeout)
		err = models.CreateSubmission(insertCtx, h.DB, &row)
		cancel()

		switch {
		case err == nil:
			audit.LogSubmissionAccepted(auditContext, domain.String(), row.ID.String())
			h.archiveRow(ctx, auditContext, &row)
			results = append(results, row)
		case errors.Is(err, models.ErrDuplicateSubmission):
			audit.LogSubmissionRejected(auditContext, domain.String(), "duplicate")
			domainErrors = append(domainErrors, fmt.Sprintf(
				"%s: You have already submitted for %s domain. Each domain can only be submitted once.",
				domain, domain,
			))
		case errors.Is(err, models.ErrRateExceeded):
			audit.LogSubmissionRejected(auditContext, domain.String(), "rate_exceeded")
			domainErrors = append(domainErrors, fmt.Sprintf(
				"%s: Too many submissions in the last hour. Please wait.",
				domain,
			))
		default:
			span.RecordError(err)
			audit.LogSubmissionRejected(auditContext, domain.String(), "database_error")
			domainErrors = append(domainErrors, fmt.Sprintf(
				"%s: Failed to submit. Please try again.",
				domain,
			))
		}

		if err != nil {
			security.Record(security.Event{
				Type:     security.EvtSubmissionRejected,
				ClientIP: clientIP,
				Endpoint: "/submit/",
				At:       receivedAt,
			})
		}
	}

	span.SetAttributes(
		attribute.Int("inserted", len(results)),
		attribute.Int("failed", len(domainErrors)),
	)

	// Partial success stays success: already-inserted domains are never
	// rolled back.
	if len(results) == 0 {
		span.SetStatus(codes.Ok, "no domains inserted")
		span.RecordError(nil)
		return echo.NewHTTPError(
			http.StatusBadRequest,
			types.StringError(strings.Join(domainErrors, ", ")),
		)
	}

	message := fmt.Sprintf("All %d domain(s) submitted successfully!", len(results))
	if len(domainErrors) > 0 {
		message = fmt.Sprintf(
			"Partial success: %d domain(s) submitted successfully. Errors: %s",
			len(results),
			strings.Join(domainErrors, ", "),
		)
	}

	resp := types.SubmitResponse{
		Success: true,
		Message: message,
		Data:    results,
	}
	if len(domainErrors) > 0 {
		resp.Errors = domainErrors
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "processed submission")
	return c.JSON(http.StatusOK, resp)
}

// archiveRow uploads the accepted row to object storage when archiving is
// configured. Archive failures only log; the row is already durable.
func (h *Handler) archiveRow(
	ctx context.Context,
	auditContext audit.Context,
	row *models.Submission,
) {
	if h.archiver == nil {
		return
	}

	ctx, span := tracer.Start(ctx, "archiveRow")
	defer span.End()

	payload, err := json.Marshal(row)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize row for archiving")
		return
	}

	err = archive.ArchiveSubmission(ctx, auditContext, h.archiver, row.ID.String(), payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to archive row")
		return
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "archived row")
}
