package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/acmchapter/recruitment-api/internal/types"
)

// Submissions never update or delete. One row per roll number and domain,
// enforced by a unique index; the pre-insert check exists only to produce a
// friendly error message before the constraint does.
var (
	ErrDuplicateSubmission = errors.New("submission already exists for this roll number and domain")
	ErrRateExceeded        = errors.New("too many submissions in the trailing window")
)

// Rows a single roll number may insert within the trailing hour.
const (
	MaxRowsPerHour = 10
	RateWindow     = time.Hour
)

// ListLimit caps how many rows the admin read path returns in one call.
const ListLimit = 10000

type Submission struct {
	Name       string       `json:"name"`
	RollNumber string       `json:"roll_number" gorm:"index:idx_submissions_roll_domain,unique"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Domain     types.Domain `json:"domain"      gorm:"type:text;index:idx_submissions_roll_domain,unique"`
	TaskOption string       `json:"task_option"`

	ProjectTitle       string `json:"project_title"`
	ProjectDescription string `json:"project_description"`
	ProjectLink        string `json:"project_link"`
	GithubLink         string `json:"github_link"`
	AdditionalLinks    string `json:"additional_links"`
	TechnologiesUsed   string `json:"technologies_used"`
	ChallengesFaced    string `json:"challenges_faced"`
	LearningOutcomes   string `json:"learning_outcomes"`
	AdditionalComments string `json:"additional_comments"`

	CodeforcesProfile string `json:"codeforces_profile"`
	CodeforcesRating  string `json:"codeforces_rating"`
	LeetcodeProfile   string `json:"leetcode_profile"`
	LeetcodeRating    string `json:"leetcode_rating"`

	Model
}

var _ RecruitmentModel = (*Submission)(nil)

func (Submission) TableName() string {
	return "submissions"
}

func (s Submission) GetID() uuid.UUID {
	return s.ID
}

// ExistsForDomain reports whether a roll number already has a row for domain.
func ExistsForDomain(
	ctx context.Context,
	db *gorm.DB,
	rollNumber string,
	domain types.Domain,
) (bool, error) {
	ctx, span := tracer.Start(ctx, "ExistsForDomain")
	defer span.End()

	span.SetAttributes(
		attribute.String("rollNumber", rollNumber),
		attribute.String("domain", domain.String()),
	)

	return Exists[Submission](ctx, db, "roll_number = ? AND domain = ?", rollNumber, domain)
}

// CountRecent counts rows inserted for rollNumber within the trailing window.
func CountRecent(
	ctx context.Context,
	db *gorm.DB,
	rollNumber string,
	window time.Duration,
) (int64, error) {
	ctx, span := tracer.Start(ctx, "CountRecent")
	defer span.End()

	span.SetAttributes(attribute.String("rollNumber", rollNumber))

	db = db.WithContext(ctx)

	var count int64
	result := db.Model(&Submission{}).
		Where("roll_number = ? AND created_at > ?", rollNumber, time.Now().Add(-window)).
		Count(&count)
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to count recent submissions")
		return 0, fmt.Errorf("failed to count recent submissions: %w", result.Error)
	}

	span.SetAttributes(attribute.Int64("count", count))
	return count, nil
}

// CreateSubmission inserts one per-domain row after running the duplicate and
// hourly-rate guards. The unique index remains authoritative for duplicates;
// a constraint violation from the insert maps to [ErrDuplicateSubmission].
func CreateSubmission(ctx context.Context, db *gorm.DB, submission *Submission) error {
	ctx, span := tracer.Start(ctx, "CreateSubmission")
	defer span.End()

	span.SetAttributes(
		attribute.String("rollNumber", submission.RollNumber),
		attribute.String("domain", submission.Domain.String()),
	)

	exists, err := ExistsForDomain(ctx, db, submission.RollNumber, submission.Domain)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check for existing submission")
		return err
	}
	if exists {
		span.AddEvent("duplicate submission")
		span.SetStatus(codes.Error, "duplicate submission")
		return ErrDuplicateSubmission
	}

	count, err := CountRecent(ctx, db, submission.RollNumber, RateWindow)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count recent submissions")
		return err
	}
	if count >= MaxRowsPerHour {
		span.AddEvent("hourly row cap reached")
		span.SetStatus(codes.Error, "hourly row cap reached")
		return ErrRateExceeded
	}

	db = db.WithContext(ctx)

	span.AddEvent("inserting submission")
	result := db.Create(submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			span.AddEvent("unique constraint hit on insert")
			span.SetStatus(codes.Error, "duplicate submission")
			return ErrDuplicateSubmission
		}

		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to insert submission")
		return fmt.Errorf("failed to insert submission: %w", result.Error)
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "inserted submission")
	return nil
}

// ListSubmissions returns rows newest first, capped at [ListLimit].
func ListSubmissions(ctx context.Context, db *gorm.DB, limit int) ([]Submission, error) {
	ctx, span := tracer.Start(ctx, "ListSubmissions")
	defer span.End()

	if limit <= 0 || limit > ListLimit {
		limit = ListLimit
	}

	span.SetAttributes(attribute.Int("limit", limit))

	db = db.WithContext(ctx)

	var submissions []Submission
	result := db.Order("created_at DESC").Limit(limit).Find(&submissions)
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to list submissions")
		return nil, fmt.Errorf("failed to list submissions: %w", result.Error)
	}

	return submissions, nil
}

// DomainsForRollNumber returns the domains a roll number has applied under,
// newest first.
func DomainsForRollNumber(
	ctx context.Context,
	db *gorm.DB,
	rollNumber string,
) ([]types.Domain, error) {
	ctx, span := tracer.Start(ctx, "DomainsForRollNumber")
	defer span.End()

	span.SetAttributes(attribute.String("rollNumber", rollNumber))

	db = db.WithContext(ctx)

	var domains []types.Domain
	result := db.Model(&Submission{}).
		Where("roll_number = ?", rollNumber).
		Order("created_at DESC").
		Pluck("domain", &domains)
	if result.Error != nil {
		span.RecordError(result.Error)
		span.SetStatus(codes.Error, "failed to list domains for roll number")
		return nil, fmt.Errorf("failed to list domains for roll number: %w", result.Error)
	}

	return domains, nil
}
