package archive

import (
	"bytes"
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/acmchapter/recruitment-api/internal/audit"
	"github.com/acmchapter/recruitment-api/internal/upload"
)

var tracer = otel.Tracer("github.com/acmchapter/recruitment-api/internal/archive")

// ArchiveSubmission uploads the raw submission payload content addressed by
// its hash and emits an audit event naming the store and object.
func ArchiveSubmission(
	ctx context.Context,
	auditContext audit.Context,
	u upload.Uploader,
	submissionID string,
	payload []byte,
) error {
	ctx, span := tracer.Start(ctx, "ArchiveSubmission")
	defer span.End()

	span.SetAttributes(attribute.String("submission.id", submissionID))

	if len(payload) == 0 {
		err := errors.New("tried to archive an empty payload")
		span.SetStatus(codes.Error, "can't archive an empty payload")
		span.RecordError(err)
		return err
	}

	buffer := bytes.NewReader(payload)

	objectName, err := upload.Hashed(ctx, u, buffer, int64(len(payload)))
	if err != nil {
		span.SetStatus(codes.Error, "failed to upload payload")
		span.RecordError(err)
		return err
	}

	identifier, err := u.StoreIdentifier(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to get identifier")
		return err
	}

	span.AddEvent("generating audit log message")
	audit.LogFileArchived(auditContext, identifier, objectName, submissionID)

	span.SetStatus(codes.Ok, "archived payload")
	return nil
}
