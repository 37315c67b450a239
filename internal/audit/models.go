package audit

import (
	"github.com/acmchapter/recruitment-api/internal/types"
)

var schemaVersion = "0.1.0"
var logContext = "audit"

type Disposition string

const (
	DispositionNeutral Disposition = "neutral"
	DispositionGood    Disposition = "good"
	DispositionBad     Disposition = "bad"
)

type EventType string

const (
	EvtAdminLogin          EventType = "admin_login"
	EvtAdminLogout         EventType = "admin_logout"
	EvtSubmissionReceived  EventType = "submission_received"
	EvtSubmissionAccepted  EventType = "submission_accepted"
	EvtSubmissionRejected  EventType = "submission_rejected"
	EvtFileArchived        EventType = "file_archived"
)

type Message struct {
	RollNumber *string `json:"roll_number"`
	ClientIP   *string `json:"client_ip"`

	LogContext    string      `json:"log_context" validate:"required"`
	SchemaVersion string      `json:"version"     validate:"required"`
	Disposition   Disposition `json:"disposition" validate:"required"`
	Type          EventType   `json:"event_type"  validate:"required"`

	Timestamp types.UnixMilli `json:"timestamp" validate:"required"`
}

type AdminLoginEvent struct {
	Username string `json:"username" validate:"required"`
	Success  bool   `json:"success"`
	Reason   string `json:"reason,omitempty"`
}

type AdminLogin struct {
	Event AdminLoginEvent `json:"event" validate:"required"`
	Message
}

type SubmissionEvent struct {
	Domain       string `json:"domain"                  validate:"required"`
	SubmissionID string `json:"submission_id,omitempty"`
	Reason       string `json:"reason,omitempty"`
}

type Submission struct {
	Event SubmissionEvent `json:"event" validate:"required"`
	Message
}

type FileArchivedEvent struct {
	BucketName string `json:"bucket_name" validate:"required"`
	ObjectName string `json:"object_name" validate:"required"`
	EntityID   string `json:"entity_id"   validate:"required"`
}

type FileArchived struct {
	Event FileArchivedEvent `json:"event" validate:"required"`
	Message
}
