package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/acmchapter/recruitment-api/internal/logger"
	"github.com/acmchapter/recruitment-api/internal/types"
)

// Context identifies who an audit event is about. Fields are pointers so
// events emitted before identification (e.g. a failed login) omit them.
// ReceivedAt is the authoritative request-received time from the router's
// time middleware; every event for one request shares it.
type Context struct {
	RollNumber *string
	ClientIP   *string
	ReceivedAt *time.Time
}

func newMessage(c Context, evt EventType, disp Disposition) Message {
	ts := time.Now()
	if c.ReceivedAt != nil {
		ts = *c.ReceivedAt
	}

	return Message{
		RollNumber:    c.RollNumber,
		ClientIP:      c.ClientIP,
		LogContext:    logContext,
		SchemaVersion: schemaVersion,
		Disposition:   disp,
		Type:          evt,
		Timestamp:     types.UnixMilli(ts.UTC().UnixMilli()),
	}
}

func emit(event any, evtType EventType) {
	evtStr, err := json.Marshal(event)
	if err != nil {
		logger.Logger.Error("could not serialize audit event", "type", evtType)
		return
	}

	fmt.Println(string(evtStr))
}

// LogAdminLogin records a login attempt. The password never reaches this
// function; reason is a coarse class like "invalid_credentials".
func LogAdminLogin(c Context, username string, success bool, reason string) {
	disp := DispositionGood
	if !success {
		disp = DispositionBad
	}

	event := AdminLogin{}
	event.Message = newMessage(c, EvtAdminLogin, disp)
	event.Event.Username = username
	event.Event.Success = success
	event.Event.Reason = reason

	emit(event, EvtAdminLogin)
}

func LogAdminLogout(c Context, username string) {
	event := AdminLogin{}
	event.Message = newMessage(c, EvtAdminLogout, DispositionNeutral)
	event.Event.Username = username
	event.Event.Success = true

	emit(event, EvtAdminLogout)
}

func LogSubmissionReceived(c Context, domain string) {
	event := Submission{}
	event.Message = newMessage(c, EvtSubmissionReceived, DispositionNeutral)
	event.Event.Domain = domain

	emit(event, EvtSubmissionReceived)
}

func LogSubmissionAccepted(c Context, domain, submissionID string) {
	event := Submission{}
	event.Message = newMessage(c, EvtSubmissionAccepted, DispositionGood)
	event.Event.Domain = domain
	event.Event.SubmissionID = submissionID

	emit(event, EvtSubmissionAccepted)
}

func LogSubmissionRejected(c Context, domain, reason string) {
	event := Submission{}
	event.Message = newMessage(c, EvtSubmissionRejected, DispositionBad)
	event.Event.Domain = domain
	event.Event.Reason = reason

	emit(event, EvtSubmissionRejected)
}

func LogFileArchived(c Context, bucketName, objectName, entityID string) {
	event := FileArchived{}
	event.Message = newMessage(c, EvtFileArchived, DispositionNeutral)
	event.Event.BucketName = bucketName
	event.Event.ObjectName = objectName
	event.Event.EntityID = entityID

	emit(event, EvtFileArchived)
}
