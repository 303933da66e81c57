package forwarder

import (
	"time"

	"github.com/bomorin-arch/intercom-webhook/internal/canvas"
	"github.com/bomorin-arch/intercom-webhook/internal/types"
)

// Unknown fills identity fields the request did not carry.
const Unknown = "unknown"

// TimestampLayout matches JavaScript's Date.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// TriggeredBy identifies the teammate who submitted the form.
type TriggeredBy struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Payload is the normalized body posted to the webhook. Detail fields are
// omitted unless the form carried a non-blank value.
type Payload struct {
	ConversationID string      `json:"conversation_id"`
	Feedback       string      `json:"feedback"`
	WorkspaceID    string      `json:"workspace_id,omitempty"`
	TriggeredBy    TriggeredBy `json:"triggered_by"`
	Timestamp      string      `json:"timestamp"`

	Link              string `json:"link,omitempty"`
	ImpactedCustomers string `json:"impacted_customers,omitempty"`
	TicketReference   string `json:"ticket_reference,omitempty"`
	ReadyToSend       string `json:"ready_to_send,omitempty"`
	FeedbackReport    string `json:"feedback_report,omitempty"`
}

// BuildPayload normalizes a submission.
func BuildPayload(req *types.Request, feedback string, now time.Time) Payload {
	p := Payload{
		ConversationID: orUnknown(req.ResolvedConversationID()),
		Feedback:       feedback,
		TriggeredBy:    TriggeredBy{ID: Unknown, Name: Unknown, Email: Unknown},
		Timestamp:      now.UTC().Format(TimestampLayout),
	}
	if req == nil {
		return p
	}

	p.WorkspaceID = req.WorkspaceID
	if req.Admin != nil {
		p.TriggeredBy = TriggeredBy{
			ID:    orUnknown(req.Admin.ID.String()),
			Name:  orUnknown(req.Admin.Name),
			Email: orUnknown(req.Admin.Email),
		}
	}
	return p
}

// WithDetails copies the complete-screen fields that are present and non-blank.
func (p Payload) WithDetails(req *types.Request) Payload {
	p.Link = detail(req, canvas.FieldLink)
	p.ImpactedCustomers = detail(req, canvas.FieldImpactedCustomers)
	p.TicketReference = detail(req, canvas.FieldTicketReference)
	p.ReadyToSend = detail(req, canvas.FieldReadyToSend)
	p.FeedbackReport = detail(req, canvas.FieldFeedbackReport)
	return p
}

func detail(req *types.Request, key string) string {
	v := req.Input(key)
	if types.IsBlank(v) {
		return ""
	}
	return v
}

func orUnknown(s string) string {
	if s == "" {
		return Unknown
	}
	return s
}
