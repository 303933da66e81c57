package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodySize bounds an inbound canvas request.
const MaxBodySize = 1 * 1024 * 1024

// ErrInvalidRequest is returned for any body that does not fit the request schema.
var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Request is the body Intercom posts to /initialize and /submit.
// Every field is optional. Only workspace_id, component_id and input_values
// are typed strictly; the identity fields are read leniently.
type Request struct {
	WorkspaceID    string          `json:"workspace_id,omitempty" validate:"max=255"`
	ConversationID FlexString      `json:"conversation_id,omitempty"`
	Conversation   *Conversation   `json:"conversation,omitempty"`
	Admin          *Actor          `json:"admin,omitempty"`
	User           *Actor          `json:"user,omitempty"`
	ComponentID    string          `json:"component_id,omitempty"`
	InputValues    map[string]any  `json:"input_values,omitempty"`
	CurrentCanvas  json.RawMessage `json:"current_canvas,omitempty"`
}

// Conversation is the conversation the canvas is shown in.
type Conversation struct {
	ID FlexString `json:"id,omitempty"`
}

// UnmarshalJSON keeps the id of an object and ignores any other shape.
func (c *Conversation) UnmarshalJSON(data []byte) error {
	*c = Conversation{}
	fields := objectFields(data)
	_ = c.ID.UnmarshalJSON(fields["id"])
	return nil
}

// Actor is a teammate or contact. Only the identifying fields are kept.
type Actor struct {
	ID    FlexString `json:"id,omitempty"`
	Name  string     `json:"name,omitempty"`
	Email string     `json:"email,omitempty"`
}

// UnmarshalJSON reads id, name and email from an object. A value that is not
// an object, or a field of an unexpected type, reads as missing.
func (a *Actor) UnmarshalJSON(data []byte) error {
	*a = Actor{}
	fields := objectFields(data)
	_ = a.ID.UnmarshalJSON(fields["id"])
	a.Name = looseString(fields["name"])
	a.Email = looseString(fields["email"])
	return nil
}

// FlexString accepts a JSON string or number. Intercom is not consistent
// about which one it sends for ids. Any other value reads as "".
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	*f = ""
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch c := data[0]; {
	case c == '"':
		*f = FlexString(looseString(data))
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if json.Unmarshal(data, &n) == nil {
			*f = FlexString(n.String())
		}
	}
	return nil
}

// String returns the underlying string.
func (f FlexString) String() string {
	return string(f)
}

func objectFields(data []byte) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		return nil
	}
	return fields
}

func looseString(data json.RawMessage) string {
	var s string
	if json.Unmarshal(data, &s) != nil {
		return ""
	}
	return s
}

// Parse decodes and validates a raw request body.
func Parse(body []byte) (*Request, error) {
	if len(body) > MaxBodySize {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidRequest, MaxBodySize)
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: body must be a JSON object", ErrInvalidRequest)
	}

	var req Request
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return &req, nil
}

// Input returns input_values[key] as text. Strings come back untouched,
// numbers and booleans are formatted, anything else is empty.
func (r *Request) Input(key string) string {
	if r == nil || r.InputValues == nil {
		return ""
	}
	switch v := r.InputValues[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// ResolvedConversationID prefers conversation.id, then conversation_id.
// It returns "" when neither is set.
func (r *Request) ResolvedConversationID() string {
	if r == nil {
		return ""
	}
	if r.Conversation != nil && r.Conversation.ID != "" {
		return r.Conversation.ID.String()
	}
	return r.ConversationID.String()
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
