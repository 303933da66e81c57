package canvas

// Kind tags a canvas component.
type Kind string

const (
	KindText     Kind = "text"
	KindInput    Kind = "input"
	KindTextArea Kind = "textarea"
	KindButton   Kind = "button"
)

// ActionSubmit posts the form back to /submit.
const ActionSubmit = "submit"

// Component is a single canvas element. Only the fields relevant to its
// Kind are set; the rest are omitted from the wire.
type Component struct {
	Type        Kind    `json:"type"`
	ID          string  `json:"id,omitempty"`
	Text        string  `json:"text,omitempty"`
	Label       string  `json:"label,omitempty"`
	Placeholder string  `json:"placeholder,omitempty"`
	Style       string  `json:"style,omitempty"`
	Align       string  `json:"align,omitempty"`
	Action      *Action `json:"action,omitempty"`
	Value       string  `json:"value,omitempty"`
}

// Action describes what a button does when clicked.
type Action struct {
	Type string `json:"type"`
}

// Content holds the ordered components of a canvas.
type Content struct {
	Components []Component `json:"components"`
}

// Canvas wraps canvas content.
type Canvas struct {
	Content Content `json:"content"`
}

// Event notifies the client that the flow has finished.
type Event struct {
	Type string `json:"type"`
}

// Response is the body returned from /initialize and /submit.
type Response struct {
	Canvas Canvas `json:"canvas"`
	Event  *Event `json:"event,omitempty"`
}

// Components returns the ordered component list.
func (r Response) Components() []Component {
	return r.Canvas.Content.Components
}

// Text builds a text component.
func Text(text, style string) Component {
	return Component{Type: KindText, Text: text, Style: style}
}

// Header builds a left-aligned header.
func Header(text string) Component {
	return Component{Type: KindText, Text: text, Style: "header", Align: "left"}
}

// Input builds a single-line input.
func Input(id, label, placeholder string) Component {
	return Component{Type: KindInput, ID: id, Label: label, Placeholder: placeholder}
}

// TextArea builds a multi-line input.
func TextArea(id, label, placeholder string) Component {
	return Component{Type: KindTextArea, ID: id, Label: label, Placeholder: placeholder}
}

// Button builds a submit button.
func Button(id, label, style string) Component {
	return Component{
		Type:   KindButton,
		ID:     id,
		Label:  label,
		Style:  style,
		Action: &Action{Type: ActionSubmit},
	}
}
