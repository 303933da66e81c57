package canvas

import (
	"fmt"
	"strings"
)

// Screen names a canvas state.
type Screen string

const (
	ScreenInput    Screen = "input"
	ScreenLite     Screen = "input-lite"
	ScreenComplete Screen = "input-complete"
	ScreenSuccess  Screen = "success"
)

// Mode selects the form flavour served by the app.
type Mode string

const (
	// ModeWizard serves the lite/complete two-screen form.
	ModeWizard Mode = "wizard"
	// ModeSingle serves the one-screen input form.
	ModeSingle Mode = "single"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeWizard, "":
		return ModeWizard, nil
	case ModeSingle:
		return ModeSingle, nil
	default:
		return "", fmt.Errorf("unknown canvas mode %q (want %q or %q)", s, ModeWizard, ModeSingle)
	}
}

// Initial is the screen a mode starts on and falls back to.
func (m Mode) Initial() Screen {
	if m == ModeSingle {
		return ScreenInput
	}
	return ScreenLite
}

// Options tweak a rendered screen.
type Options struct {
	// Error shows the blank-feedback banner on input screens.
	Error bool
	// Message is echoed by the success screen.
	Message string
}

const (
	feedbackLabel       = "Share your feedback in your own words or what you'd like us to focus on"
	feedbackPlaceholder = "Type your feedback here..."
	blankFeedbackError  = "Please enter your feedback before sending."
)

// Render builds the canvas for a screen. Unknown screens render the lite form.
func Render(screen Screen, opts Options) Response {
	switch screen {
	case ScreenInput:
		return inputScreen(opts)
	case ScreenComplete:
		return completeScreen(opts)
	case ScreenSuccess:
		return successScreen(opts.Message)
	default:
		return liteScreen(opts)
	}
}

func inputScreen(opts Options) Response {
	components := []Component{Header("Add your feedback")}
	if opts.Error {
		components = append(components, Text(blankFeedbackError, "muted"))
	}
	components = append(components,
		Input(FieldText, feedbackLabel, feedbackPlaceholder),
		Button(ButtonSend, "Send", "primary"),
	)
	return wrap(components)
}

func liteScreen(opts Options) Response {
	components := []Component{Header("Add your feedback")}
	if opts.Error {
		components = append(components, Text(blankFeedbackError, "muted"))
	}
	components = append(components,
		TextArea(FieldFeedback, feedbackLabel, feedbackPlaceholder),
		Button(ButtonSendLite, "Send", "primary"),
		Button(ButtonSwitchToComplete, "Add more details", "secondary"),
	)
	return wrap(components)
}

func completeScreen(opts Options) Response {
	components := []Component{Header("Add detailed feedback")}
	if opts.Error {
		components = append(components, Text(blankFeedbackError, "muted"))
	}
	components = append(components,
		Input(FieldLink, "Link", "https://"),
		Input(FieldImpactedCustomers, "Impacted customers", "Company names or account ids"),
		Input(FieldTicketReference, "Ticket reference", "e.g. JIRA-123"),
		Input(FieldReadyToSend, "Ready to send?", "Yes / No"),
		TextArea(FieldFeedbackReport, "Feedback report", "Paste a longer report here..."),
		TextArea(FieldFeedback, feedbackLabel, feedbackPlaceholder),
		Button(ButtonSendComplete, "Send", "primary"),
		Button(ButtonSwitchToLite, "Back to quick feedback", "secondary"),
	)
	return wrap(components)
}

func successScreen(message string) Response {
	resp := wrap([]Component{
		Header("Message sent successfully!"),
		Text(echo(message), "paragraph"),
		Button(ButtonReset, "Send Another", "secondary"),
	})
	resp.Event = &Event{Type: "completed"}
	return resp
}

// echo quotes the submitted text without escaping it.
func echo(message string) string {
	return `You sent: "` + message + `"`
}

func wrap(components []Component) Response {
	return Response{Canvas: Canvas{Content: Content{Components: components}}}
}
