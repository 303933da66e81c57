package canvas

// Button ids. The client echoes the clicked one back as component_id.
const (
	ButtonSwitchToComplete = "switch_to_complete"
	ButtonSwitchToLite     = "switch_to_lite"
	ButtonSendLite         = "send_lite_button"
	ButtonSendComplete     = "send_complete_button"
	ButtonSend             = "send_button"
	ButtonReset            = "reset_button"
)

// Field ids. The client returns field values under these keys in input_values.
const (
	FieldFeedback          = "feedback_text"
	FieldText              = "text_input"
	FieldLink              = "link"
	FieldImpactedCustomers = "impacted_customers"
	FieldTicketReference   = "ticket_reference"
	FieldReadyToSend       = "ready_to_send"
	FieldFeedbackReport    = "feedback_report"
)

// DetailFields are the optional complete-screen fields, in form order.
var DetailFields = []string{
	FieldLink,
	FieldImpactedCustomers,
	FieldTicketReference,
	FieldReadyToSend,
	FieldFeedbackReport,
}
