// Package canvas renders the form UI returned to the messenger client.
//
// Rendering is a pure function of a Screen and Options. The server keeps no
// session: which screen comes next is decided by the dispatcher from the
// component the client reports as clicked.
//
// Screens:
//   - input: single-screen legacy form (text_input + send_button)
//   - input-lite: quick feedback textarea with a switch to the detailed form
//   - input-complete: detailed form with optional context fields
//   - success: confirmation echoing the submitted text, emits "completed"
package canvas
