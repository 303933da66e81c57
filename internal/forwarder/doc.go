// Package forwarder relays submitted feedback to the marketing-automation
// webhook.
//
// Payloads are normalized from the canvas request: conversation id and
// teammate identity fall back to "unknown", and optional detail fields are
// only present when the form carried a value. Delivery is a single bounded
// POST; the caller decides what to do with a failure.
package forwarder
