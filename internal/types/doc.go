// Package types holds the inbound request model shared by the HTTP layer and
// the dispatcher, with boundary validation.
package types
