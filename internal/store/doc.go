// Package store persists submitted feedback per workspace.
//
// The log is append-only: Save assigns an id and a timestamp, List returns a
// workspace's messages newest first, and nothing is ever updated or removed.
// Duplicate messages are legal.
//
// Two backends implement Store:
//   - Memory: in-process, for development and tests
//   - Postgres: the messages table via pgx
package store
