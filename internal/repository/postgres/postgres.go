// Package postgres implements the row-store repositories over
// database/sql with the lib/pq driver. Each aggregate gets its own repo
// struct; all queries use $n placeholders and wrap failures with context.
package postgres

import "errors"

// ErrNotFound is returned when a requested record does not exist.
// Handlers map it to a 404.
var ErrNotFound = errors.New("record not found")
