package table

import "errors"

// Errors returned by table operations.
var (
	// ErrNotInTable indicates a reference node with no enclosing cell, row
	// and table.
	ErrNotInTable = errors.New("not in a table")

	// ErrOutOfRange indicates a row or column index outside the table.
	ErrOutOfRange = errors.New("table coordinates out of range")

	// ErrInvalidOptions indicates an unusable configuration.
	ErrInvalidOptions = errors.New("invalid table options")
)
