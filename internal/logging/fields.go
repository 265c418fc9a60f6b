// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"

	// Parsing fields.
	FieldBytes  = "bytes"
	FieldBlocks = "blocks"
	FieldReason = "reason"

	// Edit fields.
	FieldEditStart  = "edit_start"
	FieldEditOldEnd = "edit_old_end"
	FieldEditNewEnd = "edit_new_end"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
