// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Host operations
	OpCombineDiscs   Op = "combine discs"
	OpClassicalFixes Op = "apply classical fixes"
	OpRenumber       Op = "renumber tracks"
	OpAddComposer    Op = "add composer to lookup"
	OpAddConductor   Op = "add conductor to lookup"
	OpAddOrchestra   Op = "add orchestra to lookup"

	// Lookup table
	OpLookupOpen Op = "open lookup table"
	OpLookupList Op = "list lookup table"

	// Files
	OpTagsRead  Op = "read file tags"
	OpTagsWrite Op = "write file tags"
	OpDiscover  Op = "find music files"

	// Initialization
	OpConfigLoad Op = "load configuration"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
