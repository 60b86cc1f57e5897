// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// UnreadablePDFError reports that an input byte stream is not a parseable PDF
// or carries no recoverable text layer. The extractor returns it instead of
// partial output.
type UnreadablePDFError struct {
	// Reason describes what made the document unreadable.
	Reason string

	// Err is the underlying parser error, if any.
	Err error
}

func (e *UnreadablePDFError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable PDF: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("unreadable PDF: %s", e.Reason)
}

func (e *UnreadablePDFError) Unwrap() error { return e.Err }

// InvalidScheduleError reports that generation input violates the schedule
// data model: a cycle in the table tree, a malformed attribute map, or a
// missing required field. It is raised before any layout work begins.
type InvalidScheduleError struct {
	// Table names the offending schedule table, if known.
	Table string

	// Reason describes the violated constraint.
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("invalid schedule: table %q: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("invalid schedule: %s", e.Reason)
}

// ConfigurationError reports a page or layout configuration value outside the
// supported range, such as a non-positive max-rows-per-page.
type ConfigurationError struct {
	// Field is the offending configuration field.
	Field string

	// Reason describes the violated range.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}
