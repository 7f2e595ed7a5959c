// SPDX-License-Identifier: MIT

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID    = "run_id"
	FieldChannel  = "channel"
	FieldFeedID   = "feed_id"
	FieldProgram  = "program_id"
	FieldInstance = "instance"

	// Process / pipeline fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldDay       = "day"
	FieldDayOffset = "day_offset"

	// Counts
	FieldPrograms = "programs"
	FieldChannels = "channels"
	FieldMissing  = "missing"
)
