package usecase

import "time"

const (
	// DefaultRecurrenceWindow is the trailing window examined for repeated
	// unbalanced journals by the same submitter.
	DefaultRecurrenceWindow = 30 * 24 * time.Hour

	// DefaultRecurrenceThreshold is the number of prior flagged journals
	// within the window that triggers the recurrence advisory note.
	DefaultRecurrenceThreshold = 3
)
