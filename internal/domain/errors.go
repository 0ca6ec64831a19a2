package domain

import "errors"

var (
	// Journal errors
	ErrJournalNotFound     = errors.New("journal not found")
	ErrInvalidJournalState = errors.New("journal already decided")
	ErrEmptyJournal        = errors.New("journal has no entries")
	ErrTooManyEntries      = errors.New("journal exceeds maximum entry count")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidDirection    = errors.New("entry direction must be debit or credit")
	ErrCurrencyMismatch    = errors.New("journal entries must share one currency")
	ErrUnknownAccount      = errors.New("account does not exist or is not postable")

	// Directory errors
	ErrAccountNotFound = errors.New("account not found")
	ErrUnitNotFound    = errors.New("unit not found")

	// Apportionment errors
	ErrNoSchedules   = errors.New("no apportionment schedules for context")
	ErrUnknownMethod = errors.New("unknown apportionment method")
	ErrInvalidBasis  = errors.New("apportionment basis must not be negative")

	// Infrastructure errors
	ErrStorage = errors.New("storage failure")
)
