package entities

import "errors"

// Domain errors
var (
	// Meeting errors
	ErrMeetingNotFound    = errors.New("meeting not found")
	ErrInvalidSource      = errors.New("invalid meeting source")
	ErrInvalidMeetingDate = errors.New("invalid meeting date")
	ErrMissingSourceID    = errors.New("missing source id")

	// Ledger errors
	ErrLedgerNotFound = errors.New("ledger not found")
	ErrLedgerConflict = errors.New("ledger version conflict")

	// Contact errors
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidScope    = errors.New("invalid opportunity scope")

	// Generic errors
	ErrInvalidRequest = errors.New("invalid request")
)
