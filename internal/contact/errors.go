package contact

import "errors"

var (
	// ErrSpamDetected means the honeypot was filled in. Callers must not reveal it.
	ErrSpamDetected = errors.New("honeypot field populated")
	// ErrValidation is wrapped by *ValidationError.
	ErrValidation = errors.New("contact fields invalid")
	// ErrSubmissionInFlight is returned while the same form is still sending.
	ErrSubmissionInFlight = errors.New("submission already in progress")
	// ErrRelay wraps every failure of the outbound relay call.
	ErrRelay = errors.New("mail relay failed")
	// ErrRegistryFull means no more form instances can be tracked.
	ErrRegistryFull = errors.New("form registry full")
)
