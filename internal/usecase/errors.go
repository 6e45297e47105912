package usecase

import "errors"

// Error kinds returned by the scheduling services. Handlers map these with
// errors.Is; all validation failures are detected before any mutation.
var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidInterval      = errors.New("start time must be before end time")
	ErrInsufficientNotice   = errors.New("insufficient booking notice")
	ErrTooFarInAdvance      = errors.New("booking too far in advance")
	ErrOutsideBusinessHours = errors.New("outside business hours")
	ErrSlotConflict         = errors.New("slot unavailable")
	ErrNotFound             = errors.New("not found")
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrCapacityExceeded     = errors.New("lesson capacity exceeded")
	ErrPaymentNotConfirmed  = errors.New("payment not confirmed")
)
