package errs

import "errors"

// Category markers applied by the usecase layer with Mark.
// The HTTP layer maps them to status codes with errors.Is.
var (
	ErrValidation              = errors.New("validation failed")
	ErrConflict                = errors.New("reservation conflict")
	ErrInsufficientResource    = errors.New("insufficient resource")
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
