package service

import "errors"

// BusinessError is an expected, user-facing rule violation. The message
// is what the API shows the caller.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

func NewBusinessError(message string) error {
	return &BusinessError{Message: message}
}

// ValidationError is an authentication/credential rejection. It is a
// separate kind from BusinessError so callers can tell the two apart,
// though both map to a rejected request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// ErrMissingEntryID reports an update or delete on an entry that was
// never persisted. This is a caller bug, not user input: it is never
// converted into a user-facing message and the store is not touched.
var ErrMissingEntryID = errors.New("entry has no id; only persisted entries can be updated or deleted")
