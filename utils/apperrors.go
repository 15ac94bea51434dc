package utils

import "errors"

// ErrorKind classifies the recoverable business errors the services return.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindNotFound
	KindBadRequest
	KindConflict
)

// AppError is the error type services hand to transports. Conflict errors
// from the scheduler may carry alternative slots in Details.
type AppError struct {
	Kind    ErrorKind
	Message string
	Details interface{}
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFound(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func BadRequest(msg string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: msg}
}

func Conflict(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func ConflictWithDetails(msg string, details interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: msg, Details: details}
}

func Internal(msg string) *AppError {
	return &AppError{Kind: KindInternal, Message: msg}
}

// AsAppError unwraps err into an *AppError if it holds one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
