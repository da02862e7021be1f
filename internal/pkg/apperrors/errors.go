package apperrors

import "errors"

// Generic errors mapped to HTTP status codes by the error middleware
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Subject errors
var (
	ErrSubjectNotFound   = NewNotFoundError("subject not found")
	ErrSubjectCodeExists = NewConflictError("a subject with this code already exists")
	ErrSubjectHasContent = NewConflictError("subject still has resources or questions and cannot be deleted")
)

// Content errors
var (
	ErrResourceNotFound     = NewNotFoundError("resource not found")
	ErrQuestionNotFound     = NewNotFoundError("question not found")
	ErrAnnouncementNotFound = NewNotFoundError("announcement not found")
	ErrUserNotFound         = NewNotFoundError("user not found")
)

// Statistics errors
var (
	ErrSyncInProgress = NewConflictError("a statistics sync is already running")
)

// NewNotFoundError creates a custom error wrapping ErrNotFound
func NewNotFoundError(message string) *CustomError {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewConflictError creates a custom error wrapping ErrConflict
func NewConflictError(message string) *CustomError {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a custom error wrapping ErrBadRequest
func NewBadRequestError(message string) *CustomError {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// Is reports whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying the given details, leaving shared sentinels untouched
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithCode returns a copy carrying the given code
func (e *CustomError) WithCode(code string) *CustomError {
	cp := *e
	cp.Code = code
	return &cp
}

// PublicMessage returns the message of the outermost CustomError in err's chain, if any.
func PublicMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message, true
	}
	return "", false
}
