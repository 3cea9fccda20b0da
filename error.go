package watchscout

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL     = "internal"
	EINVALID      = "invalid"
	ENOTFOUND     = "not_found"
	EFETCH        = "fetch_failed"
	EMALFORMED    = "malformed_page"
	ELISTINGCOUNT = "listing_count_unavailable"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Upstream response status for EFETCH errors. Zero when the request
	// never produced a response.
	Status int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("watchscout error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// FetchFailed returns an EFETCH error carrying the upstream status.
func FetchFailed(status int, format string, args ...any) *Error {
	e := Errorf(EFETCH, format, args...)
	e.Status = status
	return e
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return their own text.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ErrorStatus returns the upstream status of an EFETCH error, or zero.
func ErrorStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}

// PageError attributes a failure to the result page it occurred on.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// ErrorPage returns the page number a failure is attributed to, or zero.
func ErrorPage(err error) int {
	var e *PageError
	if errors.As(err, &e) {
		return e.Page
	}
	return 0
}
