package rocketchat

import (
	"errors"
	"fmt"
	"net/http"
)

// Error types returned by the standard library or resty (connection refused,
// DNS, TLS) are passed through unchanged. The types below cover everything
// this package decides on its own.

// HTTPError is returned when the server answers with a 5xx status, or with
// anything but 200 on calls that require it (server info). The body is not
// inspected.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("invalid http response code: %d", e.StatusCode)
}

// InvalidMethodError is returned before anything is sent when a request uses
// a method other than GET or POST.
type InvalidMethodError struct {
	Method string
}

func (e *InvalidMethodError) Error() string {
	return fmt.Sprintf("invalid http method %q: only GET and POST are supported", e.Method)
}

// JSONParseError is returned when the response body is not a JSON object.
type JSONParseError struct {
	Body string
	Err  error
}

func (e *JSONParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse response body: %v", e.Err)
	}

	return "failed to parse response body: not a JSON object"
}

func (e *JSONParseError) Unwrap() error {
	return e.Err
}

// StatusError is returned when the server understood the request but
// rejected it. Message is the human readable text from the response;
// ErrorType is the machine readable code (e.g. "error-room-not-found") and is
// empty for legacy status-shaped responses.
//
//	var statusErr *rocketchat.StatusError
//	if errors.As(err, &statusErr) {
//	    log.Printf("%s (%s)", statusErr.Message, statusErr.ErrorType)
//	}
type StatusError struct {
	Message    string
	ErrorType  string
	StatusCode int
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.ErrorType != "" {
		return e.ErrorType
	}

	return fmt.Sprintf("request rejected by server (%d %s)", e.StatusCode, http.StatusText(e.StatusCode))
}

// ArgumentError reports an argument rejected locally, before any request
// was made.
type ArgumentError struct {
	Argument string
	Reason   string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Argument)
}

// Error codes the server reports in the errorType field.
const (
	ErrTypeRoomNotFound         = "error-room-not-found"
	ErrTypeInvalidUser          = "error-invalid-user"
	ErrTypeRoomIDNotProvided    = "error-roomid-param-not-provided"
	ErrTypeRoomParamNotProvided = "error-room-param-not-provided"
	ErrTypeUserParamNotProvided = "error-user-param-not-provided"
)

// IsStatusError checks whether err is a *StatusError with the given
// errorType.
func IsStatusError(err error, errorType string) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.ErrorType == errorType
	}

	return false
}
