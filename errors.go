package routedoc

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for registration and assembly.
var (
	ErrConfig   = errors.New("configuration")
	ErrAssembly = errors.New("assembly")

	ErrDuplicateRoute = errors.New("duplicate route")
	ErrRouteConflict  = errors.New("route conflict")

	ErrVersionNotFound = errors.New("version not found")
)

// configErrorf returns an error wrapping ErrConfig.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// StatusCoder is implemented by errors that carry an HTTP status code.
type StatusCoder interface {
	StatusCode() int
}

// ProblemDetail is an RFC 9457 problem details response.
//
//nolint:errname // RFC 9457 standard name
type ProblemDetail struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

// Error returns the detail message (or title if detail is empty).
func (p *ProblemDetail) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}

// StatusCode returns the HTTP status code.
func (p *ProblemDetail) StatusCode() int { return p.Status }

// HaltError stops request processing immediately. The delegate writes
// Status and Body as-is without consulting exception handlers. A halt from
// a before filter also skips the route and after filters.
type HaltError struct {
	Status int
	Body   string
}

// Error returns the body, or the status text when the body is empty.
func (e *HaltError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return http.StatusText(e.Status)
}

// StatusCode returns the HTTP status code.
func (e *HaltError) StatusCode() int { return e.Status }

// Halt returns an error that stops the request with the given status and body.
// A zero status halts with 200.
func Halt(status int, body string) error {
	if status == 0 {
		status = http.StatusOK
	}
	return &HaltError{Status: status, Body: body}
}

// Haltf is Halt with a formatted body.
func Haltf(status int, format string, args ...any) error {
	return Halt(status, fmt.Sprintf(format, args...))
}

// ErrorStatus extracts the HTTP status code from an error. Returns
// http.StatusInternalServerError if the error does not implement StatusCoder.
func ErrorStatus(err error) int {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return http.StatusInternalServerError
}
