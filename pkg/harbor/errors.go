package harbor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openapierrors "github.com/go-openapi/errors"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
)

// APIError is one entry of the error envelope Harbor returns on failure.
type APIError struct {
	Code    string `json:"code"    yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ResponseError is the error envelope returned by the API.
type ResponseError struct {
	Errors []APIError `json:"errors"`
}

// Status error kinds. A *StatusError unwraps to exactly one of these when its
// status code has a dedicated kind.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrPreconditionFailed  = errors.New("precondition failed")
	ErrInternalServerError = errors.New("internal server error")
)

// Client-side error kinds.
var (
	ErrConfiguration      = errors.New("invalid client configuration")
	ErrMissingCredentials = fmt.Errorf("%w: must provide either username and secret or credentials", ErrConfiguration)
	ErrClient             = errors.New("harbor client error")
	ErrEmptyDeleteResult  = fmt.Errorf("%w: deletion request returned no data", ErrClient)
	ErrRetentionID        = fmt.Errorf("%w: could not convert retention ID", ErrClient)
	ErrIncompatibleServer = errors.New("incompatible Harbor server version")

	// ErrNoBody is returned when JSON was expected but the response had no
	// body. It is distinct from an empty object or array.
	ErrNoBody = constants.ErrNoBody
)

// statusKinds maps the exact status codes that have a dedicated kind.
var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusPreconditionFailed:  ErrPreconditionFailed,
	http.StatusInternalServerError: ErrInternalServerError,
}

// HTTPError describes the failed HTTP exchange behind a StatusError.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Method == "" {
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	return fmt.Sprintf("%s %s: HTTP %d %s", e.Method, e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusError is returned for every non-2xx response. It carries the status
// code, the parsed error envelope (empty when the body had none) and the
// underlying HTTP failure.
type StatusError struct {
	StatusCode int
	Errors     []APIError
	Body       []byte
	Cause      error
}

// NewStatusError builds a StatusError.
func NewStatusError(statusCode int, apiErrors []APIError, cause error) *StatusError {
	if apiErrors == nil {
		apiErrors = []APIError{}
	}

	return &StatusError{StatusCode: statusCode, Errors: apiErrors, Cause: cause}
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	var sb strings.Builder

	if kind := e.Kind(); kind != nil {
		sb.WriteString(kind.Error())
	} else {
		sb.WriteString("status error")
	}

	fmt.Fprintf(&sb, " (HTTP %d)", e.StatusCode)

	for i, apiErr := range e.Errors {
		if i == 0 {
			sb.WriteString(": ")
		} else {
			sb.WriteString("; ")
		}

		sb.WriteString(apiErr.Error())
	}

	return sb.String()
}

// Kind returns the status-specific sentinel, or nil for the generic case.
func (e *StatusError) Kind() error {
	return statusKinds[e.StatusCode]
}

// Unwrap exposes the kind sentinel and the cause to errors.Is and errors.As.
func (e *StatusError) Unwrap() []error {
	errs := make([]error, 0, 2)

	if kind := e.Kind(); kind != nil {
		errs = append(errs, kind)
	}

	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}

	return errs
}

// FirstError returns the first error or nil.
func (e *StatusError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError parses an error response from JSON.
func ParseResponseError(data []byte) (*ResponseError, error) {
	var errResp ResponseError

	err := json.Unmarshal(data, &errResp)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal response error: %w", err)
	}

	return &errResp, nil
}

// CheckStatus maps a completed response to the error taxonomy. A 404 with
// missingOK set is reported as absent rather than as an error. The error
// envelope is parsed on a best-effort basis; an unreadable body leaves
// StatusError.Errors empty and the raw bytes in StatusError.Body.
func CheckStatus(statusCode int, body []byte, missingOK bool, cause error) (bool, error) {
	if statusCode >= 200 && statusCode < 300 {
		return false, nil
	}

	if statusCode == http.StatusNotFound && missingOK {
		return true, nil
	}

	var apiErrors []APIError

	if len(bytes.TrimSpace(body)) > 0 {
		errResp, err := ParseResponseError(body)
		if err == nil {
			apiErrors = errResp.Errors
		}
	}

	if cause == nil {
		cause = &HTTPError{StatusCode: statusCode}
	}

	statusErr := NewStatusError(statusCode, apiErrors, cause)
	statusErr.Body = body

	return false, statusErr
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// StatusCode returns the HTTP status of a StatusError anywhere in err's chain, or 0.
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return 0
}

// FieldError is one offending field found while validating a model.
type FieldError struct {
	Path    string
	Message string
}

// ValidationError is returned when a payload does not satisfy a model schema.
type ValidationError struct {
	Model  string
	Fields []FieldError
	Cause  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		if field.Path == "" {
			parts = append(parts, field.Message)

			continue
		}

		parts = append(parts, field.Path+": "+field.Message)
	}

	return fmt.Sprintf("validation failed for %s: %s", e.Model, strings.Join(parts, "; "))
}

// Unwrap returns the underlying validator error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// HasField reports whether path is among the offending fields.
func (e *ValidationError) HasField(path string) bool {
	for _, field := range e.Fields {
		if field.Path == path {
			return true
		}
	}

	return false
}

// collectFieldErrors flattens a go-openapi validation result into field errors.
func collectFieldErrors(err error, prefix string, verr *ValidationError) {
	var composite *openapierrors.CompositeError
	if errors.As(err, &composite) {
		for _, inner := range composite.Errors {
			collectFieldErrors(inner, prefix, verr)
		}

		return
	}

	var validation *openapierrors.Validation
	if errors.As(err, &validation) {
		verr.Fields = append(verr.Fields, FieldError{
			Path:    joinFieldPath(prefix, validation.Name),
			Message: validation.Error(),
		})

		return
	}

	verr.Fields = append(verr.Fields, FieldError{Path: prefix, Message: err.Error()})
}

func joinFieldPath(prefix, name string) string {
	name = strings.TrimPrefix(name, ".")

	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}

// TransportError is returned once a request exhausted its retry policy
// without receiving an HTTP response.
type TransportError struct {
	Method   string
	URL      string
	Attempts int
	Err      error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s failed after %d attempt(s): %v", e.Method, e.URL, e.Attempts, e.Err)
}

// Unwrap returns the last network failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}
