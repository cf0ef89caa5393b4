package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
)

// Request represents an HTTP request to the Harbor API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    interface{}

	// MissingOK turns a 404 into an absent Response instead of an error.
	MissingOK bool
	// NoFollow disables link following for this GET.
	NoFollow bool
}

// Response represents an HTTP response from the Harbor API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	// Absent is set when a 404 was accepted through Request.MissingOK.
	Absent bool
}

// JSON returns the body as raw JSON. An absent or empty body yields
// ErrNoBody, which is distinct from an empty object or array.
func (r *Response) JSON() (json.RawMessage, error) {
	if r == nil || r.Absent {
		return nil, constants.ErrNoBody
	}

	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 {
		return nil, constants.ErrNoBody
	}

	if !json.Valid(trimmed) {
		return nil, constants.ErrNotJSON
	}

	return json.RawMessage(trimmed), nil
}

// Text returns the body as plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}

	return string(r.Body)
}

// Location returns the Location header of a create call.
func (r *Response) Location() string {
	if r == nil || r.Header == nil {
		return ""
	}

	return r.Header.Get(constants.HeaderLocation)
}

// IsEmptyObject reports whether the body is missing, blank or "{}".
func (r *Response) IsEmptyObject() bool {
	if r == nil {
		return true
	}

	trimmed := bytes.TrimSpace(r.Body)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("{}"))
}
