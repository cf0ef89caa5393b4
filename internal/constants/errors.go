package constants

import "errors"

// Transport errors.
var (
	ErrNoBody          = errors.New("response has no body")
	ErrNotJSON         = errors.New("response is not JSON")
	ErrUnsupportedBody = errors.New("unsupported request body type")
	ErrBaseURLRequired = errors.New("base URL is required")
)

// Cache errors.
var (
	ErrCacheKeyNotFound  = errors.New("key not found")
	ErrCacheEntryExpired = errors.New("entry expired")
	ErrNATSConnRequired  = errors.New("NATS connection is required")
)
