package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// API versioning.
const (
	// DefaultAPIVersion is appended to base URLs that carry no API version segment.
	DefaultAPIVersion = "v2.0"

	// APISegment is the path segment all Harbor REST routes live under.
	APISegment = "/api"

	// APIVersionMarker identifies a URL that already names an API version.
	APIVersionMarker = "/api/v"

	// MinimumServerVersion is the oldest Harbor release the v2.0 API is served by.
	MinimumServerVersion = ">= 2.0.0"
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second
)

// Retry schedule.
const (
	// DefaultRetryMax bounds the attempts of the standard policy; the budget usually ends it first.
	DefaultRetryMax = 10

	// PostRetryMax allows exactly one retry for POST requests.
	PostRetryMax = 1

	// DefaultRetryWaitMin is the first backoff delay.
	DefaultRetryWaitMin = 500 * time.Millisecond

	// DefaultRetryWaitMax caps a single backoff delay.
	DefaultRetryWaitMax = 8 * time.Second

	// DefaultRetryBudget is the total time the standard policy keeps retrying.
	DefaultRetryBudget = 30 * time.Second
)

// Cache defaults.
const (
	// DefaultCacheTTL is how long a cached GET result stays valid.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheSize is the entry limit of the in-memory cache.
	DefaultCacheSize = 1000

	// DefaultNATSBucket is the JetStream KeyValue bucket used by the NATS cache.
	DefaultNATSBucket = "harbor-client-cache"
)

// HTTP header names.
const (
	HeaderAuthorization       = "Authorization"
	HeaderAccept              = "Accept"
	HeaderContentType         = "Content-Type"
	HeaderUserAgent           = "User-Agent"
	HeaderLink                = "Link"
	HeaderLocation            = "Location"
	HeaderAcceptVulnerability = "X-Accept-Vulnerabilities"
	HeaderIsResourceName      = "X-Is-Resource-Name"
)

// Media types.
const (
	// MediaTypeJSON is the default Accept and Content-Type value.
	MediaTypeJSON = "application/json"

	// MediaTypeVulnerabilityReport is the default scan report MIME type.
	MediaTypeVulnerabilityReport = "application/vnd.security.vulnerability.report; version=1.1"

	// MediaTypeHarborVulnerabilityReport is the legacy Harbor scanner adapter report MIME type.
	MediaTypeHarborVulnerabilityReport = "application/vnd.scanner.adapter.vuln.report.harbor+json; version=1.0"
)

// DefaultUserAgent identifies the client on outgoing requests.
const DefaultUserAgent = "harbor-client-go"

// API paths, relative to the versioned base URL.
const (
	PathUsers                  = "/users"
	PathUsersSearch            = "/users/search"
	PathCurrentUser            = "/users/current"
	PathCurrentUserPermissions = "/users/current/permissions"

	PathScanAllMetrics  = "/scans/all/metrics"
	PathScanAllSchedule = "/system/scanAll/schedule"
	PathScanAllStop     = "/system/scanAll/stop"

	PathProjects  = "/projects"
	PathScanners  = "/scanners"
	PathRetention = "/retentions"

	PathRetentionMetadata = "/retentions/metadatas"
	PathScannersPing      = "/scanners/ping"

	PathPing         = "/ping"
	PathHealth       = "/health"
	PathSystemInfo   = "/systeminfo"
	PathCVEAllowlist = "/system/CVEAllowlist"
	PathOIDCPing     = "/system/oidc/ping"
)
