package harbor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// UsersClient covers the user endpoints.
type UsersClient interface {
	SearchByUsername(ctx context.Context, username string, opts *ListOptions) ([]UserSearchRespItem, error)
	List(ctx context.Context, opts *ListOptions) ([]UserResp, error)
	Current(ctx context.Context) (*UserResp, error)
	CurrentPermissions(ctx context.Context, scope string, relative bool) ([]Permission, error)
}

// ScanAllClient covers the system-wide scan job.
type ScanAllClient interface {
	Metrics(ctx context.Context) (*Stats, error)
	GetSchedule(ctx context.Context) (*Schedule, error)
	CreateSchedule(ctx context.Context, schedule *Schedule) (string, error)
	UpdateSchedule(ctx context.Context, schedule *Schedule) error
	Stop(ctx context.Context) error
}

// ScansClient covers scans of single artifacts.
type ScansClient interface {
	ScanArtifact(ctx context.Context, project, repository, reference string) error
	GetReportLog(ctx context.Context, project, repository, reference, reportID string) (string, error)
	StopScan(ctx context.Context, project, repository, reference string) error
}

// ArtifactsClient covers artifacts, their tags, labels and accessories.
type ArtifactsClient interface {
	List(ctx context.Context, project, repository string, opts *ArtifactListOptions) ([]Artifact, error)
	Get(ctx context.Context, project, repository, reference string, opts *ArtifactListOptions) (*Artifact, error)
	Delete(ctx context.Context, project, repository, reference string, missingOK bool) error
	Copy(ctx context.Context, project, repository, source string) (string, error)
	AddLabel(ctx context.Context, project, repository, reference string, label *Label) error
	CreateTag(ctx context.Context, project, repository, reference string, tag *Tag) (string, error)
	ListTags(ctx context.Context, project, repository, reference string, opts *TagListOptions) ([]Tag, error)
	DeleteTag(ctx context.Context, project, repository, reference, tag string, missingOK bool) error
	ListAccessories(ctx context.Context, project, repository, reference string, opts *ListOptions) ([]Accessory, error)
	// GetVulnerabilities returns the report stored under mimeType. found is
	// false when the artifact has no report for that MIME type.
	GetVulnerabilities(ctx context.Context, project, repository, reference, mimeType string) (report *HarborVulnerabilityReport, found bool, err error)
}

// ScannersClient covers scanner adapter registrations.
type ScannersClient interface {
	Create(ctx context.Context, scanner *ScannerRegistrationReq) (string, error)
	List(ctx context.Context, opts *ListOptions) ([]ScannerRegistration, error)
	Get(ctx context.Context, registrationID string) (*ScannerRegistration, error)
	Update(ctx context.Context, registrationID string, scanner *ScannerRegistrationReq) error
	Delete(ctx context.Context, registrationID string, missingOK bool) (*ScannerRegistration, error)
	SetDefault(ctx context.Context, registrationID string, isDefault bool) error
	Ping(ctx context.Context, settings *ScannerRegistrationSettings) error
	Metadata(ctx context.Context, registrationID string) (*ScannerAdapterMetadata, error)
}

// RetentionClient covers tag retention policies and their executions.
type RetentionClient interface {
	ProjectRetentionID(ctx context.Context, project ProjectRef) (int64, error)
	GetPolicy(ctx context.Context, policyID int64) (*RetentionPolicy, error)
	CreatePolicy(ctx context.Context, policy *RetentionPolicy) (string, error)
	UpdatePolicy(ctx context.Context, policyID int64, policy *RetentionPolicy) error
	DeletePolicy(ctx context.Context, policyID int64) error
	Metadata(ctx context.Context) (*RetentionMetadata, error)
	ListExecutions(ctx context.Context, policyID int64, page, pageSize int) ([]RetentionExecution, error)
	StartExecution(ctx context.Context, policyID int64, dryRun bool) (string, error)
	StopExecution(ctx context.Context, policyID, executionID int64) error
	ListTasks(ctx context.Context, policyID, executionID int64, page, pageSize int) ([]RetentionExecutionTask, error)
	TaskLog(ctx context.Context, policyID, executionID, taskID int64) (string, error)
}

// ProjectsClient covers projects and their metadata.
type ProjectsClient interface {
	Get(ctx context.Context, project ProjectRef) (*Project, error)
	GetMetadata(ctx context.Context, project ProjectRef) (*ProjectMetadata, error)
	SetMetadata(ctx context.Context, project ProjectRef, metadata *ProjectMetadata) error
	GetMetadataEntry(ctx context.Context, project ProjectRef, name string) (map[string]string, error)
	UpdateMetadataEntry(ctx context.Context, project ProjectRef, name string, value map[string]string) error
	DeleteMetadataEntry(ctx context.Context, project ProjectRef, name string) error
}

// SystemClient covers health, system information and system settings.
type SystemClient interface {
	Ping(ctx context.Context) (string, error)
	Health(ctx context.Context) (*OverallHealthStatus, error)
	Info(ctx context.Context) (*SystemInfo, error)
	CheckCompatibility(ctx context.Context) (*CompatibilityResult, error)
	GetCVEAllowlist(ctx context.Context) (*CVEAllowlist, error)
	UpdateCVEAllowlist(ctx context.Context, allowlist *CVEAllowlist) error
	TestOIDC(ctx context.Context, req *OIDCTestReq) error
}

// RawClient sends requests for endpoints without a typed wrapper.
type RawClient interface {
	GetJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error)
	GetText(ctx context.Context, path string, query url.Values) (string, error)
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	Users() UsersClient
	ScanAll() ScanAllClient
	Scans() ScansClient
	Artifacts() ArtifactsClient
	Scanners() ScannersClient
	Retention() RetentionClient
	Projects() ProjectsClient
	System() SystemClient
}

// Client is a Harbor API client. It is safe for concurrent use.
type Client interface {
	ResourceClients
	RawClient

	// BaseURL returns the normalized API base URL.
	BaseURL() string

	// Close releases pooled connections.
	Close()
}

// Config represents client configuration for building a harbor.Client.
//
// # Authentication precedence
//
// Username and Secret, when both are set, are encoded into a Basic token and
// Credentials is ignored. Otherwise Credentials is used as the pre-encoded
// Basic token. Supplying neither fails with ErrMissingCredentials.
//
// # URL normalization
//
// URL is stripped of trailing slashes. If it already contains "/api/v" it is
// used as-is; if it contains "/api" the APIVersion is appended; otherwise
// "/api/<APIVersion>" is appended.
//
// # Retries
//
// Only network failures are retried. GET, PUT, PATCH and DELETE back off
// exponentially between RetryWaitMin and RetryWaitMax until RetryBudget is
// spent. POST is attempted at most twice.
type Config struct {
	// URL of the Harbor instance, e.g. "https://harbor.example.com".
	URL string `mapstructure:"url" yaml:"url"`

	// Username and Secret are encoded into a Basic token.
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Secret   string `mapstructure:"secret"   yaml:"-"`

	// Credentials is a pre-encoded base64 "username:secret" token.
	Credentials string `mapstructure:"credentials" yaml:"-"`

	// APIVersion defaults to "v2.0".
	APIVersion string `mapstructure:"api_version" yaml:"api_version,omitempty"`

	// HTTPTimeout bounds a single attempt.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" yaml:"http_timeout,omitempty"`

	// RetryMax bounds the attempts of the standard policy. Zero uses the default.
	RetryMax int `mapstructure:"retry_max" yaml:"retry_max,omitempty"`
	// RetryWaitMin is the first backoff delay.
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min" yaml:"retry_wait_min,omitempty"`
	// RetryWaitMax caps a single backoff delay.
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max" yaml:"retry_wait_max,omitempty"`
	// RetryBudget is the total time the standard policy keeps retrying.
	RetryBudget time.Duration `mapstructure:"retry_budget" yaml:"retry_budget,omitempty"`

	// UserAgent overrides the default User-Agent header.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent,omitempty"`

	// DisableLinkFollowing returns only the first page of paginated GETs.
	DisableLinkFollowing bool `mapstructure:"disable_link_following" yaml:"disable_link_following,omitempty"`

	// Cache configures the optional GET result cache. Ignored when CacheBackend is set.
	Cache *CacheConfig `mapstructure:"cache" yaml:"cache,omitempty"`

	// CacheBackend is a ready cache instance.
	CacheBackend Cache `mapstructure:"-" yaml:"-"`

	// Logger receives transport and pagination logs. Defaults to zap.NewNop().
	Logger *zap.Logger `mapstructure:"-" yaml:"-"`

	// HTTPClient overrides the pooled HTTP client.
	HTTPClient *http.Client `mapstructure:"-" yaml:"-"`
}
