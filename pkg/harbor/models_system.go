package harbor

import (
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// ComponentHealthStatus is the health of one Harbor component.
type ComponentHealthStatus struct {
	Name   string `json:"name,omitempty"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OverallHealthStatus is the aggregated health of a Harbor instance.
type OverallHealthStatus struct {
	Status     string                  `json:"status,omitempty"`
	Components []ComponentHealthStatus `json:"components,omitempty"`
}

// SystemInfo is the general information Harbor publishes at /systeminfo.
type SystemInfo struct {
	CurrentTime                 *strfmt.DateTime `json:"current_time,omitempty"`
	RegistryURL                 string           `json:"registry_url,omitempty"`
	ExternalURL                 string           `json:"external_url,omitempty"`
	AuthMode                    string           `json:"auth_mode,omitempty"`
	PrimaryAuthMode             bool             `json:"primary_auth_mode,omitempty"`
	ProjectCreationRestriction  string           `json:"project_creation_restriction,omitempty"`
	SelfRegistration            bool             `json:"self_registration,omitempty"`
	HasCARoot                   bool             `json:"has_ca_root,omitempty"`
	HarborVersion               string           `json:"harbor_version,omitempty"`
	RegistryStorageProviderName string           `json:"registry_storage_provider_name,omitempty"`
	ReadOnly                    bool             `json:"read_only,omitempty"`
	NotificationEnable          bool             `json:"notification_enable,omitempty"`
}

// OIDCTestReq checks connectivity to an OIDC endpoint.
type OIDCTestReq struct {
	URL        string `json:"url"`
	VerifyCert *bool  `json:"verify_cert,omitempty"`
}

var (
	componentHealthStatusSchema = object(nil, props{
		"name":   str(),
		"status": str(),
		"error":  str(),
	})

	overallHealthStatusSchema = object(nil, props{
		"status":     str(),
		"components": arrayOf(componentHealthStatusSchema),
	})

	systemInfoSchema = object(nil, props{
		"current_time":                   dateTime(),
		"registry_url":                   str(),
		"external_url":                   str(),
		"auth_mode":                      str(),
		"primary_auth_mode":              boolean(),
		"project_creation_restriction":   str(),
		"self_registration":              boolean(),
		"has_ca_root":                    boolean(),
		"harbor_version":                 str(),
		"registry_storage_provider_name": str(),
		"read_only":                      boolean(),
		"notification_enable":            boolean(),
	})

	oidcTestReqSchema = object(required("url"), props{
		"url":         str(),
		"verify_cert": boolean(),
	})
)

// Schema implements Model.
func (*OverallHealthStatus) Schema() *spec.Schema { return overallHealthStatusSchema }

// Schema implements Model.
func (*SystemInfo) Schema() *spec.Schema { return systemInfoSchema }

// Schema implements Model.
func (*OIDCTestReq) Schema() *spec.Schema { return oidcTestReqSchema }
