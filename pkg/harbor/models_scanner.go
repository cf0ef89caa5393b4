package harbor

import (
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// ScannerRegistration is a registered scanner adapter.
type ScannerRegistration struct {
	UUID             string           `json:"uuid,omitempty"`
	URL              string           `json:"url"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	Vendor           string           `json:"vendor,omitempty"`
	Version          string           `json:"version,omitempty"`
	Health           string           `json:"health,omitempty"`
	Disabled         bool             `json:"disabled,omitempty"`
	IsDefault        bool             `json:"is_default,omitempty"`
	Auth             string           `json:"auth,omitempty"`
	AccessCredential string           `json:"access_credential,omitempty"`
	SkipCertVerify   bool             `json:"skip_certVerify,omitempty"`
	UseInternalAddr  bool             `json:"use_internal_addr,omitempty"`
	Adapter          string           `json:"adapter,omitempty"`
	CreateTime       *strfmt.DateTime `json:"create_time,omitempty"`
	UpdateTime       *strfmt.DateTime `json:"update_time,omitempty"`
}

// ScannerRegistrationReq registers or updates a scanner adapter.
// Optional flags are pointers so that an explicit false is sent.
type ScannerRegistrationReq struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	Description      string `json:"description,omitempty"`
	Auth             string `json:"auth,omitempty"`
	AccessCredential string `json:"access_credential,omitempty"`
	SkipCertVerify   *bool  `json:"skip_certVerify,omitempty"`
	UseInternalAddr  *bool  `json:"use_internal_addr,omitempty"`
	Disabled         *bool  `json:"disabled,omitempty"`
}

// ScannerRegistrationSettings is used to ping a scanner adapter before registering it.
type ScannerRegistrationSettings struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	Auth             string `json:"auth,omitempty"`
	AccessCredential string `json:"access_credential,omitempty"`
}

// ScannerCapability lists the artifact and report MIME types a scanner handles.
type ScannerCapability struct {
	ConsumesMimeTypes []string `json:"consumes_mime_types,omitempty"`
	ProducesMimeTypes []string `json:"produces_mime_types,omitempty"`
}

// ScannerAdapterMetadata describes a scanner adapter.
type ScannerAdapterMetadata struct {
	Scanner      *ScannerInfo        `json:"scanner,omitempty"`
	Capabilities []ScannerCapability `json:"capabilities,omitempty"`
	Properties   map[string]string   `json:"properties,omitempty"`
}

// IsDefault toggles the system default scanner.
type IsDefault struct {
	IsDefault bool `json:"is_default"`
}

var (
	scannerRegistrationSchema = object(required("name", "url"), props{
		"uuid":              str(),
		"url":               str(),
		"name":              str(),
		"description":       str(),
		"vendor":            str(),
		"version":           str(),
		"health":            str(),
		"disabled":          boolean(),
		"is_default":        boolean(),
		"auth":              str(),
		"access_credential": str(),
		"skip_certVerify":   boolean(),
		"use_internal_addr": boolean(),
		"adapter":           str(),
		"create_time":       dateTime(),
		"update_time":       dateTime(),
	})

	scannerRegistrationReqSchema = object(required("name", "url"), props{
		"name":              str(),
		"url":               str(),
		"description":       str(),
		"auth":              str(),
		"access_credential": str(),
		"skip_certVerify":   boolean(),
		"use_internal_addr": boolean(),
		"disabled":          boolean(),
	})

	scannerRegistrationSettingsSchema = object(required("name", "url"), props{
		"name":              str(),
		"url":               str(),
		"auth":              str(),
		"access_credential": str(),
	})

	scannerCapabilitySchema = object(nil, props{
		"consumes_mime_types": arrayOf(str()),
		"produces_mime_types": arrayOf(str()),
	})

	scannerAdapterMetadataSchema = object(nil, props{
		"scanner":      scannerInfoSchema,
		"capabilities": arrayOf(scannerCapabilitySchema),
		"properties":   mapOf(str()),
	})

	isDefaultSchema = object(required("is_default"), props{
		"is_default": boolean(),
	})
)

// Schema implements Model.
func (*ScannerRegistration) Schema() *spec.Schema { return scannerRegistrationSchema }

// Schema implements Model.
func (*ScannerRegistrationReq) Schema() *spec.Schema { return scannerRegistrationReqSchema }

// Schema implements Model.
func (*ScannerRegistrationSettings) Schema() *spec.Schema { return scannerRegistrationSettingsSchema }

// Schema implements Model.
func (*ScannerAdapterMetadata) Schema() *spec.Schema { return scannerAdapterMetadataSchema }

// Schema implements Model.
func (*IsDefault) Schema() *spec.Schema { return isDefaultSchema }
