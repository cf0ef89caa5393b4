package harbor

import (
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// Artifact is an OCI artifact stored in a repository.
type Artifact struct {
	ID                int64                          `json:"id,omitempty"`
	Type              string                         `json:"type,omitempty"`
	MediaType         string                         `json:"media_type,omitempty"`
	ManifestMediaType string                         `json:"manifest_media_type,omitempty"`
	ProjectID         int64                          `json:"project_id,omitempty"`
	RepositoryID      int64                          `json:"repository_id,omitempty"`
	Digest            string                         `json:"digest"`
	Size              int64                          `json:"size,omitempty"`
	Icon              string                         `json:"icon,omitempty"`
	PushTime          *strfmt.DateTime               `json:"push_time,omitempty"`
	PullTime          *strfmt.DateTime               `json:"pull_time,omitempty"`
	ExtraAttrs        map[string]any                 `json:"extra_attrs,omitempty"`
	Annotations       map[string]string              `json:"annotations,omitempty"`
	References        []Reference                    `json:"references,omitempty"`
	Tags              []Tag                          `json:"tags,omitempty"`
	AdditionLinks     map[string]AdditionLink        `json:"addition_links,omitempty"`
	Labels            []Label                        `json:"labels,omitempty"`
	ScanOverview      map[string]NativeReportSummary `json:"scan_overview,omitempty"`
	Accessories       []Accessory                    `json:"accessories,omitempty"`
}

// Reference links an index artifact to one of its children.
type Reference struct {
	ParentID    int64             `json:"parent_id,omitempty"`
	ChildID     int64             `json:"child_id,omitempty"`
	ChildDigest string            `json:"child_digest,omitempty"`
	Platform    *Platform         `json:"platform,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
	URLs        []string          `json:"urls,omitempty"`
}

// Platform identifies the target of an image manifest.
type Platform struct {
	Architecture string   `json:"architecture,omitempty"`
	OS           string   `json:"os,omitempty"`
	OSVersion    string   `json:"os.version,omitempty"`
	OSFeatures   []string `json:"os.features,omitempty"`
	Variant      string   `json:"variant,omitempty"`
}

// AdditionLink points at extra artifact data such as build history.
type AdditionLink struct {
	Href     string `json:"href,omitempty"`
	Absolute bool   `json:"absolute,omitempty"`
}

// Tag is a named pointer to an artifact.
type Tag struct {
	ID           int64            `json:"id,omitempty"`
	RepositoryID int64            `json:"repository_id,omitempty"`
	ArtifactID   int64            `json:"artifact_id,omitempty"`
	Name         string           `json:"name"`
	PushTime     *strfmt.DateTime `json:"push_time,omitempty"`
	PullTime     *strfmt.DateTime `json:"pull_time,omitempty"`
	Immutable    bool             `json:"immutable,omitempty"`
	Signed       bool             `json:"signed,omitempty"`
}

// Label is a user-defined marker attached to artifacts.
type Label struct {
	ID           int64            `json:"id,omitempty"`
	Name         string           `json:"name,omitempty"`
	Description  string           `json:"description,omitempty"`
	Color        string           `json:"color,omitempty"`
	Scope        string           `json:"scope,omitempty"`
	ProjectID    int64            `json:"project_id,omitempty"`
	CreationTime *strfmt.DateTime `json:"creation_time,omitempty"`
	UpdateTime   *strfmt.DateTime `json:"update_time,omitempty"`
}

// Accessory is an artifact attached to another one, such as a signature or SBOM.
type Accessory struct {
	ID                int64            `json:"id,omitempty"`
	ArtifactID        int64            `json:"artifact_id,omitempty"`
	SubjectArtifactID int64            `json:"subject_artifact_id,omitempty"`
	Size              int64            `json:"size,omitempty"`
	Digest            string           `json:"digest,omitempty"`
	Type              string           `json:"type,omitempty"`
	Icon              string           `json:"icon,omitempty"`
	CreationTime      *strfmt.DateTime `json:"creation_time,omitempty"`
}

// NativeReportSummary is the per-MIME-type scan overview of an artifact.
type NativeReportSummary struct {
	ReportID        string                `json:"report_id,omitempty"`
	ScanStatus      string                `json:"scan_status,omitempty"`
	Severity        string                `json:"severity,omitempty"`
	Duration        int64                 `json:"duration,omitempty"`
	Summary         *VulnerabilitySummary `json:"summary,omitempty"`
	StartTime       *strfmt.DateTime      `json:"start_time,omitempty"`
	EndTime         *strfmt.DateTime      `json:"end_time,omitempty"`
	CompletePercent int64                 `json:"complete_percent,omitempty"`
	Scanner         *ScannerInfo          `json:"scanner,omitempty"`
}

// VulnerabilitySummary counts vulnerabilities by severity.
type VulnerabilitySummary struct {
	Total   int64            `json:"total,omitempty"`
	Fixable int64            `json:"fixable,omitempty"`
	Summary map[string]int64 `json:"summary,omitempty"`
}

// ScannerInfo identifies the scanner that produced a report.
type ScannerInfo struct {
	Name    string `json:"name,omitempty"`
	Vendor  string `json:"vendor,omitempty"`
	Version string `json:"version,omitempty"`
}

// ReportArtifact identifies the artifact a vulnerability report covers.
type ReportArtifact struct {
	Repository string `json:"repository,omitempty"`
	Digest     string `json:"digest,omitempty"`
	Tag        string `json:"tag,omitempty"`
	MimeType   string `json:"mime_type,omitempty"`
}

// CVSSDetails holds CVSS scores and vectors.
type CVSSDetails struct {
	ScoreV3  *float64 `json:"score_v3,omitempty"`
	ScoreV2  *float64 `json:"score_v2,omitempty"`
	VectorV3 string   `json:"vector_v3,omitempty"`
	VectorV2 string   `json:"vector_v2,omitempty"`
}

// VulnerabilityItem is one finding of a vulnerability report.
type VulnerabilityItem struct {
	ID               string         `json:"id"`
	Package          string         `json:"package,omitempty"`
	Version          string         `json:"version,omitempty"`
	FixVersion       string         `json:"fix_version,omitempty"`
	Severity         string         `json:"severity,omitempty"`
	Description      string         `json:"description,omitempty"`
	Links            []string       `json:"links,omitempty"`
	PreferredCVSS    *CVSSDetails   `json:"preferred_cvss,omitempty"`
	CWEIDs           []string       `json:"cwe_ids,omitempty"`
	VendorAttributes map[string]any `json:"vendor_attributes,omitempty"`
}

// HarborVulnerabilityReport is a scan report in the Harbor vulnerability format.
type HarborVulnerabilityReport struct {
	GeneratedAt     *strfmt.DateTime    `json:"generated_at,omitempty"`
	Artifact        *ReportArtifact     `json:"artifact,omitempty"`
	Scanner         *ScannerInfo        `json:"scanner,omitempty"`
	Severity        string              `json:"severity,omitempty"`
	Vulnerabilities []VulnerabilityItem `json:"vulnerabilities,omitempty"`
}

var (
	platformSchema = object(nil, props{
		"architecture": str(),
		"os":           str(),
		"os.version":   str(),
		"os.features":  arrayOf(str()),
		"variant":      str(),
	})

	referenceSchema = object(nil, props{
		"parent_id":    integer(),
		"child_id":     integer(),
		"child_digest": str(),
		"platform":     platformSchema,
		"annotations":  mapOf(str()),
		"urls":         arrayOf(str()),
	})

	additionLinkSchema = object(nil, props{
		"href":     str(),
		"absolute": boolean(),
	})

	tagSchema = object(required("name"), props{
		"id":            integer(),
		"repository_id": integer(),
		"artifact_id":   integer(),
		"name":          str(),
		"push_time":     dateTime(),
		"pull_time":     dateTime(),
		"immutable":     boolean(),
		"signed":        boolean(),
	})

	labelSchema = object(nil, props{
		"id":            integer(),
		"name":          str(),
		"description":   str(),
		"color":         str(),
		"scope":         str(),
		"project_id":    integer(),
		"creation_time": dateTime(),
		"update_time":   dateTime(),
	})

	accessorySchema = object(nil, props{
		"id":                  integer(),
		"artifact_id":         integer(),
		"subject_artifact_id": integer(),
		"size":                integer(),
		"digest":              str(),
		"type":                str(),
		"icon":                str(),
		"creation_time":       dateTime(),
	})

	scannerInfoSchema = object(nil, props{
		"name":    str(),
		"vendor":  str(),
		"version": str(),
	})

	vulnerabilitySummarySchema = object(nil, props{
		"total":   integer(),
		"fixable": integer(),
		"summary": mapOf(integer()),
	})

	nativeReportSummarySchema = object(nil, props{
		"report_id":        str(),
		"scan_status":      str(),
		"severity":         str(),
		"duration":         integer(),
		"summary":          vulnerabilitySummarySchema,
		"start_time":       dateTime(),
		"end_time":         dateTime(),
		"complete_percent": integer(),
		"scanner":          scannerInfoSchema,
	})

	artifactSchema = object(required("digest"), props{
		"id":                  integer(),
		"type":                str(),
		"media_type":          str(),
		"manifest_media_type": str(),
		"project_id":          integer(),
		"repository_id":       integer(),
		"digest":              str(),
		"size":                integer(),
		"icon":                str(),
		"push_time":           dateTime(),
		"pull_time":           dateTime(),
		"extra_attrs":         freeForm(),
		"annotations":         mapOf(str()),
		"references":          arrayOf(referenceSchema),
		"tags":                arrayOf(tagSchema),
		"addition_links":      mapOf(additionLinkSchema),
		"labels":              arrayOf(labelSchema),
		"scan_overview":       mapOf(nativeReportSummarySchema),
		"accessories":         arrayOf(accessorySchema),
	})

	reportArtifactSchema = object(nil, props{
		"repository": str(),
		"digest":     str(),
		"tag":        str(),
		"mime_type":  str(),
	})

	cvssDetailsSchema = object(nil, props{
		"score_v3":  number(),
		"score_v2":  number(),
		"vector_v3": str(),
		"vector_v2": str(),
	})

	vulnerabilityItemSchema = object(required("id"), props{
		"id":                str(),
		"package":           str(),
		"version":           str(),
		"fix_version":       str(),
		"severity":          str(),
		"description":       str(),
		"links":             arrayOf(str()),
		"preferred_cvss":    cvssDetailsSchema,
		"cwe_ids":           arrayOf(str()),
		"vendor_attributes": freeForm(),
	})

	harborVulnerabilityReportSchema = object(nil, props{
		"generated_at":    dateTime(),
		"artifact":        reportArtifactSchema,
		"scanner":         scannerInfoSchema,
		"severity":        str(),
		"vulnerabilities": arrayOf(vulnerabilityItemSchema),
	})
)

// Schema implements Model.
func (*Artifact) Schema() *spec.Schema { return artifactSchema }

// Schema implements Model.
func (*Reference) Schema() *spec.Schema { return referenceSchema }

// Schema implements Model.
func (*Tag) Schema() *spec.Schema { return tagSchema }

// Schema implements Model.
func (*Label) Schema() *spec.Schema { return labelSchema }

// Schema implements Model.
func (*Accessory) Schema() *spec.Schema { return accessorySchema }

// Schema implements Model.
func (*NativeReportSummary) Schema() *spec.Schema { return nativeReportSummarySchema }

// Schema implements Model.
func (*HarborVulnerabilityReport) Schema() *spec.Schema { return harborVulnerabilityReportSchema }
