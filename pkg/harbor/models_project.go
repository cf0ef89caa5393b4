package harbor

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// ProjectRef names a project either by name or by numeric ID.
type ProjectRef struct {
	value  string
	isName bool
}

// ProjectName refers to a project by name.
func ProjectName(name string) ProjectRef {
	return ProjectRef{value: name, isName: true}
}

// ProjectID refers to a project by ID.
func ProjectID(id int64) ProjectRef {
	return ProjectRef{value: strconv.FormatInt(id, 10)}
}

// String returns the path segment for the project.
func (r ProjectRef) String() string {
	return r.value
}

// IsName reports whether the reference is a project name.
func (r ProjectRef) IsName() bool {
	return r.isName
}

// StringOrInt holds a value Harbor sends either as a JSON string or as a
// JSON number. It always marshals as a string.
type StringOrInt string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringOrInt) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		*s = StringOrInt(value)

		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}

	*s = StringOrInt(number.String())

	return nil
}

// Int64 parses the value as a base-10 integer.
func (s StringOrInt) Int64() (int64, error) {
	return strconv.ParseInt(string(s), 10, 64)
}

// ProjectMetadata holds project settings. Harbor encodes every value as a string.
type ProjectMetadata struct {
	Public                   string      `json:"public,omitempty"`
	EnableContentTrust       string      `json:"enable_content_trust,omitempty"`
	EnableContentTrustCosign string      `json:"enable_content_trust_cosign,omitempty"`
	PreventVul               string      `json:"prevent_vul,omitempty"`
	Severity                 string      `json:"severity,omitempty"`
	AutoScan                 string      `json:"auto_scan,omitempty"`
	ReuseSysCVEAllowlist     string      `json:"reuse_sys_cve_allowlist,omitempty"`
	RetentionID              StringOrInt `json:"retention_id,omitempty"`
}

// CVEAllowlistItem is one allowlisted CVE.
type CVEAllowlistItem struct {
	CVEID string `json:"cve_id,omitempty"`
}

// CVEAllowlist is the system or project CVE allowlist.
type CVEAllowlist struct {
	ID           int64              `json:"id,omitempty"`
	ProjectID    int64              `json:"project_id,omitempty"`
	ExpiresAt    *int64             `json:"expires_at,omitempty"`
	Items        []CVEAllowlistItem `json:"items,omitempty"`
	CreationTime *strfmt.DateTime   `json:"creation_time,omitempty"`
	UpdateTime   *strfmt.DateTime   `json:"update_time,omitempty"`
}

// Project is a Harbor project.
type Project struct {
	ProjectID          int64            `json:"project_id,omitempty"`
	OwnerID            int64            `json:"owner_id,omitempty"`
	Name               string           `json:"name"`
	RegistryID         *int64           `json:"registry_id,omitempty"`
	CreationTime       *strfmt.DateTime `json:"creation_time,omitempty"`
	UpdateTime         *strfmt.DateTime `json:"update_time,omitempty"`
	Deleted            bool             `json:"deleted,omitempty"`
	OwnerName          string           `json:"owner_name,omitempty"`
	Togglable          bool             `json:"togglable,omitempty"`
	CurrentUserRoleID  int64            `json:"current_user_role_id,omitempty"`
	CurrentUserRoleIDs []int64          `json:"current_user_role_ids,omitempty"`
	RepoCount          int64            `json:"repo_count,omitempty"`
	Metadata           *ProjectMetadata `json:"metadata,omitempty"`
	CVEAllowlist       *CVEAllowlist    `json:"cve_allowlist,omitempty"`
}

var (
	projectMetadataSchema = object(nil, props{
		"public":                      str(),
		"enable_content_trust":        str(),
		"enable_content_trust_cosign": str(),
		"prevent_vul":                 str(),
		"severity":                    str(),
		"auto_scan":                   str(),
		"reuse_sys_cve_allowlist":     str(),
		"retention_id":                strOrInt(),
	})

	cveAllowlistItemSchema = object(nil, props{
		"cve_id": str(),
	})

	cveAllowlistSchema = object(nil, props{
		"id":            integer(),
		"project_id":    integer(),
		"expires_at":    integer(),
		"items":         arrayOf(cveAllowlistItemSchema),
		"creation_time": dateTime(),
		"update_time":   dateTime(),
	})

	projectSchema = object(required("name"), props{
		"project_id":            integer(),
		"owner_id":              integer(),
		"name":                  str(),
		"registry_id":           integer(),
		"creation_time":         dateTime(),
		"update_time":           dateTime(),
		"deleted":               boolean(),
		"owner_name":            str(),
		"togglable":             boolean(),
		"current_user_role_id":  integer(),
		"current_user_role_ids": arrayOf(integer()),
		"repo_count":            integer(),
		"metadata":              projectMetadataSchema,
		"cve_allowlist":         cveAllowlistSchema,
	})
)

// Schema implements Model.
func (*ProjectMetadata) Schema() *spec.Schema { return projectMetadataSchema }

// Schema implements Model.
func (*CVEAllowlist) Schema() *spec.Schema { return cveAllowlistSchema }

// Schema implements Model.
func (*Project) Schema() *spec.Schema { return projectSchema }
