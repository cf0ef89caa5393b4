package harbor

import (
	"net/url"
	"strconv"

	"github.com/go-openapi/swag"
)

// ListOptions are the common filters of list endpoints. Zero values are not sent.
type ListOptions struct {
	// Query is Harbor's "q" filter, e.g. "name=~nginx".
	Query string
	// Sort is a comma separated field list, "-" prefix for descending.
	Sort     string
	Page     int
	PageSize int
	// Extra carries endpoint-specific parameters.
	Extra url.Values
}

// Values encodes the options as query parameters.
func (o *ListOptions) Values() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.Query != "" {
		values.Set("q", o.Query)
	}

	if o.Sort != "" {
		values.Set("sort", o.Sort)
	}

	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}

	if o.PageSize > 0 {
		values.Set("page_size", strconv.Itoa(o.PageSize))
	}

	for key, vals := range o.Extra {
		for _, v := range vals {
			values.Add(key, v)
		}
	}

	return values
}

// ArtifactListOptions filter and enrich artifact listings. Nil flags use the
// server default.
type ArtifactListOptions struct {
	ListOptions

	WithTag             *bool
	WithLabel           *bool
	WithScanOverview    *bool
	WithSignature       *bool
	WithImmutableStatus *bool
	WithAccessory       *bool

	// MimeType selects the scan overview format; empty means the Harbor
	// vulnerability report v1.1 format.
	MimeType string
}

// Values encodes the options as query parameters.
func (o *ArtifactListOptions) Values() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.Values()
	setBool(values, "with_tag", o.WithTag)
	setBool(values, "with_label", o.WithLabel)
	setBool(values, "with_scan_overview", o.WithScanOverview)
	setBool(values, "with_signature", o.WithSignature)
	setBool(values, "with_immutable_status", o.WithImmutableStatus)
	setBool(values, "with_accessory", o.WithAccessory)

	return values
}

// TagListOptions filter tag listings.
type TagListOptions struct {
	ListOptions

	WithSignature       *bool
	WithImmutableStatus *bool
}

// Values encodes the options as query parameters.
func (o *TagListOptions) Values() url.Values {
	if o == nil {
		return url.Values{}
	}

	values := o.ListOptions.Values()
	setBool(values, "with_signature", o.WithSignature)
	setBool(values, "with_immutable_status", o.WithImmutableStatus)

	return values
}

func setBool(values url.Values, key string, flag *bool) {
	if flag != nil {
		values.Set(key, strconv.FormatBool(swag.BoolValue(flag)))
	}
}
