package client

import (
	"fmt"
	"net/url"
	"strconv"

	internalhttp "github.com/fivetwenty-io/harbor-client/internal/http"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

type model[T any] interface {
	*T
	harbor.Model
}

// decode builds a T from a JSON response, validating it against T's schema.
func decode[T any, PT model[T]](resp *internalhttp.Response, what string) (*T, error) {
	body, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	out, err := harbor.Construct[T, PT](body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	return out, nil
}

func decodeList[T any, PT model[T]](resp *internalhttp.Response, what string) ([]T, error) {
	body, err := resp.JSON()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	out, err := harbor.ConstructList[T, PT](body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", what, err)
	}

	return out, nil
}

// artifactPath returns the artifact resource path. Repository names may hold
// slashes, which Harbor expects double URL-encoded.
func artifactPath(project, repository, reference string) string {
	return repositoryPath(project, repository) + "/artifacts/" + url.PathEscape(reference)
}

func repositoryPath(project, repository string) string {
	return "/projects/" + url.PathEscape(project) +
		"/repositories/" + url.PathEscape(url.PathEscape(repository))
}

func pageValues(page, pageSize int) url.Values {
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}

	if pageSize > 0 {
		values.Set("page_size", strconv.Itoa(pageSize))
	}

	return values
}

func int64Segment(id int64) string {
	return strconv.FormatInt(id, 10)
}
