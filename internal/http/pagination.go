package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
)

// paginate follows continuation links from first and concatenates the JSON
// array pages in link order. A page that is not an array ends aggregation
// with a warning and the items gathered so far. Status errors on later pages
// are returned to the caller.
func (c *Client) paginate(ctx context.Context, req *Request, first *Response) (*Response, error) {
	link := NextLink(first.Header.Get(constants.HeaderLink))
	if link == "" {
		return first, nil
	}

	items, ok := decodeArray(first.Body)
	if !ok {
		c.warnUnpaginated(req.Path, first.Body)

		return first, nil
	}

	seen := map[string]bool{}

	for link != "" && !seen[link] {
		seen[link] = true

		page, err := c.send(ctx, &Request{
			Method:    http.MethodGet,
			Path:      link,
			Headers:   req.Headers,
			MissingOK: req.MissingOK,
		})
		if err != nil {
			return page, err
		}

		pageItems, ok := decodeArray(page.Body)
		if page.Absent || !ok {
			c.warnUnpaginated(link, page.Body)

			break
		}

		items = append(items, pageItems...)
		link = NextLink(page.Header.Get(constants.HeaderLink))
	}

	body, err := json.Marshal(items)
	if err != nil {
		return first, nil
	}

	return &Response{
		StatusCode: first.StatusCode,
		Header:     first.Header,
		Body:       body,
	}, nil
}

func (c *Client) warnUnpaginated(link string, page []byte) {
	c.logger.Warn("unable to handle paginated results",
		zap.String("url", link),
		zap.ByteString("page", page),
	)
}

func decodeArray(body []byte) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	items := []json.RawMessage{}

	err := json.Unmarshal(trimmed, &items)
	if err != nil {
		return nil, false
	}

	return items, true
}

// NextLink extracts the continuation URL from a Link header value. RFC 8288
// values yield the rel="next" target or "" when there is none. Any other
// non-empty value is taken as a bare URL.
func NextLink(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if !strings.Contains(value, "<") {
		return value
	}

	rest := value

	for {
		start := strings.Index(rest, "<")
		if start < 0 {
			return ""
		}

		end := strings.Index(rest[start:], ">")
		if end < 0 {
			return ""
		}

		target := rest[start+1 : start+end]
		rest = rest[start+end+1:]

		params := rest
		if next := strings.Index(rest, "<"); next >= 0 {
			params = rest[:next]
		}

		if hasNextRel(params) {
			return strings.TrimSpace(target)
		}
	}
}

func hasNextRel(params string) bool {
	for _, param := range strings.FieldsFunc(params, func(r rune) bool { return r == ';' || r == ',' }) {
		key, val, found := strings.Cut(strings.TrimSpace(param), "=")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}

		for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(val), `"`)) {
			if strings.EqualFold(rel, "next") {
				return true
			}
		}
	}

	return false
}
