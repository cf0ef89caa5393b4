package http

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// cacheKey identifies a GET by URL, Accept headers, credential and link
// following, so results are never shared across users.
func (c *Client) cacheKey(ctx context.Context, req *Request, follow bool) string {
	target, err := c.resolveURL(req.Path, req.Query)
	if err != nil {
		return ""
	}

	token := ""
	if c.tokenManager != nil {
		token, err = c.tokenManager.GetToken(ctx)
		if err != nil {
			return ""
		}
	}

	headerKeys := make([]string, 0, len(req.Headers))
	for key := range req.Headers {
		headerKeys = append(headerKeys, key)
	}

	sort.Strings(headerKeys)

	hash := sha256.New()
	hash.Write([]byte(target))
	hash.Write([]byte{0})

	for _, key := range headerKeys {
		hash.Write([]byte(http.CanonicalHeaderKey(key) + ":" + req.Headers[key]))
		hash.Write([]byte{0})
	}

	hash.Write([]byte(token))
	hash.Write([]byte(strconv.FormatBool(follow)))

	return hex.EncodeToString(hash.Sum(nil))
}

func (c *Client) cacheLookup(ctx context.Context, key string) *Response {
	if key == "" {
		return nil
	}

	entry, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	c.logger.Debug("cache hit", zap.String("key", key))

	return &Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{},
		Body:       entry.Data,
	}
}

func (c *Client) cacheStore(ctx context.Context, key string, resp *Response) {
	entry := &harbor.CacheEntry{
		Data:      resp.Body,
		ExpiresAt: time.Now().Add(c.cacheTTL),
		ETag:      resp.Header.Get("ETag"),
	}

	err := c.cache.Set(ctx, key, entry)
	if err != nil {
		c.logger.Warn("failed to cache response", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateCache drops every cached GET result, e.g. after a write.
func (c *Client) InvalidateCache(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}

	return c.cache.Clear(ctx)
}
