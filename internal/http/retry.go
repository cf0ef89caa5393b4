package http

import (
	"context"
	"crypto/x509"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

// RetryPolicy bounds how a verb retries network failures. HTTP status codes
// are never retried.
type RetryPolicy struct {
	Name       string
	MaxRetries int
	WaitMin    time.Duration
	WaitMax    time.Duration
	// Budget stops retrying once this much time has passed since the first
	// attempt. Zero means MaxRetries alone bounds the policy.
	Budget time.Duration
}

// StandardPolicy is used by GET, PUT, PATCH and DELETE.
func StandardPolicy() RetryPolicy {
	return RetryPolicy{
		Name:       "standard",
		MaxRetries: constants.DefaultRetryMax,
		WaitMin:    constants.DefaultRetryWaitMin,
		WaitMax:    constants.DefaultRetryWaitMax,
		Budget:     constants.DefaultRetryBudget,
	}
}

// PostPolicy allows a single retry, so POST is attempted at most twice.
func PostPolicy() RetryPolicy {
	return RetryPolicy{
		Name:       "post",
		MaxRetries: constants.PostRetryMax,
		WaitMin:    constants.DefaultRetryWaitMin,
		WaitMax:    constants.DefaultRetryWaitMax,
	}
}

// Attempts returns the maximum number of sends.
func (p RetryPolicy) Attempts() int {
	return p.MaxRetries + 1
}

type retryStartKey struct{}

func withRetryStart(ctx context.Context) context.Context {
	return context.WithValue(ctx, retryStartKey{}, time.Now())
}

func retryStart(ctx context.Context) (time.Time, bool) {
	start, ok := ctx.Value(retryStartKey{}).(time.Time)

	return start, ok
}

// IsRetryable reports whether a transport failure is worth another attempt.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var certErr *x509.UnknownAuthorityError
	if errors.As(err, &certErr) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Error()
		if strings.Contains(msg, "unsupported protocol scheme") ||
			strings.Contains(msg, "stopped after") ||
			strings.Contains(msg, "invalid header") {
			return false
		}
	}

	return true
}

func (p RetryPolicy) checkRetry(ctx context.Context, _ *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if !IsRetryable(err) {
		return false, nil
	}

	if p.Budget > 0 {
		if start, ok := retryStart(ctx); ok && time.Since(start) >= p.Budget {
			return false, nil
		}
	}

	return true, nil
}

func exponentialBackoff(waitMin, waitMax time.Duration, attemptNum int, _ *http.Response) time.Duration {
	wait := float64(waitMin) * math.Pow(2, float64(attemptNum))
	if wait > float64(waitMax) || math.IsInf(wait, 0) {
		return waitMax
	}

	return time.Duration(wait)
}

func transportErrorHandler(resp *http.Response, err error, numTries int) (*http.Response, error) {
	if resp != nil {
		_ = resp.Body.Close()
	}

	return nil, &harbor.TransportError{Attempts: numTries, Err: err}
}

func newRetryableClient(httpClient *http.Client, policy RetryPolicy, logger *zap.Logger) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = httpClient
	client.Logger = &leveledLogger{sugar: logger.Sugar().With(zap.String("retry_policy", policy.Name))}
	client.RetryMax = policy.MaxRetries
	client.RetryWaitMin = policy.WaitMin
	client.RetryWaitMax = policy.WaitMax
	client.CheckRetry = policy.checkRetry
	client.Backoff = exponentialBackoff
	client.ErrorHandler = transportErrorHandler

	return client
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	sugar *zap.SugaredLogger
}

// Error is called for every failed attempt, including ones that are retried.
func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
