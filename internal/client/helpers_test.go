package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harbor-client/internal/constants"
	"github.com/fivetwenty-io/harbor-client/pkg/harbor"
)

const apiPrefix = "/api/v2.0"

// recordedRequest captures what the test server received.
type recordedRequest struct {
	Method      string
	Path        string
	EscapedPath string
	Query       url.Values
	Header      http.Header
	Body        []byte
}

// stubResponse is a canned answer of the test server.
type stubResponse struct {
	Status  int
	Body    string
	Headers map[string]string
}

// testServer answers requests with its stub responses in order, repeating the
// last one, and records every request.
type testServer struct {
	*httptest.Server

	mutex     sync.Mutex
	requests  []recordedRequest
	responses []stubResponse
}

func newTestServer(t *testing.T, responses ...stubResponse) *testServer {
	t.Helper()

	if len(responses) == 0 {
		responses = []stubResponse{{Status: http.StatusOK}}
	}

	server := &testServer{responses: responses}
	server.Server = httptest.NewServer(http.HandlerFunc(server.serve))
	t.Cleanup(server.Close)

	return server
}

func (s *testServer) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	s.mutex.Lock()
	s.requests = append(s.requests, recordedRequest{
		Method:      request.Method,
		Path:        request.URL.Path,
		EscapedPath: request.URL.EscapedPath(),
		Query:       request.URL.Query(),
		Header:      request.Header.Clone(),
		Body:        body,
	})
	response := s.responses[min(len(s.requests), len(s.responses))-1]
	s.mutex.Unlock()

	if response.Body != "" {
		writer.Header().Set(constants.HeaderContentType, constants.MediaTypeJSON)
	}

	for key, value := range response.Headers {
		writer.Header().Set(key, value)
	}

	status := response.Status
	if status == 0 {
		status = http.StatusOK
	}

	writer.WriteHeader(status)
	_, _ = io.WriteString(writer, response.Body)
}

// Requests returns a copy of the recorded requests.
func (s *testServer) Requests() []recordedRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *testServer) LastRequest(t *testing.T) recordedRequest {
	t.Helper()

	requests := s.Requests()
	require.NotEmpty(t, requests, "no request reached the test server")

	return requests[len(requests)-1]
}

// newTestClient creates a client for server authenticated as admin.
func newTestClient(t *testing.T, server *testServer, configure ...func(*harbor.Config)) *Client {
	t.Helper()

	config := &harbor.Config{
		URL:          server.URL,
		Username:     "admin",
		Secret:       "Harbor12345",
		RetryMax:     1,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}

	for _, fn := range configure {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return client
}

// endpointTest describes a single-request operation and what should go over
// the wire for it.
type endpointTest struct {
	Name     string
	Call     func(context.Context, *Client) (any, error)
	Response stubResponse

	WantMethod      string
	WantPath        string
	WantEscapedPath string
	WantQuery       url.Values
	WantHeaders     map[string]string
	WantBody        string
	WantErr         error

	Check func(t *testing.T, result any)
}

// runEndpointTests runs each case against a fresh server and client.
func runEndpointTests(t *testing.T, tests []endpointTest) {
	t.Helper()

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, testCase.Response)
			client := newTestClient(t, server)

			result, err := testCase.Call(context.Background(), client)

			if testCase.WantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, testCase.WantErr)
			} else {
				require.NoError(t, err)
			}

			request := server.LastRequest(t)
			assert.Equal(t, testCase.WantMethod, request.Method)

			if testCase.WantPath != "" {
				assert.Equal(t, apiPrefix+testCase.WantPath, request.Path)
			}

			if testCase.WantEscapedPath != "" {
				assert.Equal(t, apiPrefix+testCase.WantEscapedPath, request.EscapedPath)
			}

			for key, values := range testCase.WantQuery {
				assert.Equal(t, values, request.Query[key], "query parameter %s", key)
			}

			for key, value := range testCase.WantHeaders {
				assert.Equal(t, value, request.Header.Get(key), "header %s", key)
			}

			if testCase.WantBody != "" {
				assert.JSONEq(t, testCase.WantBody, string(request.Body))
			}

			if testCase.Check != nil {
				testCase.Check(t, result)
			}
		})
	}
}
