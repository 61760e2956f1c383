package pypi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/pypi/biocypher/json" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func newClient(server *httptest.Server, buf *bytes.Buffer) *Client {
	return New(
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithTimeout(2*time.Second),
		WithLogger(log.New(buf)),
	)
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"release", "0.10.1"},
		{"short release", "0.9"},
		{"post release", "2.9.0.post0"},
		{"release candidate", "1.0.0rc1"},
		{"four components", "0.5.1.1"},
		{"dev release", "1.0.0.dev3"},
		{"epoch and local", "1!2.0+cpu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, hits := newIndex(t, http.StatusOK, `{"info": {"name": "biocypher", "version": "`+tt.version+`"}, "releases": {}}`)
			var buf bytes.Buffer
			c := newClient(server, &buf)

			version, err := c.Latest(context.Background(), "biocypher")
			require.NoError(t, err)
			assert.Equal(t, tt.version, version)

			assert.Equal(t, tt.version, c.LatestOrFallback(context.Background(), "biocypher", "0.9.2"))
			assert.NotContains(t, buf.String(), "fallback")
			assert.Equal(t, 2, *hits)
		})
	}
}

func TestLatestFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `oops`},
		{"not json", http.StatusOK, `<html>maintenance</html>`},
		{"missing info", http.StatusOK, `{"releases": {}}`},
		{"missing version", http.StatusOK, `{"info": {"name": "biocypher"}}`},
		{"empty version", http.StatusOK, `{"info": {"version": ""}}`},
		{"version not a string", http.StatusOK, `{"info": {"version": 1}}`},
		{"unparseable version", http.StatusOK, `{"info": {"version": "not-a-version"}}`},
		{"version with spaces", http.StatusOK, `{"info": {"version": "1.0 beta"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, hits := newIndex(t, tt.status, tt.body)
			var buf bytes.Buffer
			c := newClient(server, &buf)

			_, err := c.Latest(context.Background(), "biocypher")
			assert.Error(t, err)

			got := c.LatestOrFallback(context.Background(), "biocypher", "0.9.2")
			assert.Equal(t, "0.9.2", got)
			assert.Contains(t, buf.String(), "fallback")
			assert.Equal(t, 2, *hits, "one request per call, no retries")
		})
	}
}

func TestLatestNotFound(t *testing.T) {
	server, _ := newIndex(t, http.StatusOK, `{}`)
	var buf bytes.Buffer

	_, err := newClient(server, &buf).Latest(context.Background(), "no-such-package")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLatestOrFallbackUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var buf bytes.Buffer
	c := New(WithBaseURL(url), WithLogger(log.New(&buf)))

	assert.Equal(t, "0.9.2", c.LatestOrFallback(context.Background(), "biocypher", "0.9.2"))
	assert.Contains(t, buf.String(), "WARN")
}

func TestLatestTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	var buf bytes.Buffer
	c := New(WithBaseURL(server.URL), WithTimeout(50*time.Millisecond), WithLogger(log.New(&buf)))

	start := time.Now()
	got := c.LatestOrFallback(context.Background(), "biocypher", "0.9.2")
	assert.Equal(t, "0.9.2", got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLatestEmptyName(t *testing.T) {
	_, err := New().Latest(context.Background(), " ")
	assert.Error(t, err)
}

func TestOptionsIgnoreZeroValues(t *testing.T) {
	c := New(WithBaseURL(""), WithTimeout(0), WithLogger(nil))
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
	assert.Equal(t, DefaultTimeout, c.timeout)
	assert.NotNil(t, c.logger)
}
