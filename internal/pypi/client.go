package pypi

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultBaseURL is the public Python Package Index.
	DefaultBaseURL = "https://pypi.org"
	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second
)

// Client queries a package index.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL points the client at a mirror or a test server.
func WithBaseURL(url string) Option {
	return func(cl *Client) {
		if url != "" {
			cl.baseURL = url
		}
	}
}

// WithTimeout sets the per-lookup timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithLogger sets the logger used for fallback warnings.
func WithLogger(l *log.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		timeout:    DefaultTimeout,
		httpClient: http.DefaultClient,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the index this client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}
