package httpclient

import (
	"maps"
	"net/http"
	"time"
)

const (
	DefaultTimeout    = 30 * time.Second
	HeaderContentType = "Content-Type"
	HeaderAccept      = "Accept"
	HeaderExpect      = "Expect"
	HeaderXRequestID  = "X-Request-ID"
	ContentTypeXML    = "application/xml"
)

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if httpClient, ok := c.httpClient.(*http.Client); ok && httpClient != nil {
			httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the transport. Passing nil leaves the client
// without one, which callers treat as a missing HTTP capability.
func WithHTTPClient(httpClient Doer) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRequestIDKey(key any) Option {
	return func(c *Client) {
		c.requestIDKey = key
	}
}

func WithDefaultHeaders(headers map[string]string) Option {
	return func(c *Client) {
		maps.Copy(c.defaultHeaders, headers)
	}
}

type BasicAuth struct {
	Username string
	Password string
}

func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.basicAuth = &BasicAuth{Username: username, Password: password}
	}
}

func WithMaxResponseSize(size int64) Option {
	return func(c *Client) {
		c.maxResponseSize = size
	}
}

type RequestOption func(*requestConfig)

type requestConfig struct {
	headers   map[string]string
	rawQuery  string
	basicAuth *BasicAuth
	timeout   time.Duration
	requestID string
}

func WithRequestHeader(key, value string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		rc.headers[key] = value
	}
}

func WithRequestHeaders(headers map[string]string) RequestOption {
	return func(rc *requestConfig) {
		if rc.headers == nil {
			rc.headers = make(map[string]string)
		}

		maps.Copy(rc.headers, headers)
	}
}

func WithRequestTimeout(timeout time.Duration) RequestOption {
	return func(rc *requestConfig) {
		rc.timeout = timeout
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(rc *requestConfig) {
		rc.requestID = requestID
	}
}

// WithRawQuery appends an already encoded query string. The value is sent
// as is so callers control parameter order and escaping.
func WithRawQuery(rawQuery string) RequestOption {
	return func(rc *requestConfig) {
		rc.rawQuery = rawQuery
	}
}

func WithRequestBasicAuth(username, password string) RequestOption {
	return func(rc *requestConfig) {
		rc.basicAuth = &BasicAuth{Username: username, Password: password}
	}
}
