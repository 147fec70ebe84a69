package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var _ Doer = (*http.Client)(nil)

type Client struct {
	baseURL         string
	httpClient      Doer
	requestIDKey    any
	defaultHeaders  map[string]string
	basicAuth       *BasicAuth
	maxResponseSize int64 // 0 means no limit
}

// New returns a client rooted at baseURL. An empty baseURL makes every
// request path an absolute URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{ //nolint:exhaustruct
			Timeout: DefaultTimeout,
		},
		requestIDKey:    nil,
		defaultHeaders:  make(map[string]string),
		basicAuth:       nil,
		maxResponseSize: 0,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts...)
}

func (c *Client) Post(ctx context.Context, path string, body []byte, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body, opts...)
}

// Do sends a single request and returns the response whatever its status
// code. Only transport level failures are reported as errors.
func (c *Client) Do(
	ctx context.Context,
	method string,
	path string,
	body []byte,
	opts ...RequestOption,
) (*Response, error) {
	return c.do(ctx, method, path, body, opts...)
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body []byte,
	opts ...RequestOption,
) (*Response, error) {
	cfg := c.buildRequestConfig(ctx, opts...)

	reqCtx := ctx

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if !c.HasTransport() {
		return nil, ErrNoTransport
	}

	req, err := c.buildRequest(reqCtx, method, path, body, cfg)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp, cfg.requestID)
}

func (c *Client) buildRequestConfig(ctx context.Context, opts ...RequestOption) *requestConfig {
	cfg := &requestConfig{
		headers:   make(map[string]string),
		rawQuery:  "",
		basicAuth: c.basicAuth,
		timeout:   0,
		requestID: "",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.requestID == "" {
		cfg.requestID = c.extractRequestID(ctx)
	}

	return cfg
}

func (c *Client) extractRequestID(ctx context.Context) string {
	if c.requestIDKey != nil {
		if id, ok := ctx.Value(c.requestIDKey).(string); ok && id != "" {
			return id
		}
	}

	return uuid.New().String()
}

func (c *Client) buildRequest(
	ctx context.Context,
	method string,
	path string,
	body []byte,
	cfg *requestConfig,
) (*http.Request, error) {
	url := c.buildURL(path, cfg.rawQuery)

	var bodyReader io.Reader

	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCreateRequest, err)
	}

	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}

	for k, v := range cfg.headers {
		req.Header.Set(k, v)
	}

	if cfg.requestID != "" {
		req.Header.Set(HeaderXRequestID, cfg.requestID)
	}

	if cfg.basicAuth != nil {
		req.SetBasicAuth(cfg.basicAuth.Username, cfg.basicAuth.Password)
	}

	// Some of the services we talk to mishandle 100-continue negotiation.
	req.Header.Del(HeaderExpect)

	return req, nil
}

func (c *Client) handleResponse(resp *http.Response, requestID string) (*Response, error) {
	respRequestID := resp.Header.Get(HeaderXRequestID)
	if respRequestID == "" {
		respRequestID = requestID
	}

	body := io.Reader(resp.Body)
	if c.maxResponseSize > 0 {
		body = io.LimitReader(resp.Body, c.maxResponseSize+1)
	}

	bodyBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadResponse, err)
	}

	if c.maxResponseSize > 0 && int64(len(bodyBytes)) > c.maxResponseSize {
		return nil, ErrResponseTooLarge
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		RequestID:  respRequestID,
		Body:       bodyBytes,
	}, nil
}

// HasTransport reports whether the client has something to send requests
// through.
func (c *Client) HasTransport() bool {
	if c.httpClient == nil {
		return false
	}

	if httpClient, ok := c.httpClient.(*http.Client); ok && httpClient == nil {
		return false
	}

	return true
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the address a request for path and rawQuery would be sent to.
func (c *Client) URL(path, rawQuery string) string {
	return c.buildURL(path, rawQuery)
}

func (c *Client) buildURL(path string, rawQuery string) string {
	fullURL := path

	if c.baseURL != "" {
		if path != "" && !strings.HasPrefix(path, "/") {
			path = "/" + path
		}

		fullURL = c.baseURL + path
	}

	if rawQuery == "" {
		return fullURL
	}

	return fullURL + "?" + rawQuery
}
