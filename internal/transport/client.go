// Package transport implements the HTTP invoker boundary for SOAP calls:
// one request, one response body, or one transport error. Retry of
// connection-level failures is transport policy and invisible to callers.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/trestletech/goforce/internal/constants"
	"github.com/trestletech/goforce/pkg/force"
)

const defaultUserAgent = "goforce"

// Invoker is the capability the SOAP pipeline consumes: send an envelope,
// get the raw response bytes back, or fail with a transport error.
type Invoker interface {
	Invoke(ctx context.Context, url, soapAction string, body []byte) ([]byte, error)
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger for debug output.
func WithLogger(logger force.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response body logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the retry policy for connection-level failures.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.rc.RetryMax = retryMax
		c.rc.RetryWaitMin = waitMin
		c.rc.RetryWaitMax = waitMax
	}
}

// WithHTTPClient overrides the underlying HTTP client, e.g. for custom TLS
// configuration. The client's timeout is preserved if set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.rc.HTTPClient = httpClient
		}
	}
}

// Client posts SOAP envelopes over HTTPS.
type Client struct {
	rc        *retryablehttp.Client
	logger    force.Logger
	debug     bool
	userAgent string
}

// NewClient creates a transport client with the default retry policy.
func NewClient(opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = constants.DefaultRetryMax
	rc.RetryWaitMin = constants.DefaultRetryWaitMin
	rc.RetryWaitMax = constants.DefaultRetryWaitMax
	rc.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	rc.CheckRetry = checkRetry

	client := &Client{
		rc:        rc,
		logger:    force.NopLogger{},
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// checkRetry retries connection errors and transient gateway statuses. A
// 500 is never retried: SOAP faults arrive with status 500 and must reach
// the parser.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	default:
		return false, nil
	}
}

// Invoke implements Invoker. The response body is returned for any status:
// fault envelopes arrive with non-2xx statuses and are the parser's
// business, not the transport's.
func (c *Client) Invoke(ctx context.Context, url, soapAction string, body []byte) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Content-Type", constants.ContentTypeXML)
	req.Header.Set("SOAPAction", `"`+soapAction+`"`)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/xml")

	if c.debug {
		c.logger.Debug("SOAP Request", map[string]interface{}{
			"url":    url,
			"action": soapAction,
			"body":   string(body),
		})
	}

	resp, err := c.rc.Do(req)
	if err != nil {
		return nil, &force.TransportError{Op: soapAction, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &force.TransportError{Op: soapAction, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.debug {
		c.logger.Debug("SOAP Response", map[string]interface{}{
			"status": resp.StatusCode,
			"action": soapAction,
			"body":   string(respBody),
		})
	}

	if len(respBody) == 0 {
		return nil, &force.TransportError{
			Op:  soapAction,
			Err: fmt.Errorf("empty response with status %d", resp.StatusCode),
		}
	}

	return respBody, nil
}
