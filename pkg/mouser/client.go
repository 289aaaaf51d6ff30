package mouser

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/mouser/pkg/buildinfo"
	"github.com/matzehuels/mouser/pkg/errors"
)

const (
	// DefaultBaseURL is the versioned root all endpoints are resolved against.
	DefaultBaseURL = "https://api.mouser.com/api/v2/"

	httpTimeout = 30 * time.Second
)

// Client holds the HTTP transport, the API key and the base URL shared by
// all operations. It is read-only after construction and safe for
// concurrent use.
type Client struct {
	http      *http.Client
	apiKey    Secret
	baseURL   *url.URL
	userAgent string
	logger    *log.Logger
}

// Option configures a [Client].
type Option func(*Client) error

// WithBaseURL overrides [DefaultBaseURL]. A missing trailing slash is added
// so relative endpoints resolve beneath the path.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if err := errors.ValidateURL(raw); err != nil {
			return err
		}
		u, err := parseBaseURL(raw)
		if err != nil {
			return err
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New(errors.ErrCodeInvalidInput, "nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTimeout sets the timeout of the client's HTTP transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "negative timeout %s", d)
		}
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
		return nil
	}
}

// WithLogger sets the logger used for request tracing at debug level.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// NewClient creates a Client authenticating with apiKey.
//
// Returns a [*MessageError] with code [errors.ErrCodeUnauthorized] if apiKey
// is empty, or the error of the first failing option.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, newMessageError(errors.ErrCodeUnauthorized, "API key is empty")
	}

	base, err := parseBaseURL(DefaultBaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:      &http.Client{Timeout: httpTimeout},
		apiKey:    NewSecret(apiKey),
		baseURL:   base,
		userAgent: "mouser/" + buildinfo.Version + " (https://github.com/matzehuels/mouser)",
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// BaseURL returns the root endpoints are resolved against.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Search returns the search facade bound to c.
func (c *Client) Search() *Search {
	return &Search{client: c}
}

// PostJSON POSTs body, encoded as JSON, to endpoint and returns the raw
// response text. The body is returned for any HTTP status; the API reports
// semantic failures inside it. Transport failures yield a [*TransportError].
func (c *Client) PostJSON(ctx context.Context, endpoint string, body any) (string, error) {
	op := http.MethodPost + " " + endpoint
	payload, err := json.Marshal(body)
	if err != nil {
		return "", &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}
	return c.doRequest(ctx, http.MethodPost, endpoint, payload)
}

// GetText performs a GET against endpoint and returns the raw response text.
func (c *Client) GetText(ctx context.Context, endpoint string) (string, error) {
	return c.doRequest(ctx, http.MethodGet, endpoint, nil)
}

// ParseResponse decodes text into v. On failure it returns a [*DecodeError]
// carrying text verbatim, with the API key scrubbed.
func (c *Client) ParseResponse(text string, v any) error {
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return &DecodeError{Err: err, Text: c.apiKey.Redact(text)}
	}
	return nil
}

func (c *Client) endpointURL(endpoint string) *url.URL {
	u := c.baseURL.ResolveReference(&url.URL{Path: strings.TrimPrefix(endpoint, "/")})
	q := u.Query()
	q.Set("apiKey", c.apiKey.Expose())
	u.RawQuery = q.Encode()
	return u
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, payload []byte) (string, error) {
	op := method + " " + endpoint

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(endpoint).String(), body)
	if err != nil {
		return "", &TransportError{Op: op, Err: c.scrub(err)}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "request_id", requestID, "err", c.scrub(err))
		return "", &TransportError{Op: op, Err: c.scrub(err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: op, Err: fmt.Errorf("read response body: %w", c.scrub(err))}
	}

	c.logger.Debug("response",
		"op", op,
		"status", resp.StatusCode,
		"bytes", len(data),
		"request_id", requestID,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("non-success status, decoding body anyway", "op", op, "status", resp.StatusCode)
	}
	return string(data), nil
}

// scrub removes the API key from err. *url.Error embeds the full request
// URL, query string included, so its URL is rewritten in place.
func (c *Client) scrub(err error) error {
	var ue *url.Error
	if stderrors.As(err, &ue) {
		ue.URL = c.apiKey.Redact(ue.URL)
		return err
	}
	msg := err.Error()
	if clean := c.apiKey.Redact(msg); clean != msg {
		return &redactedError{msg: clean, err: err}
	}
	return err
}

// redactedError replaces the message of err while keeping it in the chain,
// so errors.Is still matches context.Canceled and friends.
type redactedError struct {
	msg string
	err error
}

func (e *redactedError) Error() string { return e.msg }
func (e *redactedError) Unwrap() error { return e.err }

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid base URL")
	}
	return u, nil
}
