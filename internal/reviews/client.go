package reviews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	// APIKeyHeader carries the configured API key on authenticated endpoints.
	APIKeyHeader = "X-API-Key"

	// RequestIDHeader carries a per-request UUID for server-side correlation.
	RequestIDHeader = "X-Request-ID"

	// DefaultRateLimit is the client-side pacing in requests per second.
	DefaultRateLimit = 10.0

	// DefaultLimit is the page size used when the caller does not pick one.
	DefaultLimit = 50

	// DateLayout is the format of the list endpoint's date filter.
	DateLayout = "2006-01-02"
)

// API paths.
const (
	papersPath   = "/v1/papers"
	commentsPath = "/public/papers/%s/comments"
)

// Client is an HTTP client for the paper reviews API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
	baseURL    string
	apiKey     string
	userAgent  string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the key sent on authenticated endpoints.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the request pacing in requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a client rooted at baseURL. The base URL is used
// verbatim; paths are appended to it without normalization.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		// No timeout: the transport default applies.
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		logger:     slog.Default(),
		baseURL:    baseURL,
		userAgent:  "paper-cli",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthHeaders returns the headers for authenticated endpoints. The map is
// empty when no key is configured.
func AuthHeaders(apiKey string) map[string]string {
	headers := map[string]string{}
	if apiKey != "" {
		headers[APIKeyHeader] = apiKey
	}
	return headers
}

// ListParams are the query parameters of the paper list endpoint.
// Empty strings and a nil Offset are left out of the query.
type ListParams struct {
	Date       string
	Interest   string
	Categories string
	Limit      int
	Offset     *int
}

// Query encodes the parameters. limit is always present.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Date != "" {
		q.Set("date", p.Date)
	}
	if p.Interest != "" {
		q.Set("interest", p.Interest)
	}
	if p.Categories != "" {
		q.Set("categories", p.Categories)
	}
	if p.Offset != nil {
		q.Set("offset", strconv.Itoa(*p.Offset))
	}
	return q
}

// PageParams are the query parameters of the comment list endpoint.
type PageParams struct {
	Limit  int
	Offset *int
}

// Query encodes the parameters. limit is always present.
func (p PageParams) Query() url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	if p.Offset != nil {
		q.Set("offset", strconv.Itoa(*p.Offset))
	}
	return q
}

// ValidateDate checks that s is a calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return nil
}

// ListPapers fetches a page of papers.
func (c *Client) ListPapers(ctx context.Context, params ListParams) ([]Paper, error) {
	var papers []Paper
	err := c.do(ctx, http.MethodGet, papersPath, params.Query(), AuthHeaders(c.apiKey), nil, &papers)
	if err != nil {
		return nil, err
	}
	return papers, nil
}

// GetPaper fetches a single paper with its comments.
func (c *Client) GetPaper(ctx context.Context, paperKey string) (*Paper, error) {
	var paper Paper
	err := c.do(ctx, http.MethodGet, papersPath+"/"+paperKey, nil, AuthHeaders(c.apiKey), nil, &paper)
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// ListComments fetches a page of public comments for a paper.
func (c *Client) ListComments(ctx context.Context, paperKey string, params PageParams) ([]Comment, error) {
	var comments []Comment
	err := c.do(ctx, http.MethodGet, fmt.Sprintf(commentsPath, paperKey), params.Query(), nil, nil, &comments)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment and returns it as stored by the server.
func (c *Client) AddComment(ctx context.Context, paperKey string, comment NewComment) (*Comment, error) {
	var created Comment
	err := c.do(ctx, http.MethodPost, fmt.Sprintf(commentsPath, paperKey), nil, nil, comment, &created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// do sends one request and decodes a 200 response into result.
// Any other status becomes an *APIError holding the raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, headers map[string]string, body any, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	log := c.logger.With("method", method, "url", reqURL, "request_id", requestID)
	log.Debug("sending request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	log.Debug("received response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       readErrorBody(resp.Body),
			Method:     method,
			URL:        reqURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrInvalidResponse, err)
	}

	return nil
}

// readErrorBody returns the response body as text.
func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Sprintf("(failed to read response body: %v)", err)
	}
	return string(data)
}
