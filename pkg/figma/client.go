package figma

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	figmaAPIBase = "https://api.figma.com/v1"
)

// ErrorKind classifies an APIError so callers can branch on the failure mode
// without string matching.
type ErrorKind int

const (
	// ErrTransient marks network failures and 5xx responses that may succeed on retry.
	ErrTransient ErrorKind = iota
	// ErrRateLimited marks 429 responses.
	ErrRateLimited
	// ErrNotFound marks 404 responses (bad file key or node ID).
	ErrNotFound
	// ErrUnauthorized marks 401/403 responses (bad or missing token).
	ErrUnauthorized
)

// String returns a short label for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrRateLimited:
		return "rate limited"
	case ErrNotFound:
		return "not found"
	case ErrUnauthorized:
		return "unauthorized"
	default:
		return "transient"
	}
}

// APIError is returned for failed Figma API requests. Use errors.As to inspect
// the Kind and decide whether the failure is retryable.
type APIError struct {
	Kind       ErrorKind
	StatusCode int // 0 for network-level failures
	Message    string
	Err        error // wrapped cause, may be nil
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("figma API %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("figma API %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

func classifyStatus(code int) ErrorKind {
	switch {
	case code == http.StatusTooManyRequests:
		return ErrRateLimited
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return ErrTransient
	}
}

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic and optimized transport settings for handling large files.
type Client struct {
	accessToken string
	baseURL     string
	httpClient  *http.Client
	maxRetries  int
	retryDelay  func(attempt int) time.Duration
}

// NewClient creates a new Figma API client with the provided personal access token.
// The client is configured with optimized HTTP transport settings including connection pooling,
// disabled HTTP/2 (for large file stability), and a 10-minute timeout for very large files.
func NewClient(accessToken string) *Client {
	// Configure transport for better handling of large files
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		DisableKeepAlives:   false,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	return &Client{
		accessToken: accessToken,
		baseURL:     figmaAPIBase,
		httpClient: &http.Client{
			Timeout:   10 * time.Minute, // Increased timeout for very large files
			Transport: transport,
		},
		maxRetries: 3,
		retryDelay: func(attempt int) time.Duration {
			return time.Duration(attempt) * 2 * time.Second
		},
	}
}

// SetBaseURL overrides the API base URL. Intended for tests against a local server.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimSuffix(base, "/")
}

// get performs a GET request with retry on rate limits and server errors,
// decoding the JSON response into out.
func (c *Client) get(endpoint string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("X-Figma-Token", c.accessToken)
		// Disable HTTP/2 to avoid stream errors with large files
		req.Header.Set("Connection", "close")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = &APIError{Kind: ErrTransient, Message: "request failed", Err: err}
			if attempt < c.maxRetries {
				time.Sleep(c.retryDelay(attempt))
				continue
			}
			return lastErr
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			kind := classifyStatus(resp.StatusCode)
			lastErr = &APIError{Kind: kind, StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
			if attempt < c.maxRetries && (kind == ErrRateLimited || resp.StatusCode >= 500) {
				time.Sleep(c.retryDelay(attempt))
				continue
			}
			return lastErr
		}

		if readErr != nil {
			lastErr = &APIError{Kind: ErrTransient, Message: "read response body", Err: readErr}
			if attempt < c.maxRetries {
				time.Sleep(c.retryDelay(attempt))
				continue
			}
			return lastErr
		}

		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		return nil
	}

	return lastErr
}

// GetFile retrieves complete file data from the Figma API including document structure, styles, and metadata.
// Implements automatic retry logic (up to 3 attempts) with backoff for handling rate limits
// and temporary failures. The request automatically retries on 429 (rate limit) and 5xx (server error) responses.
func (c *Client) GetFile(fileKey string) (*FileResponse, error) {
	var fileResp FileResponse
	if err := c.get("/files/"+url.PathEscape(fileKey), &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves specific nodes from a Figma file by their IDs.
// This is far cheaper than GetFile for large files when only a few frames are needed.
func (c *Client) GetFileNodes(fileKey string, nodeIDs []string) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, errors.New("no node IDs provided")
	}

	endpoint := fmt.Sprintf("/files/%s/nodes?ids=%s",
		url.PathEscape(fileKey), url.QueryEscape(strings.Join(nodeIDs, ",")))

	var nodesResp NodesResponse
	if err := c.get(endpoint, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// GetImages requests rendered images for the given nodes and returns temporary download URLs.
// Format must be one of png, svg, jpg, pdf; scale applies to raster formats only.
func (c *Client) GetImages(fileKey string, nodeIDs []string, format string, scale float64) (*ImagesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, errors.New("no node IDs provided")
	}

	endpoint := fmt.Sprintf("/images/%s?ids=%s&format=%s&scale=%g",
		url.PathEscape(fileKey), url.QueryEscape(strings.Join(nodeIDs, ",")), url.QueryEscape(format), scale)

	var imagesResp ImagesResponse
	if err := c.get(endpoint, &imagesResp); err != nil {
		return nil, err
	}
	if imagesResp.Err != "" {
		return nil, &APIError{Kind: ErrTransient, Message: imagesResp.Err}
	}
	return &imagesResp, nil
}

// GetLocalVariables retrieves the design variables defined locally in a file,
// including every mode's value for multi-mode (theming) collections. The
// endpoint needs a token with the file_variables scope and returns 404 for
// files without variables.
func (c *Client) GetLocalVariables(fileKey string) (*VariablesResponse, error) {
	var varsResp VariablesResponse
	if err := c.get("/files/"+url.PathEscape(fileKey)+"/variables/local", &varsResp); err != nil {
		return nil, err
	}
	return &varsResp, nil
}

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// Returns an error if the URL format is invalid or if the URL doesn't match the expected Figma domain pattern.
func ExtractFileKey(figmaURL string) (string, error) {
	// Match patterns like:
	// https://www.figma.com/file/ABC123/Design-Name
	// https://www.figma.com/design/ABC123/Design-Name
	// Anchored to ensure the entire URL matches the expected pattern and prevent bypass attacks.
	re := regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)
	matches := re.FindStringSubmatch(figmaURL)

	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

// ExtractNodeIDs extracts node IDs from a Figma URL. Node IDs appear as a
// node-id query parameter (with ":" URL-encoded as "-"), a hash fragment,
// or a /nodes/ path segment. Returns an empty slice when no node IDs are present.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string

	if m := regexp.MustCompile(`[?&]node-id=([^&#]*)`).FindStringSubmatch(figmaURL); len(m) == 2 {
		raw = m[1]
	} else if m := regexp.MustCompile(`/nodes/([^/?#]+)`).FindStringSubmatch(figmaURL); len(m) == 2 {
		raw = m[1]
	} else if m := regexp.MustCompile(`#(.+)$`).FindStringSubmatch(figmaURL); len(m) == 2 {
		raw = m[1]
	}

	if raw == "" {
		return []string{}, nil
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid node-id encoding: %w", err)
	}

	ids := make([]string, 0, 2)
	for _, part := range strings.Split(decoded, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		// The web UI encodes "123:456" as "123-456" in URLs.
		if !strings.Contains(id, ":") {
			id = strings.Replace(id, "-", ":", 1)
		}
		ids = append(ids, id)
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes duplicate IDs preserving first-seen order.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}
	return result
}
