package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/techtrack/internal/source"
)

// Client is a thin HTTP client for the GitHub REST search API. It
// handles optional Bearer token authentication, JSON unmarshaling, and
// automatic retry with exponential backoff on rate-limited responses.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
}

// NewClient creates a new GitHub HTTP client. The token may be empty;
// unauthenticated requests work with a lower rate limit.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
	}
}

// SearchRepositories queries /search/repositories sorted by stars.
func (c *Client) SearchRepositories(
	ctx context.Context,
	query string,
	page int,
	perPage int,
) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "stars")
	params.Set("order", "desc")
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var result SearchResponse
	if err := c.get(ctx, "/search/repositories?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs an HTTP GET, handling auth, rate limiting with
// exponential backoff, and JSON deserialization.
func (c *Client) get(ctx context.Context, path string, result any) error {
	reqURL := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Accept", "application/vnd.github+json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request GET %s: %w", path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if rateLimited(resp) {
			waitDuration := retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (%d) on GET %s", resp.StatusCode, path)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(waitDuration):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &source.AuthError{
				Source:  "github",
				Message: "authentication failed (401): check your GitHub token",
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var ghErr errorResponse
			if json.Unmarshal(respBody, &ghErr) == nil && ghErr.Message != "" {
				return fmt.Errorf(
					"github API error (%d) on GET %s: %s",
					resp.StatusCode, path, ghErr.Message,
				)
			}
			return fmt.Errorf(
				"unexpected status %d on GET %s: %s",
				resp.StatusCode, path, string(respBody),
			)
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// rateLimited reports whether the response is a rate-limit rejection.
// GitHub uses 403 with a zeroed remaining-quota header as well as 429.
func rateLimited(resp *http.Response) bool {
	if resp.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return resp.StatusCode == http.StatusForbidden &&
		resp.Header.Get("X-Ratelimit-Remaining") == "0"
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration. Falls back to exponential backoff if the header is missing.
func retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}

	// Exponential backoff: 1s, 2s, 4s, ...
	backoff := time.Duration(1<<uint(attempt)) * time.Second
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	return backoff
}
