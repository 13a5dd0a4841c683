// Package quotes fetches a random programming quote for the header
// greeting. The API is best-effort: any failure falls back to a canned
// quote, never to an error the UI has to handle.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// Quote is a programming quote with attribution.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// fallbackQuotes is served when the quote API is unreachable.
var fallbackQuotes = []Quote{
	{
		Text:   "The only way to learn a new programming language is by writing programs in it.",
		Author: "Dennis Ritchie",
	},
	{
		Text:   "Sometimes it's better to leave something alone, to pause, and that's very true of programming.",
		Author: "Joyce Wheeler",
	},
	{
		Text:   "Programming is not about what you know; it's about what you can figure out.",
		Author: "Chris Pine",
	},
}

// Client is a thin HTTP client for a programming-quotes API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a quotes client for the given API base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Random fetches a random quote from the API.
func (c *Client) Random(ctx context.Context) (Quote, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+"/quotes/random", nil,
	)
	if err != nil {
		return Quote{}, fmt.Errorf("creating quote request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, fmt.Errorf("fetching quote: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, fmt.Errorf("reading quote response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Quote{}, fmt.Errorf("unexpected status %d fetching quote", resp.StatusCode)
	}

	var payload struct {
		En     string `json:"en"`
		Author string `json:"author"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Quote{}, fmt.Errorf("unmarshaling quote: %w", err)
	}
	if payload.En == "" {
		return Quote{}, fmt.Errorf("quote API returned an empty quote")
	}

	return Quote{Text: payload.En, Author: payload.Author}, nil
}

// Fallback returns one of the canned quotes.
func Fallback() Quote {
	return fallbackQuotes[rand.Intn(len(fallbackQuotes))]
}
