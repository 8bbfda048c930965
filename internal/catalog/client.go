// Package catalog implements the lookup against the external games
// catalog. The backlog never calls this directly; the transport layer runs
// a search and builds suggestion drafts from the results.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is one catalog candidate a suggestion draft can be built from.
type Result struct {
	ExternalRef  int64  `json:"externalRef"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	CoverURL     string `json:"coverUrl,omitempty"`
	ReleaseDate  string `json:"releaseDate,omitempty"`
	SecondaryRef string `json:"secondaryRef,omitempty"`
}

// Client queries a RAWG-style games API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a catalog client for the given API base URL and key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// wire shapes of the catalog response
type searchResponse struct {
	Results []searchEntry `json:"results"`
}

type searchEntry struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description_raw"`
	BackgroundImage string `json:"background_image"`
	Released        string `json:"released"`
	Stores          []struct {
		Store struct {
			ID int64 `json:"id"`
		} `json:"store"`
	} `json:"stores"`
}

// Search runs a free-text query against the catalog and maps the response
// onto the shared result shape.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("search", query)
	q.Set("page_size", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	results := make([]Result, 0, len(body.Results))
	for _, entry := range body.Results {
		r := Result{
			ExternalRef: entry.ID,
			Title:       entry.Name,
			Description: entry.Description,
			CoverURL:    entry.BackgroundImage,
			ReleaseDate: entry.Released,
		}
		if len(entry.Stores) > 0 {
			r.SecondaryRef = strconv.FormatInt(entry.Stores[0].Store.ID, 10)
		}
		results = append(results, r)
	}
	return results, nil
}
