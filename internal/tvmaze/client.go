package tvmaze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"airmail/internal/episodes"
)

const userAgent = "airmail/0.1.0"

// ErrNoEpisodes indicates the show was found but carries no embedded
// episode list. Callers treat it like any other fetch failure.
var ErrNoEpisodes = errors.New("tvmaze: show has no episodes")

// Listing is the consumed portion of a TVMaze single-search response.
type Listing struct {
	ShowID   int
	ShowName string
	Episodes []episodes.Episode
}

// Source is the episode retrieval operation the dispatcher depends on.
type Source interface {
	ShowEpisodes(ctx context.Context, query string) (*Listing, error)
}

// Client fetches show listings from the TVMaze API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ Source = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a TVMaze client.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tvmaze base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type showPayload struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Embedded struct {
		Episodes []episodePayload `json:"episodes"`
	} `json:"_embedded"`
}

type episodePayload struct {
	ID      int    `json:"id"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Name    string `json:"name"`
	AirDate string `json:"airdate"`
	Summary string `json:"summary"`
}

// ShowEpisodes resolves query through the single-search endpoint and returns
// the show's full episode list. Summary text has its HTML paragraph wrappers
// stripped before it reaches callers.
func (c *Client) ShowEpisodes(ctx context.Context, query string) (*Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query must not be empty")
	}

	endpoint, err := url.Parse(c.baseURL + "/singlesearch/shows")
	if err != nil {
		return nil, fmt.Errorf("parse tvmaze url: %w", err)
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("embed", "episodes")
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tvmaze search returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload showPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tvmaze response: %w", err)
	}
	if len(payload.Embedded.Episodes) == 0 {
		return nil, ErrNoEpisodes
	}

	listing := &Listing{
		ShowID:   payload.ID,
		ShowName: payload.Name,
		Episodes: make([]episodes.Episode, 0, len(payload.Embedded.Episodes)),
	}
	for _, ep := range payload.Embedded.Episodes {
		listing.Episodes = append(listing.Episodes, episodes.Episode{
			ID:      ep.ID,
			Season:  ep.Season,
			Number:  ep.Number,
			Name:    ep.Name,
			AirDate: ep.AirDate,
			Summary: CleanSummary(ep.Summary),
		})
	}
	return listing, nil
}

var paragraphTags = regexp.MustCompile(`</?p>`)

// CleanSummary strips the paragraph tags TVMaze wraps summaries in.
func CleanSummary(summary string) string {
	return strings.TrimSpace(paragraphTags.ReplaceAllString(summary, ""))
}
