package books

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"bookgpt-be/internal/pkg/logger"

	gocache "github.com/patrickmn/go-cache"
)

const (
	defaultBaseURL = "https://www.googleapis.com/books/v1"

	// Google's own cap on maxResults.
	apiMaxResults = 40
)

// Summary is a search hit: just enough to pick a volume id.
type Summary struct {
	ID      string
	Title   string
	Authors []string
}

// Detail is the full volume record the resolver enriches into a BookRecord.
type Detail struct {
	ID          string
	Title       string
	Authors     []string
	Description string
	Thumbnail   string
	ISBN13      string
	Categories  []string
}

// Client talks to the Google Books volumes API. Search and GetVolume never
// return errors to callers: a missing key, HTTP failure or malformed payload
// degrades to an empty result, logged here.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	cache      *gocache.Cache
	log        logger.ILogger
}

func NewClient(apiKey string, log logger.ILogger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		// Search results change slowly; caching keeps repeat queries
		// off the wire.
		cache: gocache.New(1*time.Hour, 10*time.Minute),
		log:   log,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string, log logger.ILogger) *Client {
	c := NewClient(apiKey, log)
	c.baseURL = baseURL
	return c
}

// Search queries the volumes endpoint and returns up to maxResults
// summaries. Returns an empty slice on any failure.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []Summary {
	if c.apiKey == "" {
		c.log.Warn("BOOKS", "Google Books API key not configured", nil)
		return []Summary{}
	}

	cacheKey := fmt.Sprintf("search:%s:%d", query, maxResults)
	if cached, ok := c.cache.Get(cacheKey); ok {
		return cached.([]Summary)
	}

	capped := maxResults
	if capped > apiMaxResults {
		capped = apiMaxResults
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("key", c.apiKey)
	params.Add("maxResults", strconv.Itoa(capped))
	params.Add("projection", "lite")

	body, ok := c.get(ctx, c.baseURL+"/volumes?"+params.Encode(), "search")
	if !ok {
		return []Summary{}
	}

	var payload struct {
		Items []struct {
			ID         string `json:"id"`
			VolumeInfo struct {
				Title   string   `json:"title"`
				Authors []string `json:"authors"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.Error("BOOKS", "Failed to decode search response", map[string]interface{}{"error": err.Error()})
		return []Summary{}
	}

	results := make([]Summary, 0, len(payload.Items))
	for _, item := range payload.Items {
		results = append(results, Summary{
			ID:      item.ID,
			Title:   item.VolumeInfo.Title,
			Authors: item.VolumeInfo.Authors,
		})
	}
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	c.cache.Set(cacheKey, results, gocache.DefaultExpiration)
	return results
}

// GetVolume fetches full details for a volume id. Returns nil when the id is
// empty, not found (404 included), or any call/decoding step fails.
func (c *Client) GetVolume(ctx context.Context, volumeID string) *Detail {
	if c.apiKey == "" {
		c.log.Warn("BOOKS", "Google Books API key not configured", nil)
		return nil
	}
	if volumeID == "" {
		return nil
	}

	params := url.Values{}
	params.Add("key", c.apiKey)

	body, ok := c.get(ctx, c.baseURL+"/volumes/"+url.PathEscape(volumeID)+"?"+params.Encode(), "detail")
	if !ok {
		return nil
	}

	var payload struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Description         string   `json:"description"`
			Categories          []string `json:"categories"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			ImageLinks struct {
				Thumbnail      string `json:"thumbnail"`
				SmallThumbnail string `json:"smallThumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		c.log.Error("BOOKS", "Failed to decode volume response", map[string]interface{}{"error": err.Error()})
		return nil
	}

	// Prefer ISBN_13 over any other identifier type.
	isbn13 := ""
	for _, ident := range payload.VolumeInfo.IndustryIdentifiers {
		if ident.Type == "ISBN_13" {
			isbn13 = ident.Identifier
			break
		}
	}

	thumbnail := payload.VolumeInfo.ImageLinks.Thumbnail
	if thumbnail == "" {
		thumbnail = payload.VolumeInfo.ImageLinks.SmallThumbnail
	}

	return &Detail{
		ID:          payload.ID,
		Title:       payload.VolumeInfo.Title,
		Authors:     payload.VolumeInfo.Authors,
		Description: payload.VolumeInfo.Description,
		Thumbnail:   thumbnail,
		ISBN13:      isbn13,
		Categories:  payload.VolumeInfo.Categories,
	}
}

// get performs a GET and returns the body, or ok=false after logging.
// A 404 is "not found," not an error worth escalating.
func (c *Client) get(ctx context.Context, fullURL, op string) ([]byte, bool) {
	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		c.log.Error("BOOKS", "Failed to build request", map[string]interface{}{"op": op, "error": err.Error()})
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("BOOKS", "Google Books request failed", map[string]interface{}{"op": op, "error": err.Error()})
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.log.Info("BOOKS", "Volume not found", map[string]interface{}{"op": op})
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Error("BOOKS", "Google Books returned error status", map[string]interface{}{
			"op":     op,
			"status": resp.StatusCode,
		})
		return nil, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("BOOKS", "Failed to read response body", map[string]interface{}{"op": op, "error": err.Error()})
		return nil, false
	}
	return body, true
}
