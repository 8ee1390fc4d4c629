// Package catalog talks to the Jikan v4 API, the external read-only
// anime metadata service.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"aniview/internal/ratelimit"
	"aniview/pkg/logger"
	"aniview/pkg/models"
)

// DefaultBaseURL is the public Jikan v4 endpoint
const DefaultBaseURL = "https://api.jikan.moe/v4"

// Client fetches anime data from the catalog API. Every request passes
// through the governor first, so concurrent callers sharing one Client
// stay inside the upstream quota.
type Client struct {
	baseURL  string
	http     *http.Client
	governor *ratelimit.Governor
}

// NewClient creates a catalog client. The governor is required; the
// base URL falls back to the public endpoint when empty.
func NewClient(baseURL string, timeout time.Duration, governor *ratelimit.Governor) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		governor: governor,
	}
}

// envelope is the `{ data: ... }` wrapper every Jikan response uses
type envelope[T any] struct {
	Data T `json:"data"`
}

// Search queries the filtered anime listing. Upstream failures degrade
// to an empty result so the caller always has something renderable.
func (c *Client) Search(ctx context.Context, req models.CatalogSearchRequest) []models.Anime {
	models.NormalizeCatalogSearch(&req)

	params := url.Values{}
	params.Set("sfw", "true")
	params.Set("limit", strconv.Itoa(req.Limit))
	if req.Query != "" {
		params.Set("q", req.Query)
	}
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Status != "" {
		params.Set("status", req.Status)
	}
	if req.GenreID != "" {
		params.Set("genres", req.GenreID)
	}
	if req.Page > 0 {
		params.Set("page", strconv.Itoa(req.Page))
	}

	return c.listAnime(ctx, "/anime?"+params.Encode())
}

// Top returns the overall top-rated anime
func (c *Client) Top(ctx context.Context, limit int) []models.Anime {
	return c.listAnime(ctx, fmt.Sprintf("/top/anime?limit=%d", clampLimit(limit)))
}

// TopAiring returns the top currently-airing anime
func (c *Client) TopAiring(ctx context.Context, limit int) []models.Anime {
	return c.listAnime(ctx, fmt.Sprintf("/top/anime?filter=airing&limit=%d", clampLimit(limit)))
}

// TopMovies returns the top-rated anime movies
func (c *Client) TopMovies(ctx context.Context, limit int) []models.Anime {
	return c.listAnime(ctx, fmt.Sprintf("/top/anime?type=movie&limit=%d", clampLimit(limit)))
}

// MoviesByGenre returns movies for one genre, best scored first
func (c *Client) MoviesByGenre(ctx context.Context, genreID string) []models.Anime {
	params := url.Values{}
	params.Set("type", "movie")
	params.Set("genres", genreID)
	params.Set("order_by", "score")
	params.Set("sort", "desc")
	params.Set("limit", "24")
	return c.listAnime(ctx, "/anime?"+params.Encode())
}

// SeasonNow returns the current season's anime
func (c *Client) SeasonNow(ctx context.Context, limit int) []models.Anime {
	return c.listAnime(ctx, fmt.Sprintf("/seasons/now?limit=%d", clampLimit(limit)))
}

// GetAnime fetches the full detail record for one anime. A 404 from the
// upstream is surfaced as models.ErrAnimeNotFound; other failures wrap
// models.ErrCatalogUpstream.
func (c *Client) GetAnime(ctx context.Context, id int64) (*models.Anime, error) {
	var out envelope[models.Anime]
	status, err := c.get(ctx, fmt.Sprintf("/anime/%d/full", id), &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, models.ErrAnimeNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %d: %w", status, models.ErrCatalogUpstream)
	}
	return &out.Data, nil
}

// Characters returns the character listing for an anime. Degrades to an
// empty slice on upstream failure.
func (c *Client) Characters(ctx context.Context, id int64) []models.Character {
	var out envelope[[]models.Character]
	status, err := c.get(ctx, fmt.Sprintf("/anime/%d/characters", id), &out)
	if err != nil || status != http.StatusOK {
		c.logDegraded("characters", status, err)
		return nil
	}
	return out.Data
}

// Episodes returns the episode listing for an anime. Degrades to an
// empty slice on upstream failure.
func (c *Client) Episodes(ctx context.Context, id int64) []models.Episode {
	var out envelope[[]models.Episode]
	status, err := c.get(ctx, fmt.Sprintf("/anime/%d/episodes", id), &out)
	if err != nil || status != http.StatusOK {
		c.logDegraded("episodes", status, err)
		return nil
	}
	return out.Data
}

// Relations returns related catalog entries for an anime. Degrades to an
// empty slice on upstream failure.
func (c *Client) Relations(ctx context.Context, id int64) []models.Relation {
	var out envelope[[]models.Relation]
	status, err := c.get(ctx, fmt.Sprintf("/anime/%d/relations", id), &out)
	if err != nil || status != http.StatusOK {
		c.logDegraded("relations", status, err)
		return nil
	}
	return out.Data
}

// listAnime runs one listing request and de-duplicates the result.
// Any failure degrades to an empty slice.
func (c *Client) listAnime(ctx context.Context, path string) []models.Anime {
	var out envelope[[]models.Anime]
	status, err := c.get(ctx, path, &out)
	if err != nil || status != http.StatusOK {
		c.logDegraded(path, status, err)
		return nil
	}
	return dedupeByID(out.Data)
}

// get issues one rate-governed GET and decodes the body into out when
// the status is 200. The status is returned either way so callers can
// distinguish not-found from transport failure.
func (c *Client) get(ctx context.Context, path string, out interface{}) (int, error) {
	if err := c.governor.Acquire(ctx); err != nil {
		return 0, fmt.Errorf("rate governor: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, fmt.Errorf("build catalog request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	logger.Catalog(path, resp.StatusCode, int(time.Since(start).Milliseconds()))

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode catalog response: %w", err)
	}
	return resp.StatusCode, nil
}

// dedupeByID filters by mal_id keeping the first occurrence only; the
// upstream occasionally returns overlapping pages.
func dedupeByID(list []models.Anime) []models.Anime {
	seen := make(map[int64]bool, len(list))
	result := list[:0]
	for _, anime := range list {
		if seen[anime.MalID] {
			continue
		}
		seen[anime.MalID] = true
		result = append(result, anime)
	}
	return result
}

func (c *Client) logDegraded(endpoint string, status int, err error) {
	logger.WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"status":   status,
		"error":    errString(err),
	}).Warn("catalog fetch degraded to empty result")
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 25 {
		return 10
	}
	return limit
}
