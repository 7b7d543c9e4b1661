package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goalboard/goalboard/internal/entities"
)

// ErrNotFound is returned when the provider has no match for a title.
var ErrNotFound = errors.New("no matching show found")

// Provider fetches external metadata for a classified task. The year, when
// non-zero, is a disambiguation hint taken from the original title.
type Provider interface {
	FetchMetadata(ctx context.Context, title string, kind entities.ContentKind, year int) (*entities.EnrichmentCache, error)
}

// TVMazeClient fetches show metadata from the TVMaze API. The API is public
// and unauthenticated; calls are paced through an interval rate limiter so a
// large import cannot hammer it.
type TVMazeClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewTVMazeClient creates a TVMaze client. interval bounds the pause between
// consecutive requests, timeout applies per call.
func NewTVMazeClient(baseURL string, interval, timeout time.Duration) *TVMazeClient {
	if baseURL == "" {
		baseURL = "https://api.tvmaze.com"
	}
	return &TVMazeClient{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: newRateLimiter(interval),
	}
}

// FetchMetadata searches for a show by title and returns its season counts,
// status and next episode. Non-show kinds are searched the same way; TVMaze
// is the bundled provider and only covers shows, so movies and books simply
// come back ErrNotFound most of the time.
func (c *TVMazeClient) FetchMetadata(ctx context.Context, title string, kind entities.ContentKind, year int) (*entities.EnrichmentCache, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	show, err := c.searchShow(ctx, title, year)
	if err != nil {
		return nil, err
	}

	detail, err := c.fetchShowDetail(ctx, show.ID)
	if err != nil {
		return nil, err
	}

	return c.convertToCache(detail), nil
}

// searchShow queries the search endpoint and picks the best match. A year
// hint wins over the provider's own relevance order.
func (c *TVMazeClient) searchShow(ctx context.Context, title string, year int) (*tvMazeShow, error) {
	c.rateLimiter.wait()

	searchURL := fmt.Sprintf("%s/search/shows?q=%s", c.baseURL, url.QueryEscape(title))
	var results []tvMazeSearchResult
	if err := c.getJSON(ctx, searchURL, &results); err != nil {
		return nil, fmt.Errorf("search shows: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	best := &results[0].Show
	if year > 0 {
		for i := range results {
			if premiereYear(results[i].Show.Premiered) == year {
				best = &results[i].Show
				break
			}
		}
	}
	return best, nil
}

func (c *TVMazeClient) fetchShowDetail(ctx context.Context, id int) (*tvMazeShow, error) {
	c.rateLimiter.wait()

	detailURL := fmt.Sprintf("%s/shows/%d?embed[]=seasons&embed[]=nextepisode", c.baseURL, id)
	var show tvMazeShow
	if err := c.getJSON(ctx, detailURL, &show); err != nil {
		return nil, fmt.Errorf("fetch show %d: %w", id, err)
	}
	return &show, nil
}

func (c *TVMazeClient) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Goalboard/1.0 (https://github.com/goalboard/goalboard)")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *TVMazeClient) convertToCache(show *tvMazeShow) *entities.EnrichmentCache {
	cache := &entities.EnrichmentCache{
		ProviderID: show.ID,
		Title:      show.Name,
		Status:     show.Status,
		Premiered:  show.Premiered,
		SiteURL:    show.URL,
		FetchedAt:  time.Now(),
	}

	if show.Rating != nil && show.Rating.Average != nil {
		cache.Rating = *show.Rating.Average
	}
	if show.Image != nil {
		cache.ImageURL = show.Image.Original
		if cache.ImageURL == "" {
			cache.ImageURL = show.Image.Medium
		}
	}

	if show.Embedded != nil {
		for _, season := range show.Embedded.Seasons {
			// Unaired trailing seasons still count; the user can't have
			// tracked them, which is exactly the new-content signal.
			cache.TotalSeasons++
			cache.TotalEpisodes += season.EpisodeOrder
		}
		if next := show.Embedded.NextEpisode; next != nil {
			cache.NextEpisodeTitle = next.Name
			cache.NextEpisodeDate = next.AirDate
		}
	}

	return cache
}

func premiereYear(premiered string) int {
	if len(premiered) < 4 {
		return 0
	}
	year, err := strconv.Atoi(premiered[:4])
	if err != nil {
		return 0
	}
	return year
}

// TVMaze API response types (internal)

type tvMazeSearchResult struct {
	Score float64    `json:"score"`
	Show  tvMazeShow `json:"show"`
}

type tvMazeShow struct {
	ID        int             `json:"id"`
	URL       string          `json:"url"`
	Name      string          `json:"name"`
	Status    string          `json:"status"` // "Running", "Ended", "To Be Determined", "In Development"
	Premiered string          `json:"premiered"`
	Rating    *tvMazeRating   `json:"rating"`
	Image     *tvMazeImage    `json:"image"`
	Embedded  *tvMazeEmbedded `json:"_embedded"`
}

type tvMazeRating struct {
	Average *float64 `json:"average"`
}

type tvMazeImage struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

type tvMazeEmbedded struct {
	Seasons     []tvMazeSeason `json:"seasons"`
	NextEpisode *tvMazeEpisode `json:"nextepisode"`
}

type tvMazeSeason struct {
	ID           int    `json:"id"`
	Number       int    `json:"number"`
	EpisodeOrder int    `json:"episodeOrder"`
	PremiereDate string `json:"premiereDate"`
}

type tvMazeEpisode struct {
	Name    string `json:"name"`
	AirDate string `json:"airdate"`
}
