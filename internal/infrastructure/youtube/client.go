package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fridgechef/backend/internal/domain"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the YouTube Data API v3 endpoint
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// maxPageSize is the largest maxResults the search endpoint accepts
const maxPageSize = 50

// Config holds the YouTube client settings
type Config struct {
	APIKey            string
	BaseURL           string
	RegionCode        string
	RelevanceLanguage string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	RetryCount        int
	RetryWaitTime     time.Duration
	RetryMaxWaitTime  time.Duration
}

// Client handles communication with the YouTube Data API
type Client struct {
	http              *resty.Client
	apiKey            string
	regionCode        string
	relevanceLanguage string
	rateLimiter       *rate.Limiter
	log               *zap.Logger
}

// NewClient creates a new YouTube API client
func NewClient(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "FridgeChef/1.0").
		SetRetryCount(cfg.RetryCount).
		AddRetryCondition(shouldRetry)
	if cfg.RetryWaitTime > 0 {
		httpClient.SetRetryWaitTime(cfg.RetryWaitTime)
	}
	if cfg.RetryMaxWaitTime > 0 {
		httpClient.SetRetryMaxWaitTime(cfg.RetryMaxWaitTime)
	}

	return &Client{
		http:              httpClient,
		apiKey:            cfg.APIKey,
		regionCode:        cfg.RegionCode,
		relevanceLanguage: cfg.RelevanceLanguage,
		rateLimiter:       rate.NewLimiter(limit, burst),
		log:               log.Named("youtube"),
	}
}

// shouldRetry retries transport failures, throttling and server errors.
// Cancelled or expired contexts are never retried.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// SearchVideos runs a keyword search and returns candidates in search order,
// each annotated with its embed eligibility.
func (c *Client) SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.VideoCandidate, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxResults > maxPageSize {
		maxResults = maxPageSize
	}

	params := map[string]string{
		"part":            "snippet",
		"type":            "video",
		"videoEmbeddable": "true",
		"safeSearch":      "moderate",
		"maxResults":      strconv.Itoa(maxResults),
		"q":               query,
	}
	if c.regionCode != "" {
		params["regionCode"] = c.regionCode
	}
	if c.relevanceLanguage != "" {
		params["relevanceLanguage"] = c.relevanceLanguage
	}

	var search searchResponse
	if err := c.get(ctx, "/search", params, &search); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(search.Items))
	for _, item := range search.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	if len(ids) == 0 {
		c.log.Info("no videos found", zap.String("query", query))
		return []domain.VideoCandidate{}, nil
	}

	statuses, err := c.videoStatuses(ctx, ids)
	if err != nil {
		return nil, err
	}

	candidates := MapToCandidates(search.Items, statuses)
	c.log.Debug("video search",
		zap.String("query", query),
		zap.Int("results", len(candidates)),
	)
	return candidates, nil
}

// videoStatuses looks up upload, privacy and embed status for the given videos
func (c *Client) videoStatuses(ctx context.Context, ids []string) (map[string]videoStatus, error) {
	var videos videosResponse
	err := c.get(ctx, "/videos", map[string]string{
		"part":       "status",
		"id":         strings.Join(ids, ","),
		"maxResults": strconv.Itoa(len(ids)),
	}, &videos)
	if err != nil {
		return nil, err
	}

	statuses := make(map[string]videoStatus, len(videos.Items))
	for _, item := range videos.Items {
		statuses[item.ID] = item.Status
	}
	return statuses, nil
}

// get performs a rate-limited GET request and decodes the JSON body into result
func (c *Client) get(ctx context.Context, path string, params map[string]string, result interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	var apiErr apiErrorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("key", c.apiKey).
		SetResult(result).
		SetError(&apiErr).
		Get(path)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrVideoSearchFailure, err)
	}

	if resp.IsError() {
		c.log.Warn("api error",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode()),
			zap.String("reason", apiErr.reason()),
		)
		message := apiErr.Error.Message
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		if resp.StatusCode() == http.StatusTooManyRequests || apiErr.reason() == "quotaExceeded" {
			return fmt.Errorf("%w: %w: %s", domain.ErrVideoSearchFailure, domain.ErrRateLimited, message)
		}
		return fmt.Errorf("%w: status %d: %s", domain.ErrVideoSearchFailure, resp.StatusCode(), message)
	}

	return nil
}
