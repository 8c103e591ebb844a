package bgg

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"boardgame-tracker/internal/domains/game"
	"boardgame-tracker/internal/domains/game/provider"
)

// =====================================================
// BGG CLIENT
// =====================================================

// Client is the BoardGameGeek XML API2 game provider.
type Client struct {
	config     *Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a BGG provider. HTTP calls are bounded by config.Timeout.
func NewClient(config *Config) *Client {
	limit := rate.Inf
	if config.MinInterval > 0 {
		limit = rate.Every(config.MinInterval)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (c *Client) ID() string { return ProviderID }

// IsAvailable reports whether a base URL is configured. No token is required
// for the public API.
func (c *Client) IsAvailable(ctx context.Context) bool {
	return strings.TrimSpace(c.config.BaseURL) != ""
}

// Search runs the search call, then one thing call for the first hits.
// Upstream failures are logged and yield an empty result.
func (c *Client) Search(ctx context.Context, query string) ([]game.ExternalGame, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return []game.ExternalGame{}, nil
	}

	ids, ok := c.searchIDs(ctx, q)
	if !ok || len(ids) == 0 {
		return []game.ExternalGame{}, nil
	}

	var things thingResponse
	rawQuery := "stats=1&id=" + joinEscaped(ids)
	if !c.fetchXML(ctx, "thing", c.config.thingURL(), rawQuery, &things) {
		return []game.ExternalGame{}, nil
	}

	games := make([]game.ExternalGame, 0, len(things.Items))
	for _, item := range things.Items {
		games = append(games, toExternalGame(item))
	}

	log.Debug().Str("provider", ProviderID).Str("query", q).Int("count", len(games)).Msg("[BGG] Search completed")
	return games, nil
}

// searchIDs returns up to maxThingIDs distinct ids in response order.
func (c *Client) searchIDs(ctx context.Context, q string) ([]string, bool) {
	var res searchResponse
	rawQuery := "type=boardgame&query=" + url.QueryEscape(q)
	if !c.fetchXML(ctx, "search", c.config.searchURL(), rawQuery, &res) {
		return nil, false
	}

	ids := make([]string, 0, maxThingIDs)
	seen := make(map[string]bool, maxThingIDs)
	for _, item := range res.Items {
		if len(ids) == maxThingIDs {
			break
		}
		if item.ID == "" || seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		ids = append(ids, item.ID)
	}
	return ids, true
}

// fetchXML GETs endpoint?rawQuery and decodes the body into dest.
// Any failure is logged as a warning and reported as false.
func (c *Client) fetchXML(ctx context.Context, call, endpoint, rawQuery string, dest interface{}) bool {
	logFailure := func(err error, status int) {
		ev := log.Warn().Str("provider", ProviderID).Str("call", call)
		if status != 0 {
			ev = ev.Int("status", status)
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("[BGG] Upstream call failed, returning no results")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		logFailure(err, 0)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+rawQuery, nil)
	if err != nil {
		logFailure(fmt.Errorf("build request: %w", err), 0)
		return false
	}
	req.Header.Set("Accept", "application/xml")
	req.Header.Set("User-Agent", userAgent)
	if c.config.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.BearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logFailure(err, 0)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		logFailure(nil, resp.StatusCode)
		return false
	}

	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(dest); err != nil {
		logFailure(fmt.Errorf("decode xml: %w", err), resp.StatusCode)
		return false
	}
	return true
}

func joinEscaped(ids []string) string {
	escaped := make([]string, len(ids))
	for i, id := range ids {
		escaped[i] = url.QueryEscape(id)
	}
	return strings.Join(escaped, ",")
}
