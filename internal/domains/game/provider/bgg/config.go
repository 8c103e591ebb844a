package bgg

import (
	"time"

	"boardgame-tracker/internal/domains/game"
)

const (
	// ProviderID is the id used in GAME_PROVIDERS_ENABLED and stored as api_ref.
	ProviderID = game.APIRefBGG

	// maxThingIDs is how many search hits are expanded with a thing call.
	maxThingIDs = 10

	maxResponseBytes = 5 << 20
	userAgent        = "boardgame-tracker/1.0"
)

type Config struct {
	BaseURL     string        // e.g. https://boardgamegeek.com/xmlapi2
	BearerToken string        // optional; sent as Authorization: Bearer
	Timeout     time.Duration // per HTTP call
	MinInterval time.Duration // minimum spacing between calls; 0 disables
}

func (c *Config) searchURL() string {
	return c.BaseURL + "/search"
}

func (c *Config) thingURL() string {
	return c.BaseURL + "/thing"
}
