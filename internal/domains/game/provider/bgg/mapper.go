package bgg

import (
	"math"
	"strconv"
	"strings"

	"boardgame-tracker/internal/domains/game"
)

const (
	linkTypeCategory = "boardgamecategory"
	linkTypeMechanic = "boardgamemechanic"
)

func toExternalGame(item thingItem) game.ExternalGame {
	return game.ExternalGame{
		ExternalID:       item.ID,
		APIRef:           ProviderID,
		Name:             primaryName(item.Names),
		ImageURL:         optionalText(item.Image),
		Year:             intValue(item.YearPublished),
		MinPlayers:       intValue(item.MinPlayers),
		MaxPlayers:       intValue(item.MaxPlayers),
		PlayTime:         intValue(item.PlayingTime),
		ComplexityWeight: floatValue(item.AverageWeight),
		Categories:       collectValues(item.Links, linkTypeCategory),
		Mechanics:        collectValues(item.Links, linkTypeMechanic),
		Description:      optionalText(item.Description),
	}
}

// primaryName picks the name tagged primary, else the first one.
func primaryName(names []valueAttr) string {
	for _, n := range names {
		if n.Type == "primary" {
			return n.Value
		}
	}
	if len(names) > 0 {
		return names[0].Value
	}
	return ""
}

func intValue(v *valueAttr) *int {
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.Value))
	if err != nil {
		return nil
	}
	return &n
}

func floatValue(v *valueAttr) *float64 {
	if v == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.Value), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// collectValues returns the values of links of the given type, or nil when
// no link has that type.
func collectValues(links []valueAttr, linkType string) []string {
	var values []string
	matched := false
	for _, l := range links {
		if l.Type != linkType {
			continue
		}
		matched = true
		if l.Value != "" {
			values = append(values, l.Value)
		}
	}
	if !matched {
		return nil
	}
	if values == nil {
		values = []string{}
	}
	return values
}
