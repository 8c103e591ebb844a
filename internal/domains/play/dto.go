package play

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// playedAtLayouts are tried in order; a bare date means midnight UTC.
var playedAtLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// ParsePlayedAt accepts an RFC 3339 timestamp or a plain date.
func ParsePlayedAt(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range playedAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("must be an ISO 8601 date or timestamp")
}

type CreatePlayLogRequest struct {
	GameID          string  `json:"game_id"`
	PlayedAt        string  `json:"played_at"`
	DurationMinutes *int    `json:"duration_minutes"`
	PlayersCount    *int    `json:"players_count"`
	Notes           *string `json:"notes"`
}

func (r CreatePlayLogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GameID, validation.Required, is.UUID),
		validation.Field(&r.PlayedAt,
			validation.Required,
			validation.By(func(value interface{}) error {
				s, _ := value.(string)
				if s == "" {
					return nil
				}
				_, err := ParsePlayedAt(s)
				return err
			}),
		),
		validation.Field(&r.DurationMinutes, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.PlayersCount, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.Notes, validation.Length(0, 2000)),
	)
}
