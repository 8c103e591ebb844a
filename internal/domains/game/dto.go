package game

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// CreateGameRequest is the body of POST /games (trusted users only).
type CreateGameRequest struct {
	Name             string   `json:"name" binding:"required"`
	Year             *int     `json:"year,omitempty"`
	MinPlayers       *int     `json:"min_players,omitempty"`
	MaxPlayers       *int     `json:"max_players,omitempty"`
	PlayTime         *int     `json:"play_time,omitempty"`
	ComplexityWeight *float64 `json:"complexity_weight,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Mechanics        []string `json:"mechanics,omitempty"`
	Description      *string  `json:"description,omitempty"`
	ImageURL         *string  `json:"image_url,omitempty"`
}

func (r CreateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 500),
		),
		validation.Field(&r.Year, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.MinPlayers, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.MaxPlayers, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.PlayTime, validation.NilOrNotEmpty, validation.Min(1)),
		validation.Field(&r.ComplexityWeight, validation.Min(0.0)),
		validation.Field(&r.Categories, validation.Each(validation.Required, validation.Length(1, 100))),
		validation.Field(&r.Mechanics, validation.Each(validation.Required, validation.Length(1, 100))),
		validation.Field(&r.ImageURL, validation.NilOrNotEmpty, is.URL),
	)
}

// ToExternal maps the request onto an ExternalGame for the given key.
func (r CreateGameRequest) ToExternal(apiRef, externalID string) ExternalGame {
	return ExternalGame{
		ExternalID:       externalID,
		APIRef:           apiRef,
		Name:             r.Name,
		ImageURL:         r.ImageURL,
		Year:             r.Year,
		MinPlayers:       r.MinPlayers,
		MaxPlayers:       r.MaxPlayers,
		PlayTime:         r.PlayTime,
		ComplexityWeight: r.ComplexityWeight,
		Categories:       r.Categories,
		Mechanics:        r.Mechanics,
		Description:      r.Description,
	}
}
