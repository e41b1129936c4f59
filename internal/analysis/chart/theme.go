package chart

import (
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/mitchellh/mapstructure"
)

// Theme holds the series colors used by the descriptor builders. Values are
// plain CSS color strings so the renderer stays free to interpret them.
type Theme struct {
	TrackColor    string `mapstructure:"track_color" default:"rgb(30, 215, 96)"`
	ArtistColor   string `mapstructure:"artist_color" default:"rgb(255, 107, 107)"`
	GenreColor    string `mapstructure:"genre_color" default:"rgb(255, 107, 107)"`
	TimelineColor string `mapstructure:"timeline_color" default:"rgb(30, 215, 96)"`
	PlaylistColor string `mapstructure:"playlist_color" default:"rgb(138, 43, 226)"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	var theme Theme
	// Only fails on a malformed struct tag, which would be a programming error.
	if err := defaults.Set(&theme); err != nil {
		panic(err)
	}
	return theme
}

// ThemeFromSettings decodes a settings map from the config file into a
// Theme, filling unset fields with the defaults.
func ThemeFromSettings(settings map[string]any) (Theme, error) {
	var theme Theme

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &theme,
		TagName: "mapstructure",
	})
	if err != nil {
		return Theme{}, errors.Wrap(err, "failed to create decoder")
	}
	if err := decoder.Decode(settings); err != nil {
		return Theme{}, errors.Wrap(err, "failed to decode theme settings")
	}
	if err := defaults.Set(&theme); err != nil {
		return Theme{}, errors.Wrap(err, "failed to set theme defaults")
	}

	return theme, nil
}
