// Package spotify provides a client for the Spotify Web API, converting
// wire types into the listening domain model.
package spotify

import (
	"context"
	"time"

	"github.com/avast/retry-go"
	"github.com/cockroachdb/errors"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/sonify-dev/sonify/internal/domain/listening"
)

// TimeRange selects the ranking window for top tracks/artists.
type TimeRange string

const (
	RangeShortTerm  TimeRange = "short_term"
	RangeMediumTerm TimeRange = "medium_term"
	RangeLongTerm   TimeRange = "long_term"
)

// UserProfile is the authenticated user's public profile.
type UserProfile struct {
	ID          string
	DisplayName string
	Email       string
	Country     string
	Followers   int
}

// Client is a Spotify API client scoped to the analytics use case.
type Client struct {
	client  *spotify.Client
	limiter *rate.Limiter
	retries uint
}

// Config represents Spotify client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// New creates a new Spotify client. The refresh token must carry the
// history, top-items, playlist, and profile read scopes.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "" {
		return nil, errors.New("spotify credentials are required")
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithScopes(
			spotifyauth.ScopeUserReadRecentlyPlayed,
			spotifyauth.ScopeUserTopRead,
			spotifyauth.ScopePlaylistReadPrivate,
			spotifyauth.ScopeUserReadPrivate,
		),
	)

	token := &oauth2.Token{
		RefreshToken: cfg.RefreshToken,
	}

	httpClient := auth.Client(ctx, token)

	return &Client{
		client: spotify.New(httpClient),
		// The Web API tolerates short bursts; one request per 250ms keeps a
		// dashboard page view well under the rate limit.
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 4),
		retries: 3,
	}, nil
}

// RecentlyPlayed retrieves the user's play history as raw items ready for
// normalization. Spotify caps the limit at 50 per request.
func (c *Client) RecentlyPlayed(ctx context.Context, limit int) ([]listening.RawHistoryItem, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	var played []spotify.RecentlyPlayedItem
	err := c.call(ctx, func() error {
		p, err := c.client.PlayerRecentlyPlayedOpt(ctx, &spotify.RecentlyPlayedOptions{Limit: spotify.Numeric(limit)})
		if err != nil {
			return err
		}
		played = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recently played")
	}

	items := make([]listening.RawHistoryItem, 0, len(played))
	for _, item := range played {
		artist := ""
		if len(item.Track.Artists) > 0 {
			artist = item.Track.Artists[0].Name
		}
		items = append(items, listening.RawHistoryItem{
			TrackName:  item.Track.Name,
			ArtistName: artist,
			PlayedAt:   item.PlayedAt.UTC().Format(time.RFC3339),
		})
	}
	return items, nil
}

// TopTracks retrieves the user's top tracks for the given time range,
// preserving the API's ranking order.
func (c *Client) TopTracks(ctx context.Context, limit int, timeRange TimeRange) ([]listening.TrackSummary, error) {
	var page *spotify.FullTrackPage
	err := c.call(ctx, func() error {
		p, err := c.client.CurrentUsersTopTracks(ctx, spotify.Limit(clampLimit(limit)), rangeOption(timeRange))
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get top tracks")
	}

	tracks := make([]listening.TrackSummary, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, convertTrack(&t))
	}
	return tracks, nil
}

// TopArtists retrieves the user's top artists for the given time range.
func (c *Client) TopArtists(ctx context.Context, limit int, timeRange TimeRange) ([]listening.ArtistSummary, error) {
	var page *spotify.FullArtistPage
	err := c.call(ctx, func() error {
		p, err := c.client.CurrentUsersTopArtists(ctx, spotify.Limit(clampLimit(limit)), rangeOption(timeRange))
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get top artists")
	}

	artists := make([]listening.ArtistSummary, 0, len(page.Artists))
	for _, a := range page.Artists {
		artists = append(artists, listening.ArtistSummary{
			ID:         string(a.ID),
			Name:       a.Name,
			Popularity: int(a.Popularity),
			Genres:     a.Genres,
			Followers:  uint(a.Followers.Count),
		})
	}
	return artists, nil
}

// AudioFeatures retrieves per-track audio features for the given tracks.
// The result is positionally aligned with the input; entries the API has no
// data for are nil, not zero-valued.
func (c *Client) AudioFeatures(ctx context.Context, tracks []listening.TrackSummary) ([]*listening.AudioFeatureVector, error) {
	if len(tracks) == 0 {
		return nil, nil
	}

	ids := make([]spotify.ID, 0, len(tracks))
	for _, t := range tracks {
		ids = append(ids, spotify.ID(t.ID))
	}

	var feats []*spotify.AudioFeatures
	err := c.call(ctx, func() error {
		f, err := c.client.GetAudioFeatures(ctx, ids...)
		if err != nil {
			return err
		}
		feats = f
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get audio features")
	}

	vectors := make([]*listening.AudioFeatureVector, len(feats))
	for i, f := range feats {
		if f == nil {
			continue
		}
		vectors[i] = &listening.AudioFeatureVector{
			Danceability:     float64(f.Danceability),
			Energy:           float64(f.Energy),
			Valence:          float64(f.Valence),
			Acousticness:     float64(f.Acousticness),
			Instrumentalness: float64(f.Instrumentalness),
			Tempo:            float64(f.Tempo),
		}
	}
	return vectors, nil
}

// Playlists retrieves the user's playlists.
func (c *Client) Playlists(ctx context.Context, limit int) ([]listening.PlaylistSummary, error) {
	var page *spotify.SimplePlaylistPage
	err := c.call(ctx, func() error {
		p, err := c.client.CurrentUsersPlaylists(ctx, spotify.Limit(clampLimit(limit)))
		if err != nil {
			return err
		}
		page = p
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get playlists")
	}

	playlists := make([]listening.PlaylistSummary, 0, len(page.Playlists))
	for _, p := range page.Playlists {
		playlists = append(playlists, listening.PlaylistSummary{
			Name:       p.Name,
			TrackCount: int(p.Tracks.Total),
		})
	}
	return playlists, nil
}

// CurrentUser retrieves the authenticated user's profile.
func (c *Client) CurrentUser(ctx context.Context) (*UserProfile, error) {
	var user *spotify.PrivateUser
	err := c.call(ctx, func() error {
		u, err := c.client.CurrentUser(ctx)
		if err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get current user")
	}

	return &UserProfile{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
		Followers:   int(user.Followers.Count),
	}, nil
}

// call rate-limits and retries one API request.
func (c *Client) call(ctx context.Context, fn func() error) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	return retry.Do(
		fn,
		retry.Attempts(c.retries),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
}

func convertTrack(t *spotify.FullTrack) listening.TrackSummary {
	summary := listening.TrackSummary{
		ID:         string(t.ID),
		Name:       t.Name,
		Album:      t.Album.Name,
		Popularity: int(t.Popularity),
		Duration:   time.Duration(t.Duration) * time.Millisecond,
	}
	if len(t.Artists) > 0 {
		summary.PrimaryArtist = t.Artists[0].Name
		summary.ArtistID = string(t.Artists[0].ID)
	}
	return summary
}

func rangeOption(timeRange TimeRange) spotify.RequestOption {
	switch timeRange {
	case RangeMediumTerm:
		return spotify.Timerange(spotify.MediumTermRange)
	case RangeLongTerm:
		return spotify.Timerange(spotify.LongTermRange)
	default:
		return spotify.Timerange(spotify.ShortTermRange)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 50 {
		return 50
	}
	return limit
}
