package spotify

import (
	"context"
	"fmt"
)

// User is the authenticated Spotify account.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Playlist is a created playlist. URL returns its public link.
type Playlist struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	ExternalURLs map[string]string `json:"external_urls"`
}

func (p Playlist) URL() string {
	return p.ExternalURLs["spotify"]
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var u User
	if err := c.get(ctx, "/me", nil, &u); err != nil {
		return User{}, fmt.Errorf("get current user: %w", err)
	}
	return u, nil
}

// CreatePlaylist creates a new, empty playlist owned by userID.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (Playlist, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}
	var p Playlist
	if err := c.post(ctx, "/users/"+userID+"/playlists", payload, &p); err != nil {
		return Playlist{}, fmt.Errorf("create playlist %q: %w", name, err)
	}
	return p, nil
}

// AddTracks appends up to MaxTracksPerRequest tracks to a playlist in one
// call. Chunking larger sets is the caller's job.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	if len(trackIDs) > MaxTracksPerRequest {
		return fmt.Errorf("add tracks: %d exceeds the %d items-per-request limit", len(trackIDs), MaxTracksPerRequest)
	}

	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = "spotify:track:" + id
	}
	if err := c.post(ctx, "/playlists/"+playlistID+"/tracks", map[string]any{"uris": uris}, nil); err != nil {
		return fmt.Errorf("add %d tracks to playlist %s: %w", len(trackIDs), playlistID, err)
	}
	return nil
}
