// Package publisher creates the playlist and appends the collected tracks.
package publisher

import (
	"context"
	"fmt"
	"time"

	"relatives/spotify"
)

// Service is the slice of the Spotify client the publisher needs.
type Service interface {
	CurrentUser(ctx context.Context) (spotify.User, error)
	CreatePlaylist(ctx context.Context, userID, name, description string, public bool) (spotify.Playlist, error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

// PublishError reports a failed publish along with how much of it succeeded.
// Batches already appended are not rolled back.
type PublishError struct {
	Stage        string // "user", "create" or "append"
	BatchesAdded int
	TracksAdded  int
	TotalTracks  int
	Err          error
}

func (e *PublishError) Error() string {
	if e.Stage == "append" {
		return fmt.Sprintf("publish: appending batch %d failed after %d of %d tracks were added: %v",
			e.BatchesAdded+1, e.TracksAdded, e.TotalTracks, e.Err)
	}
	return fmt.Sprintf("publish: %s: %v", e.Stage, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Publish creates a playlist owned by the authenticated user and appends
// trackIDs to it in order, in batches no larger than the service's
// items-per-request limit. On a mid-append failure the returned PublishError
// says exactly how many batches and tracks made it in; the playlist is still
// returned so the partial result is reachable.
func Publish(ctx context.Context, svc Service, name string, trackIDs []string, public bool) (spotify.Playlist, error) {
	user, err := svc.CurrentUser(ctx)
	if err != nil {
		return spotify.Playlist{}, &PublishError{Stage: "user", TotalTracks: len(trackIDs), Err: err}
	}

	description := fmt.Sprintf("Related-artists playlist generated on %s", time.Now().Format("2006-01-02"))
	playlist, err := svc.CreatePlaylist(ctx, user.ID, name, description, public)
	if err != nil {
		return spotify.Playlist{}, &PublishError{Stage: "create", TotalTracks: len(trackIDs), Err: err}
	}

	added := 0
	batches := 0
	for offset := 0; offset < len(trackIDs); offset += spotify.MaxTracksPerRequest {
		end := offset + spotify.MaxTracksPerRequest
		if end > len(trackIDs) {
			end = len(trackIDs)
		}
		if err := svc.AddTracks(ctx, playlist.ID, trackIDs[offset:end]); err != nil {
			return playlist, &PublishError{
				Stage:        "append",
				BatchesAdded: batches,
				TracksAdded:  added,
				TotalTracks:  len(trackIDs),
				Err:          err,
			}
		}
		batches++
		added = end
	}

	return playlist, nil
}
