// Package collector turns a set of artists into the deduplicated list of
// their album tracks.
package collector

import (
	"context"
	"log"

	"relatives/spotify"
)

// Catalog lists an artist's albums and an album's tracks.
type Catalog interface {
	ArtistAlbums(artistID, market string) *spotify.Pager[spotify.Album]
	AlbumTracks(albumID string) *spotify.Pager[spotify.Track]
}

// Collect enumerates every album of every artist and gathers their tracks,
// deduplicated by track ID in first-seen order. A non-empty country restricts
// albums to that market.
//
// Fetch failures are isolated: an artist whose album listing fails
// contributes nothing, an album whose track listing fails is skipped, and in
// both cases the run continues. Failures are logged with the artist or album
// involved.
func Collect(ctx context.Context, cat Catalog, artists []spotify.Artist, country string, verbose bool) []spotify.Track {
	seen := make(map[string]bool)
	var tracks []spotify.Track

	for _, artist := range artists {
		albums, err := cat.ArtistAlbums(artist.ID, country).Drain(ctx)
		if err != nil {
			log.Printf("[collect] albums for %q (%s): %v (skipping artist)", artist.Name, artist.ID, err)
			continue
		}
		if verbose {
			log.Printf("[collect] %q: %d albums", artist.Name, len(albums))
		}

		for _, album := range albums {
			if !includeAlbum(album) {
				continue
			}
			albumTracks, err := cat.AlbumTracks(album.ID).Drain(ctx)
			if err != nil {
				log.Printf("[collect] tracks for album %q (%s) of %q: %v (skipping album)", album.Name, album.ID, artist.Name, err)
				continue
			}
			for _, t := range albumTracks {
				if t.ID == "" || seen[t.ID] {
					continue
				}
				seen[t.ID] = true
				tracks = append(tracks, t)
			}
		}
	}

	return tracks
}

// includeAlbum keeps albums credited to exactly one artist. Splits and
// compilations bring in tracks that mostly belong to someone else, and
// "Various Artists" releases are pure noise.
func includeAlbum(a spotify.Album) bool {
	if len(a.Artists) != 1 {
		return false
	}
	return a.Artists[0].Name != "Various Artists"
}

// TrackIDs projects tracks onto their identifiers, preserving order.
func TrackIDs(tracks []spotify.Track) []string {
	ids := make([]string, len(tracks))
	for i, t := range tracks {
		ids[i] = t.ID
	}
	return ids
}
