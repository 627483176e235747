package collector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"relatives/internal/collector"
	"relatives/spotify"
)

// fakeCatalog pages its fixtures one item at a time so Drain actually has to
// follow multiple pages.
type fakeCatalog struct {
	albums   map[string][]spotify.Album
	tracks   map[string][]spotify.Track
	albumErr map[string]bool // artistID -> album listing fails
	trackErr map[string]bool // albumID -> track listing fails
	markets  []string
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		albums:   map[string][]spotify.Album{},
		tracks:   map[string][]spotify.Track{},
		albumErr: map[string]bool{},
		trackErr: map[string]bool{},
	}
}

func (f *fakeCatalog) ArtistAlbums(artistID, market string) *spotify.Pager[spotify.Album] {
	f.markets = append(f.markets, market)
	items := f.albums[artistID]
	fail := f.albumErr[artistID]
	return spotify.NewPager(func(_ context.Context, _, offset int) ([]spotify.Album, bool, error) {
		if fail {
			return nil, false, errors.New("album listing failed")
		}
		if offset >= len(items) {
			return nil, false, nil
		}
		return items[offset : offset+1], offset+1 < len(items), nil
	})
}

func (f *fakeCatalog) AlbumTracks(albumID string) *spotify.Pager[spotify.Track] {
	items := f.tracks[albumID]
	fail := f.trackErr[albumID]
	return spotify.NewPager(func(_ context.Context, _, offset int) ([]spotify.Track, bool, error) {
		if fail {
			return nil, false, errors.New("track listing failed")
		}
		if offset >= len(items) {
			return nil, false, nil
		}
		return items[offset : offset+1], offset+1 < len(items), nil
	})
}

func artist(id string) spotify.Artist {
	return spotify.Artist{ID: id, Name: "Artist " + id}
}

func album(id string, artists ...spotify.Artist) spotify.Album {
	return spotify.Album{ID: id, Name: "Album " + id, AlbumType: "album", Artists: artists}
}

func track(id string) spotify.Track {
	return spotify.Track{ID: id, Name: "Track " + id}
}

func TestCollectDeduplicatesAcrossAlbumsAndArtists(t *testing.T) {
	f := newFakeCatalog()
	f.albums["a"] = []spotify.Album{album("alb1", artist("a")), album("alb2", artist("a"))}
	f.albums["b"] = []spotify.Album{album("alb3", artist("b"))}
	f.tracks["alb1"] = []spotify.Track{track("t1"), track("t2")}
	f.tracks["alb2"] = []spotify.Track{track("t2"), track("t3")} // t2 repeats
	f.tracks["alb3"] = []spotify.Track{track("t1"), track("t4")} // t1 repeats via other artist

	got := collector.Collect(context.Background(), f, []spotify.Artist{artist("a"), artist("b")}, "", false)
	require.Equal(t, []string{"t1", "t2", "t3", "t4"}, collector.TrackIDs(got))
}

func TestCollectExcludesMultiArtistAlbums(t *testing.T) {
	f := newFakeCatalog()
	f.albums["a"] = []spotify.Album{
		album("solo", artist("a")),
		album("split", artist("a"), artist("x")),
		album("va", spotify.Artist{ID: "va", Name: "Various Artists"}),
	}
	f.tracks["solo"] = []spotify.Track{track("t1")}
	f.tracks["split"] = []spotify.Track{track("t2")}
	f.tracks["va"] = []spotify.Track{track("t3")}

	got := collector.Collect(context.Background(), f, []spotify.Artist{artist("a")}, "", false)
	require.Equal(t, []string{"t1"}, collector.TrackIDs(got))
}

func TestCollectIsolatesArtistFailures(t *testing.T) {
	f := newFakeCatalog()
	f.albums["a"] = []spotify.Album{album("alb1", artist("a"))}
	f.albums["c"] = []spotify.Album{album("alb3", artist("c"))}
	f.albumErr["b"] = true
	f.tracks["alb1"] = []spotify.Track{track("t1")}
	f.tracks["alb3"] = []spotify.Track{track("t3")}

	got := collector.Collect(context.Background(), f,
		[]spotify.Artist{artist("a"), artist("b"), artist("c")}, "", false)
	require.Equal(t, []string{"t1", "t3"}, collector.TrackIDs(got),
		"one broken artist must not abort the others")
}

func TestCollectIsolatesAlbumFailures(t *testing.T) {
	f := newFakeCatalog()
	f.albums["a"] = []spotify.Album{album("good", artist("a")), album("bad", artist("a")), album("good2", artist("a"))}
	f.trackErr["bad"] = true
	f.tracks["good"] = []spotify.Track{track("t1")}
	f.tracks["good2"] = []spotify.Track{track("t2")}

	got := collector.Collect(context.Background(), f, []spotify.Artist{artist("a")}, "", false)
	require.Equal(t, []string{"t1", "t2"}, collector.TrackIDs(got))
}

func TestCollectForwardsCountry(t *testing.T) {
	f := newFakeCatalog()
	f.albums["a"] = []spotify.Album{album("alb1", artist("a"))}
	f.tracks["alb1"] = []spotify.Track{track("t1")}

	collector.Collect(context.Background(), f, []spotify.Artist{artist("a")}, "SE", false)
	require.Equal(t, []string{"SE"}, f.markets)

	f.markets = nil
	collector.Collect(context.Background(), f, []spotify.Artist{artist("a")}, "", false)
	require.Equal(t, []string{""}, f.markets, "no filter means no market restriction")
}

func TestCollectDrainsAllPages(t *testing.T) {
	f := newFakeCatalog()
	// 3 albums and 4 tracks on one of them; the fake serves one item per page.
	f.albums["a"] = []spotify.Album{album("alb1", artist("a")), album("alb2", artist("a")), album("alb3", artist("a"))}
	f.tracks["alb1"] = []spotify.Track{track("t1"), track("t2"), track("t3"), track("t4")}
	f.tracks["alb2"] = []spotify.Track{track("t5")}
	f.tracks["alb3"] = []spotify.Track{track("t6")}

	got := collector.Collect(context.Background(), f, []spotify.Artist{artist("a")}, "", false)
	require.Len(t, got, 6)
}
