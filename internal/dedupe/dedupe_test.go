package dedupe_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"relatives/internal/dedupe"
	"relatives/spotify"
)

func tr(id, name, artistID string) spotify.Track {
	return spotify.Track{
		ID:      id,
		Name:    name,
		Artists: []spotify.Artist{{ID: artistID, Name: "Artist " + artistID}},
	}
}

func names(tracks []spotify.Track) []string {
	out := make([]string, len(tracks))
	for i, t := range tracks {
		out[i] = t.Name
	}
	return out
}

func TestTracksCollapsesEditionNoise(t *testing.T) {
	in := []spotify.Track{
		tr("1", "Lose Yourself", "em"),
		tr("2", "Lose Yourself (Album Version)", "em"),
		tr("3", "Lose Yourself - Remastered", "em"),
		tr("4", "Lose Yourself (Explicit)", "em"),
		tr("5", "Lose Yourself - Live in Detroit 2009", "em"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Equal(t, []string{"Lose Yourself"}, names(out), "first occurrence wins")
}

func TestTracksCollapsesDiacritics(t *testing.T) {
	in := []spotify.Track{
		tr("1", "Superman", "x"),
		tr("2", "Sūpērman", "x"),
		tr("3", "Súperman", "x"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Len(t, out, 1)
}

func TestTracksCollapsesTokenOrder(t *testing.T) {
	in := []spotify.Track{
		tr("1", "The Real Slim Shady", "em"),
		tr("2", "Real Slim Shady, The", "em"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Len(t, out, 1)
}

func TestTracksKeepsDifferentSongs(t *testing.T) {
	in := []spotify.Track{
		tr("1", "Forever", "x"),
		tr("2", "Never Ever", "x"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Len(t, out, 2)
}

func TestTracksNeverMergesAcrossArtists(t *testing.T) {
	in := []spotify.Track{
		tr("1", "Renegade", "eminem"),
		tr("2", "Renegade", "ratm"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Len(t, out, 2, "same title by two bands is two songs")
}

func TestTracksPreservesOrder(t *testing.T) {
	in := []spotify.Track{
		tr("1", "Alpha", "x"),
		tr("2", "Beta", "x"),
		tr("3", "Alpha (Remastered)", "x"),
		tr("4", "Gamma", "x"),
	}

	out := dedupe.Tracks(in, dedupe.DefaultThreshold)
	require.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names(out))
}
