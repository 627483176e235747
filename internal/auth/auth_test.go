package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"relatives/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:8080/callback",
		Scopes:       []string{"playlist-modify-private"},
	}
}

func TestClientWithoutStoredToken(t *testing.T) {
	t.Setenv("SPOTIFY_TOKEN_PATH", filepath.Join(t.TempDir(), "tok.json"))

	a := New(testConfig())
	_, err := a.Client(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("SPOTIFY_TOKEN_PATH", filepath.Join(t.TempDir(), "tok.json"))

	a := New(testConfig())
	want := &oauth2.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour),
	}
	require.NoError(t, a.saveToken(want))

	// A still-valid token is returned as-is, no refresh round trip.
	got, err := a.loadToken(context.Background())
	require.NoError(t, err)
	require.Equal(t, want.AccessToken, got.AccessToken)
	require.Equal(t, want.RefreshToken, got.RefreshToken)

	_, err = a.Client(context.Background())
	require.NoError(t, err)
}

func TestLoadTokenRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tok.json")
	t.Setenv("SPOTIFY_TOKEN_PATH", path)

	a := New(testConfig())
	require.NoError(t, a.saveToken(&oauth2.Token{
		AccessToken: "x",
		Expiry:      time.Now().Add(time.Hour),
	}))

	// Corrupt the file.
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err := a.Client(context.Background())
	require.Error(t, err)
}
