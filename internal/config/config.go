package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// ErrMissingCredentials is returned when the three Spotify credential values
// cannot be found in the environment or in the fallback config file.
var ErrMissingCredentials = errors.New("missing Spotify credentials")

// DefaultConfigFile is consulted when the environment is incomplete.
const DefaultConfigFile = "authconfig.json"

var defaultScopes = []string{
	"playlist-modify-private",
	"playlist-modify-public",
	"user-read-private",
}

// Config holds the OAuth application credentials for the Spotify Web API.
type Config struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURL  string   `json:"redirect_url"`
	Scopes       []string `json:"scopes"`
}

// Load resolves credentials in order:
// 1. Environment variables (a .env file is loaded first when present)
// 2. A JSON config file (authconfig.json by default)
//
// All three of SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and
// SPOTIFY_REDIRECT_URI must be set for the environment to win.
func Load(file string) (Config, error) {
	_ = godotenv.Load(".env")

	id := os.Getenv("SPOTIFY_CLIENT_ID")
	secret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	redirect := os.Getenv("SPOTIFY_REDIRECT_URI")

	if id != "" && secret != "" && redirect != "" {
		return Config{
			ClientID:     id,
			ClientSecret: secret,
			RedirectURL:  redirect,
			Scopes:       defaultScopes,
		}, nil
	}

	if file == "" {
		file = DefaultConfigFile
	}

	b, err := os.ReadFile(file)
	if err != nil {
		return Config{}, fmt.Errorf("%w: set SPOTIFY_CLIENT_ID, SPOTIFY_CLIENT_SECRET and SPOTIFY_REDIRECT_URI or provide %s", ErrMissingCredentials, file)
	}

	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid %s: %w", file, err)
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return Config{}, fmt.Errorf("%w: %s is incomplete", ErrMissingCredentials, file)
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = defaultScopes
	}
	return cfg, nil
}
