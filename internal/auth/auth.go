package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"relatives/internal/config"
)

// Endpoint is the Spotify accounts service.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// ErrNoToken means no stored Spotify token exists yet and an interactive
// authorization is required.
var ErrNoToken = errors.New("no spotify token")

// Authenticator owns the OAuth config and the on-disk token.
type Authenticator struct {
	cfg       *oauth2.Config
	tokenPath string
}

func New(c config.Config) *Authenticator {
	return &Authenticator{
		cfg: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       c.Scopes,
			Endpoint:     Endpoint,
		},
		tokenPath: tokenPath(),
	}
}

func tokenPath() string {
	if p := os.Getenv("SPOTIFY_TOKEN_PATH"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "spotify_token.json"
	}
	return filepath.Join(home, ".relatives", "spotify_token.json")
}

// Client returns an HTTP client that sends the stored Spotify OAuth token,
// refreshing and re-persisting it when expired. ErrNoToken is returned when
// no token has been stored yet; run Authorize first.
func (a *Authenticator) Client(ctx context.Context) (*http.Client, error) {
	if _, err := os.Stat(a.tokenPath); err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("stat token file: %w", err)
	}

	tok, err := a.loadToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("load/refresh spotify token: %w", err)
	}
	return a.cfg.Client(ctx, tok), nil
}

// Authorize runs the interactive authorization code flow: it starts a local
// callback server at the configured redirect URI, opens the user's browser at
// the Spotify consent page, exchanges the returned code and stores the token.
func (a *Authenticator) Authorize(ctx context.Context) error {
	u, err := url.Parse(a.cfg.RedirectURL)
	if err != nil {
		return fmt.Errorf("invalid redirect URL %q: %w", a.cfg.RedirectURL, err)
	}
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(u.Hostname(), "80")
	}

	state := uuid.NewString()
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(u.Path, func(w http.ResponseWriter, r *http.Request) {
		if st := r.FormValue("state"); st != state {
			http.Error(w, "state mismatch", http.StatusForbidden)
			errCh <- fmt.Errorf("oauth state mismatch")
			return
		}
		code := r.FormValue("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			errCh <- fmt.Errorf("authorization response missing code")
			return
		}
		fmt.Fprint(w, "Login completed! You can now close this window.")
		codeCh <- code
	})

	srv := &http.Server{Handler: mux}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s for oauth callback: %w", addr, err)
	}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := a.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Println("Please log in to Spotify by visiting the following page in your browser:")
	fmt.Println(authURL)
	openBrowser(authURL)

	var code string
	select {
	case code = <-codeCh:
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timed out waiting for spotify authorization")
	}

	tok, err := a.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}
	return a.saveToken(tok)
}

// storedToken is the on-disk token layout.
type storedToken struct {
	AccessToken string `json:"access_token"`
	Type        string `json:"token_type"`
	Refresh     string `json:"refresh_token"`
	Expires     string `json:"expiry"`
}

func (a *Authenticator) saveToken(tok *oauth2.Token) error {
	st := storedToken{
		AccessToken: tok.AccessToken,
		Type:        tok.TokenType,
		Refresh:     tok.RefreshToken,
		Expires:     tok.Expiry.Format(time.RFC3339Nano),
	}

	if err := os.MkdirAll(filepath.Dir(a.tokenPath), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	f, err := os.OpenFile(a.tokenPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(st)
}

// loadToken reads the stored token, refreshes it if needed and writes back
// any updates.
func (a *Authenticator) loadToken(ctx context.Context) (*oauth2.Token, error) {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}

	var st storedToken
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	expiry, err := time.Parse(time.RFC3339Nano, st.Expires)
	if err != nil {
		return nil, fmt.Errorf("parse token expiry: %w", err)
	}

	tok := &oauth2.Token{
		AccessToken:  st.AccessToken,
		TokenType:    st.Type,
		RefreshToken: st.Refresh,
		Expiry:       expiry,
	}

	// TokenSource auto-refreshes when expired.
	newTok, err := a.cfg.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if newTok.AccessToken != tok.AccessToken || !newTok.Expiry.Equal(tok.Expiry) {
		if err := a.saveToken(newTok); err != nil {
			return nil, err
		}
	}
	return newTok, nil
}
