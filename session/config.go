// ABOUTME: Ambient session store for server address and bearer credential
// ABOUTME: JSON config under the XDG data dir with env overrides and a ULID device id
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/oklog/ulid/v2"
	"golang.org/x/oauth2"
)

const (
	// AppName is the directory name under the XDG data home.
	AppName = "vestry"

	// ConfigFileName is where session state is stored.
	ConfigFileName = "session.json"

	// DefaultServer is the development API server.
	DefaultServer = "http://localhost:4000/api"
)

// ErrNoToken means no bearer credential has been stored yet.
var ErrNoToken = errors.New("not logged in")

// Config holds the session settings. Environment variables override file
// values: VESTRY_SERVER and VESTRY_TOKEN.
type Config struct {
	// Server is the API base URL.
	Server string `json:"server"`

	// Token is the bearer credential attached to every API call.
	Token string `json:"token,omitempty"`

	// DeviceID identifies this install; generated once on first load.
	DeviceID string `json:"device_id,omitempty"`
}

// Store reads and writes the session config at a fixed path. Reads happen on
// every credential lookup so a login in another process is picked up without
// a restart.
type Store struct {
	path string
}

// Open returns a store at the default XDG path.
func Open() (*Store, error) {
	dir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &Store{path: filepath.Join(dir, ConfigFileName)}, nil
}

// OpenPath returns a store at an explicit path (used in tests).
func OpenPath(path string) *Store {
	return &Store{path: path}
}

// Load reads the config, applying defaults and env overrides. A missing file
// yields a default config rather than an error.
func (s *Store) Load() (*Config, error) {
	cfg := &Config{Server: DefaultServer}

	data, err := os.ReadFile(s.path)
	if err == nil {
		if uerr := json.Unmarshal(data, cfg); uerr != nil {
			// Unreadable config falls back to defaults.
			cfg = &Config{Server: DefaultServer}
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("VESTRY_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("VESTRY_TOKEN"); v != "" {
		cfg.Token = v
	}
	if cfg.Server == "" {
		cfg.Server = DefaultServer
	}
	if cfg.DeviceID == "" {
		cfg.DeviceID = ulid.Make().String()
	}
	return cfg, nil
}

// Save persists the config to disk.
func (s *Store) Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// SetToken stores a new bearer credential.
func (s *Store) SetToken(token string) error {
	cfg, err := s.Load()
	if err != nil {
		return err
	}
	cfg.Token = token
	return s.Save(cfg)
}

// TokenSource exposes the stored credential as an oauth2 token source. Each
// Token call re-reads the config; ErrNoToken is returned when no credential
// is stored.
func (s *Store) TokenSource() oauth2.TokenSource {
	return tokenSource{store: s}
}

type tokenSource struct {
	store *Store
}

func (t tokenSource) Token() (*oauth2.Token, error) {
	cfg, err := t.store.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	return &oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}, nil
}

// StaticTokenSource wraps a fixed token (used in tests and one-off calls).
func StaticTokenSource(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
