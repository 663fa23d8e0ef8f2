// ABOUTME: Login and session configuration CLI commands
// ABOUTME: Stores the API server address and bearer credential for later calls
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/vestryhq/vestry/session"
)

// LoginCommand stores a bearer credential in the session config. With no
// --token flag the credential is read from a hidden prompt.
func LoginCommand(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	server := fs.String("server", "", "API base URL")
	token := fs.String("token", "", "Bearer token (omit to be prompted)")
	_ = fs.Parse(args)

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if *server != "" {
		cfg.Server = strings.TrimRight(*server, "/")
	}

	credential := *token
	if credential == "" {
		fmt.Fprint(os.Stderr, "Token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		credential = strings.TrimSpace(string(raw))
	}
	if credential == "" {
		return fmt.Errorf("a token is required")
	}

	cfg.Token = credential
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Printf("✓ Logged in to %s (device %s)\n", cfg.Server, cfg.DeviceID)
	return nil
}

// LogoutCommand clears the stored credential.
func LogoutCommand(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	_ = fs.Parse(args)

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	cfg.Token = ""
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	fmt.Println("✓ Logged out")
	return nil
}

// ConfigCommand shows or updates the session settings.
func ConfigCommand(store *session.Store, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	server := fs.String("server", "", "Set the API base URL")
	_ = fs.Parse(args)

	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if *server != "" {
		cfg.Server = strings.TrimRight(*server, "/")
		if err := store.Save(cfg); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	fmt.Printf("Server:    %s\n", cfg.Server)
	fmt.Printf("Device ID: %s\n", cfg.DeviceID)
	if cfg.Token != "" {
		fmt.Println("Token:     (set)")
	} else {
		fmt.Println("Token:     (not set)")
	}
	return nil
}
