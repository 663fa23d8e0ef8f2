// ABOUTME: Entry point for the vestry church admin console and CLI
// ABOUTME: Routes between the TUI and resource commands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/vestryhq/vestry/api"
	"github.com/vestryhq/vestry/cache"
	"github.com/vestryhq/vestry/cli"
	"github.com/vestryhq/vestry/session"
	"github.com/vestryhq/vestry/tui"
)

const version = "0.2.0"

func main() {
	// Local .env overrides are optional.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	noCache := flag.Bool("no-cache", false, "Disable the snapshot cache")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("vestry version %s\n", version)
		os.Exit(0)
	}

	store, err := session.Open()
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}

	args := flag.Args()
	command := "tui"
	var commandArgs []string
	if len(args) > 0 {
		command = args[0]
		commandArgs = args[1:]
	}

	switch command {
	case "tui":
		cfg, err := store.Load()
		if err != nil {
			log.Fatalf("Failed to load session: %v", err)
		}
		client := api.NewClient(cfg.Server, store.TokenSource())

		var snapshots *cache.Store
		if !*noCache {
			snapshots, err = cache.Open(filepath.Join(xdg.CacheHome, session.AppName))
			if err != nil {
				log.Printf("warning: snapshot cache unavailable: %v", err)
			} else {
				defer func() { _ = snapshots.Close() }()
			}
		}

		p := tea.NewProgram(tui.NewModel(client, snapshots), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	case "login":
		if err := cli.LoginCommand(store, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "logout":
		if err := cli.LogoutCommand(store, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "config":
		if err := cli.ConfigCommand(store, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "list":
		if err := cli.ListCommand(newClient(store), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "get":
		if err := cli.GetCommand(newClient(store), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "delete":
		if err := cli.DeleteCommand(newClient(store), commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func newClient(store *session.Store) *api.Client {
	cfg, err := store.Load()
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}
	return api.NewClient(cfg.Server, store.TokenSource())
}

func printUsage() {
	fmt.Printf(`vestry v%s - Church admin console

USAGE:
  vestry [global flags] [command] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --no-cache             Disable the snapshot cache

COMMANDS:
  tui                    Start the interactive admin console (default)
  login                  Store the API server and bearer token
    --server <url>          API base URL
    --token <token>         Bearer token (omit to be prompted)
  logout                 Clear the stored token
  config                 Show or update session settings
    --server <url>          Set the API base URL
  list <resource>        List records for a resource
  get <resource> <id>    Print one record as JSON
  delete <resource> <id> Delete a record
    --yes                   Skip the confirmation prompt

RESOURCES:
  galleries, sermons, lifegroups, ministries,
  settings, logs, testimonials, give

EXAMPLES:
  # Log in against a local server
  vestry login --server http://localhost:4000/api

  # Browse everything interactively
  vestry tui

  # List sermons from a script
  vestry list sermons

  # Delete a testimonial without prompting
  vestry delete --yes testimonials 42

`, version)
}
