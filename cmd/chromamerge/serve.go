package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmelnik/chromamerge/internal/platform/httpapi"
	"github.com/dmelnik/chromamerge/internal/platform/tui"
	"github.com/dmelnik/chromamerge/internal/storage"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagSSHDBPath   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH and HTTP servers for remote play",
	Long: `Start an SSH server that lets users connect and play, plus an HTTP
API that exposes the leaderboards as JSON.

Each SSH connection gets its own session with the mode selector menu.
Scores are stored per-server (all users share the same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.chromamerge/host_key

HTTP endpoints:
  GET /healthz                  - Liveness check
  GET /api/games                - Variant list with aggregate stats
  GET /api/scores/{variant}     - Top scores (?limit=N, default 10)

Examples:
  chromamerge serve                           # SSH on :23234, HTTP on :8080
  chromamerge serve --ssh :2222 --http :9090
  chromamerge serve --host-key ./my_host_key
  chromamerge serve --http ""                 # SSH only

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (empty = disabled)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagSSHDBPath, "db", "~/.chromamerge/scores.db", "Path to scores database")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagSSHDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	sshServer, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating SSH server: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sshServer.Run(ctx)
	})

	if flagHTTPAddr != "" {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "chromamerge-http",
		})

		// The API reads the same database the SSH sessions write to.
		apiStore, storeErr := storage.Open(flagSSHDBPath)
		if storeErr != nil {
			logger.Warn("could not open scores database", "error", storeErr)
			apiStore = nil
		}

		api := httpapi.NewServer(flagHTTPAddr, apiStore, logger)
		g.Go(func() error {
			defer func() {
				if apiStore != nil {
					apiStore.Close()
				}
			}()
			return api.Run(ctx)
		})
	}

	fmt.Printf("Starting SSH server on %s\n", flagSSHAddr)
	if flagHTTPAddr != "" {
		fmt.Printf("Starting HTTP API on %s\n", flagHTTPAddr)
	}
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
