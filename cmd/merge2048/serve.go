package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/transport/ws"
)

var (
	flagSSHAddr     string
	flagWSAddr      string
	flagHostKey     string
	flagVariant     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and WebSocket servers",
	Long: `Start servers that let remote players connect.

--ssh serves the terminal UI over SSH: each connection gets its own menu and board.
--ws serves a JSON command protocol on /ws: each connection owns one session
driven with "new", "shift", "snapshot" and "state" messages.
An empty address disables that server. Results go to the shared database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.merge2048/host_key

Examples:
  merge2048 serve                            # SSH on :23234
  merge2048 serve --ssh :2222 --ws :8080     # Both servers
  merge2048 serve --ssh "" --ws :8080        # WebSocket only

Players can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", runtimeCfg.SSHAddr, "SSH server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", runtimeCfg.WSAddr, "WebSocket server address (host:port, empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", runtimeCfg.HostKeyPath, "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagVariant, "variant", t2048.DefaultVariant, "Default variant for new games")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", runtimeCfg.IdleTimeout, "Idle timeout before disconnecting SSH sessions")
}

// listener is a server that runs until its context ends.
type listener interface {
	ListenAndServe(ctx context.Context) error
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagWSAddr == "" {
		logger.Fatal("nothing to serve: both --ssh and --ws are empty")
	}
	if !registry.Exists(flagVariant) {
		logger.Fatal("cannot serve", "error", unknownVariant(flagVariant))
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	var servers []listener

	if flagSSHAddr != "" {
		srv, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: flagIdleTimeout,
			Variant:     flagVariant,
			Rules:       resolveRules,
			Store:       store,
			Logger:      logger.WithPrefix("ssh"),
		})
		if err != nil {
			logger.Fatal("cannot create SSH server", "error", err)
		}
		servers = append(servers, srv)
	}

	if flagWSAddr != "" {
		srv, err := ws.NewServer(ws.ServerConfig{
			Address: flagWSAddr,
			Variant: flagVariant,
			Rules:   resolveRules,
			Store:   store,
			Logger:  logger.WithPrefix("ws"),
		})
		if err != nil {
			logger.Fatal("cannot create WebSocket server", "error", err)
		}
		servers = append(servers, srv)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serveAll(ctx, servers); err != nil {
		logger.Error("server error", "error", err)
		return
	}
	logger.Info("servers stopped")
}

// serveAll runs every server until ctx ends or one of them fails,
// then stops the rest and returns the joined errors.
func serveAll(ctx context.Context, servers []listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, len(servers))
	for _, srv := range servers {
		go func() {
			err := srv.ListenAndServe(ctx)
			// One server failing takes the others down
			cancel()
			errCh <- err
		}()
	}

	var errs []error
	for range servers {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
