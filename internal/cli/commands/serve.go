package commands

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hostbind/hostbind/internal/cli/config"
	"github.com/hostbind/hostbind/internal/web/inspect"
	"github.com/hostbind/hostbind/runtime/registry"
)

// fileSource serves a snapshot loaded from disk. It cannot stream events;
// the inspect server's websocket endpoint reports that to clients.
type fileSource struct {
	snap registry.Snapshot
}

func (f fileSource) Snapshot() registry.Snapshot {
	return f.snap
}

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var (
		path string
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a registry snapshot over HTTP",
		Long: `Serve a registry snapshot over HTTP.

Exposes the same introspection API a live program embeds via the inspect
server, backed by a snapshot file instead of a running registry.`,
		Example: `  # Serve the default snapshot on the configured address
  hostbind serve

  # Serve a specific snapshot on a specific address
  hostbind serve --snapshot build/registry.json --addr localhost:9000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.Snapshot.Path
			}
			if addr == "" {
				addr = fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
			}

			snap, err := loadSnapshot(path)
			if err != nil {
				return err
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				logger = zap.NewNop()
			}
			defer logger.Sync()

			srv := inspect.NewServer(fileSource{snap: *snap}, inspect.WithLogger(logger))
			logger.Info("serving registry snapshot",
				zap.String("addr", addr),
				zap.String("snapshot", path),
				zap.Int("classes", len(snap.Classes)))

			return http.ListenAndServe(addr, srv)
		},
	}

	cmd.Flags().StringVar(&path, "snapshot", "", "Path to the registry snapshot (default from hostbind.yml)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from hostbind.yml)")

	return cmd
}
