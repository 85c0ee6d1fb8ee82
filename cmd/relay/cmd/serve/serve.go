package serve

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"audio-relay/internal/app"
	"audio-relay/internal/config"
	"audio-relay/internal/logging"
)

const shutdownTimeout = 30 * time.Second

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "interface to listen on (overrides RELAY_HOST)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides RELAY_PORT)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload page and the transcription relay",
	Long: `Start the upload page and the transcription relay

- GET  /                serves the upload page
- POST /api/transcribe  relays one uploaded audio file to the provider
- GET  /metrics         Prometheus metrics, /swagger/index.html API docs`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if cmd.Flags().Changed("host") {
			cfg.Server.Host = host
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = port
			if err := config.Validate(cfg); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
		}

		logger, err := logging.NewLogger(!cfg.IsProduction(), cfg.LogLevel)
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		return run(cmd.Context(), cfg, logger)
	},
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := app.InitializeServer(cfg, logger)
	if err != nil {
		return err
	}

	errCh := srv.Start()
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
