package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/PredicateSystems/secureclaw/internal/api"
	"github.com/PredicateSystems/secureclaw/internal/audit"
	"github.com/PredicateSystems/secureclaw/internal/config"
	"github.com/PredicateSystems/secureclaw/internal/core"
	"github.com/PredicateSystems/secureclaw/internal/engine"
	"github.com/PredicateSystems/secureclaw/internal/logging"
	"github.com/PredicateSystems/secureclaw/internal/service"
	"github.com/PredicateSystems/secureclaw/internal/source"
	"github.com/PredicateSystems/secureclaw/internal/tasks"
)

var serveConfigFile string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the SecureClaw decision server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log.Info().Msg("Loading policy document...")
		fetcher := source.NewFileFetcher(cfg.Policy.Path)
		doc, err := fetcher.Fetch(cmd.Context(), logging.NewZLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("loading initial policy: %w", err)
		}
		manager := engine.NewManager(doc)

		sink, err := buildAuditSink(cfg.Audit)
		if err != nil {
			return fmt.Errorf("building audit sink: %w", err)
		}
		async := audit.NewAsyncAuditor(sink, cfg.Audit.QueueSize)

		svc := service.NewAuthorizationService(manager, async)

		taskManager := tasks.NewManager()
		if cfg.Policy.SyncInterval > 0 {
			taskManager.Register("policy-sync", cfg.Policy.SyncInterval,
				func(ctx context.Context, logger logging.InternalLogger) error {
					newDoc, err := fetcher.Fetch(ctx, logger)
					if err != nil {
						return err
					}
					manager.Swap(newDoc)
					return nil
				})
		}

		// the admin audit endpoints read from the raw sink, writes go
		// through the async wrapper
		srv := api.NewServer(svc, taskManager, sink)

		server := &http.Server{
			Addr:    cfg.Addr,
			Handler: srv.Routes([]byte(cfg.Admin.SigningKey)),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		// flush queued audit records before exiting
		if err := async.Close(); err != nil {
			log.Warn().Err(err).Msg("closing audit sink")
		}
		if dropped := async.Dropped(); dropped > 0 {
			log.Warn().Uint64("dropped", dropped).Msg("audit records were dropped under load")
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func buildAuditSink(cfg config.AuditConfig) (core.Auditor, error) {
	switch cfg.Type {
	case "file":
		opts, err := cfg.DecodeFileSinkOptions()
		if err != nil {
			return nil, err
		}
		return audit.NewFileAuditor(opts.Path)
	case "memory":
		return audit.NewInMemoryAuditor(), nil
	case "noop":
		return audit.NewNoopAuditor(), nil
	default:
		return nil, fmt.Errorf("unknown audit sink type %q", cfg.Type)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "secureclaw.yaml", "server configuration file")
}
