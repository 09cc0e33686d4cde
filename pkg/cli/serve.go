package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintech-ethics/themis/pkg/cli/config"
	httpctrl "github.com/fintech-ethics/themis/pkg/controller/http"
	"github.com/fintech-ethics/themis/pkg/repository/memory"
	"github.com/fintech-ethics/themis/pkg/service/worker"
	"github.com/fintech-ethics/themis/pkg/usecase"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var catalogPath string
	var sessionTTL time.Duration
	var sweepInterval time.Duration

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("THEMIS_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to questionnaire catalog TOML (empty uses the built-in catalog)",
			Sources:     cli.EnvVars("THEMIS_CATALOG"),
			Destination: &catalogPath,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which a session expires",
			Value:       24 * time.Hour,
			Sources:     cli.EnvVars("THEMIS_SESSION_TTL"),
			Destination: &sessionTTL,
		},
		&cli.DurationFlag{
			Name:        "sweep-interval",
			Usage:       "Interval between expired session sweeps",
			Value:       10 * time.Minute,
			Sources:     cli.EnvVars("THEMIS_SWEEP_INTERVAL"),
			Destination: &sweepInterval,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalogCfg, err := config.LoadCatalog(catalogPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load questionnaire catalog")
			}
			catalog := catalogCfg.ToModel()

			repo := memory.New()
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, catalog, usecase.WithVersion(c.Root().Version))

			expiryWorker := worker.NewSessionExpiryWorker(repo, sessionTTL, sweepInterval)
			if err := expiryWorker.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start session expiry worker")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"session_ttl", sessionTTL,
					"sweep_interval", sweepInterval,
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				expiryWorker.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				expiryWorker.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
