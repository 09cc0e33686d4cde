package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// Sentry represents the Sentry error reporting configuration
type Sentry struct {
	dsn string
	env string
}

// Flags returns the CLI flags for the Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN (empty disables error reporting)",
			Sources:     cli.EnvVars("THEMIS_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Sources:     cli.EnvVars("THEMIS_SENTRY_ENV"),
			Destination: &s.env,
		},
	}
}

// Configure initializes the Sentry SDK when a DSN is set. The returned
// closer flushes buffered events and must be called on shutdown.
func (s *Sentry) Configure(version string) (func(), error) {
	if s.dsn == "" {
		logging.Default().Debug("sentry is disabled")
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.env,
		Release:     version,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

// LogValue implements slog.LogValuer. The DSN carries a secret key, only
// its presence is logged.
func (s Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", s.dsn != ""),
		slog.String("env", s.env),
	)
}
