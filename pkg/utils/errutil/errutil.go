package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// Handle logs the error with structured context and reports it to Sentry
// when a Sentry client is configured. The error is returned unchanged so
// callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	sentry.CaptureException(err)

	return err
}

// HandleHTTP logs the error and writes a plain-text HTTP error response.
// Server-side (5xx) errors are also reported to Sentry; client errors are
// logged at warning level only.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	attrs := []any{
		"status", statusCode,
		"error", err.Error(),
	}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs, "values", ge.Values(), "stack", ge.Stacks())
	}

	if statusCode >= http.StatusInternalServerError {
		logger.Error("HTTP error", attrs...)
		sentry.CaptureException(err)
	} else {
		logger.Warn("HTTP error", attrs...)
	}

	http.Error(w, err.Error(), statusCode)
}
