package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/report"
	"github.com/fintech-ethics/themis/pkg/service/render"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// ReportUseCase assembles and exports the consolidated session report
type ReportUseCase struct {
	repo    interfaces.Repository
	clock   func() time.Time
	version string
}

func NewReportUseCase(repo interfaces.Repository, clock func() time.Time, version string) *ReportUseCase {
	return &ReportUseCase{repo: repo, clock: clock, version: version}
}

// Build assembles the report payload from the session's current state.
// Sessions with no completed assessments still produce a report with every
// section marked as not completed.
func (uc *ReportUseCase) Build(ctx context.Context, sessionID types.SessionID) (*report.Payload, error) {
	session, err := uc.repo.Session().Get(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	return report.Build(session.RiskAssessment, session.GovernancePlan, session.Assessments, uc.clock(), uc.version), nil
}

// Export builds the report and renders it in the requested format. An
// unsupported format is an input error; a renderer failure degrades to the
// JSON rendition so a report export never comes back empty.
func (uc *ReportUseCase) Export(ctx context.Context, sessionID types.SessionID, format render.Format) ([]byte, string, error) {
	renderer, err := render.New(format)
	if err != nil {
		return nil, "", err
	}
	return uc.ExportWith(ctx, sessionID, renderer)
}

// ExportWith renders the session report with the given renderer, falling
// back to JSON when rendering fails.
func (uc *ReportUseCase) ExportWith(ctx context.Context, sessionID types.SessionID, renderer render.Renderer) ([]byte, string, error) {
	payload, err := uc.Build(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	data, err := renderer.Render(ctx, payload)
	if err == nil {
		return data, renderer.ContentType(), nil
	}

	logging.From(ctx).Warn("report rendering failed, falling back to JSON",
		"session_id", sessionID,
		"content_type", renderer.ContentType(),
		"error", err,
	)

	fallback, ferr := render.New(render.FormatJSON)
	if ferr != nil {
		return nil, "", ferr
	}
	data, ferr = fallback.Render(ctx, payload)
	if ferr != nil {
		return nil, "", goerr.Wrap(ferr, "failed to render report", goerr.V(SessionIDKey, sessionID))
	}
	return data, fallback.ContentType(), nil
}
