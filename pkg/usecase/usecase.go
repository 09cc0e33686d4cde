package usecase

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
)

type UseCases struct {
	repo    interfaces.Repository
	catalog *model.Catalog
	version string
	clock   func() time.Time

	Session    *SessionUseCase
	Risk       *RiskUseCase
	Governance *GovernanceUseCase
	Assessment *AssessmentUseCase
	Report     *ReportUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source, mainly for tests
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// WithVersion sets the tool version embedded in report metadata
func WithVersion(version string) Option {
	return func(uc *UseCases) {
		uc.version = version
	}
}

func New(repo interfaces.Repository, catalog *model.Catalog, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:    repo,
		catalog: catalog,
		version: "dev",
		clock:   func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Session = NewSessionUseCase(repo)
	uc.Risk = NewRiskUseCase(repo, catalog, uc.clock)
	uc.Governance = NewGovernanceUseCase(repo, uc.clock)
	uc.Assessment = NewAssessmentUseCase(repo, catalog, uc.clock)
	uc.Report = NewReportUseCase(repo, uc.clock, uc.version)

	return uc
}

// Catalog returns the configured questionnaire catalog
func (uc *UseCases) Catalog() *model.Catalog {
	return uc.catalog
}
