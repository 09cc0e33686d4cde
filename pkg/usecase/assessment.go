package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/scoring"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// AssessmentUseCase runs the ethical assessment checklist
type AssessmentUseCase struct {
	repo    interfaces.Repository
	catalog *model.Catalog
	clock   func() time.Time
}

func NewAssessmentUseCase(repo interfaces.Repository, catalog *model.Catalog, clock func() time.Time) *AssessmentUseCase {
	return &AssessmentUseCase{repo: repo, catalog: catalog, clock: clock}
}

// ChecklistInput is one checklist submission
type ChecklistInput struct {
	Meta    model.AssessmentMeta
	Answers model.AnswerSet
}

// Submit scores a checklist submission and appends the record to the
// session history. Every submission is an independent record: assessing
// the same system again yields a new entry, never a replacement.
func (uc *AssessmentUseCase) Submit(ctx context.Context, sessionID types.SessionID, input *ChecklistInput) (*model.AssessmentRecord, error) {
	if input.Meta.SystemName == "" {
		return nil, goerr.Wrap(ErrMissingSystemName, "system name is required")
	}

	qn, err := uc.catalog.Questionnaire(model.QuestionnaireChecklist)
	if err != nil {
		return nil, goerr.Wrap(ErrQuestionnaireNotFound, "checklist questionnaire is not configured")
	}

	answers, err := validateAnswers(qn, input.Answers)
	if err != nil {
		return nil, err
	}

	results := scoring.ScoreQuestionnaire(qn, answers)
	overall, tier, err := scoring.ScoreOverall(results, qn.Mode)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to combine section scores")
	}

	record := &model.AssessmentRecord{
		Timestamp:      uc.clock(),
		Meta:           input.Meta,
		SectionResults: results,
		OverallScore:   overall,
		Readiness:      tier,
		CriticalIssues: scoring.CountCriticalIssues(qn, answers),
		AttentionItems: scoring.AttentionItems(qn, answers),
		Answers:        answers.Clone(),
	}

	if err := uc.repo.Session().AppendAssessment(ctx, sessionID, record); err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	logging.From(ctx).Info("ethical assessment completed",
		"session_id", sessionID,
		"system", input.Meta.SystemName,
		"score", overall,
		"readiness", tier.ReadinessLabel(),
		"critical_issues", record.CriticalIssues,
	)
	return record, nil
}

// History returns the session's checklist records in completion order
func (uc *AssessmentUseCase) History(ctx context.Context, sessionID types.SessionID) ([]*model.AssessmentRecord, error) {
	history, err := uc.repo.Session().History(ctx, sessionID)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}
	return history, nil
}
