package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/scoring"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// recommendationThreshold is the category score below which the category's
// improvement recommendations are attached to the result.
const recommendationThreshold = 70.0

// euHighRiskUseCases are the EU AI Act Annex III use case areas relevant to
// financial services. A substring match against the declared use case is
// intentional: the field is free text.
var euHighRiskUseCases = []string{
	"credit",
	"creditworthiness",
	"insurance",
	"employment",
	"biometric",
	"fraud",
}

// RiskUseCase runs the risk identification questionnaire
type RiskUseCase struct {
	repo    interfaces.Repository
	catalog *model.Catalog
	clock   func() time.Time
}

func NewRiskUseCase(repo interfaces.Repository, catalog *model.Catalog, clock func() time.Time) *RiskUseCase {
	return &RiskUseCase{repo: repo, catalog: catalog, clock: clock}
}

// RiskInput is one risk questionnaire submission
type RiskInput struct {
	Meta    model.AssessmentMeta
	Answers model.AnswerSet
}

// Submit scores a risk questionnaire submission and stores the result on
// the session, replacing any previous risk assessment.
func (uc *RiskUseCase) Submit(ctx context.Context, sessionID types.SessionID, input *RiskInput) (*model.RiskAssessment, error) {
	if input.Meta.SystemName == "" {
		return nil, goerr.Wrap(ErrMissingSystemName, "system name is required")
	}

	qn, err := uc.catalog.Questionnaire(model.QuestionnaireRisk)
	if err != nil {
		return nil, goerr.Wrap(ErrQuestionnaireNotFound, "risk questionnaire is not configured")
	}

	answers, err := validateAnswers(qn, input.Answers)
	if err != nil {
		return nil, err
	}

	results := scoring.ScoreQuestionnaire(qn, answers)
	overall, tier, err := scoring.ScoreOverall(results, qn.Mode)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to combine category scores")
	}

	assessment := &model.RiskAssessment{
		Timestamp:       uc.clock(),
		Meta:            input.Meta,
		CategoryResults: results,
		OverallScore:    overall,
		RiskLevel:       tier,
		CriticalIssues:  scoring.CountCriticalIssues(qn, answers),
		EUHighRisk:      euHighRisk(input.Meta),
		Recommendations: recommendations(qn, results),
		Answers:         answers.Clone(),
	}

	if err := uc.repo.Session().PutRiskAssessment(ctx, sessionID, assessment); err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	logging.From(ctx).Info("risk assessment completed",
		"session_id", sessionID,
		"system", input.Meta.SystemName,
		"score", overall,
		"risk_level", tier,
	)
	return assessment, nil
}

// validateAnswers checks every submitted answer against the questionnaire
// and normalizes the set. Unknown questions and invalid statuses are
// rejected; unanswered questions stay absent and score as not assessed.
func validateAnswers(qn *model.Questionnaire, raw model.AnswerSet) (model.AnswerSet, error) {
	answers := make(model.AnswerSet, len(raw))
	for qid, status := range raw {
		if _, _, err := qn.Question(qid); err != nil {
			return nil, goerr.Wrap(ErrUnknownQuestion, "question is not part of the questionnaire",
				goerr.V(QuestionIDKey, qid), goerr.V("questionnaire_id", qn.ID))
		}
		normalized := status.Normalize()
		if !normalized.IsValid() {
			return nil, goerr.Wrap(ErrInvalidAnswerStatus, "unknown answer status",
				goerr.V(QuestionIDKey, qid), goerr.V("status", status))
		}
		answers[qid] = normalized
	}
	return answers, nil
}

// recommendations collects the improvement recommendations of every
// category scoring below the threshold, keyed by category.
func recommendations(qn *model.Questionnaire, results []model.CategoryResult) map[types.CategoryID][]string {
	recs := make(map[types.CategoryID][]string)
	for _, result := range results {
		if result.Score >= recommendationThreshold {
			continue
		}
		cat, err := qn.Category(result.CategoryID)
		if err != nil || len(cat.Recommendations) == 0 {
			continue
		}
		recs[result.CategoryID] = cat.Recommendations
	}
	return recs
}

// euHighRisk reports whether the assessed system likely falls under the EU
// AI Act high-risk classification: deployed in the EU for one of the Annex
// III use case areas.
func euHighRisk(meta model.AssessmentMeta) bool {
	inEU := false
	for _, j := range meta.Jurisdictions {
		if strings.EqualFold(j, "EU") || strings.EqualFold(j, "EEA") {
			inEU = true
			break
		}
	}
	if !inEU {
		return false
	}

	useCase := strings.ToLower(meta.UseCase)
	for _, keyword := range euHighRiskUseCases {
		if strings.Contains(useCase, keyword) {
			return true
		}
	}
	return false
}
