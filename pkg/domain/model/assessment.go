package model

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// AnswerSet maps question IDs to their recorded answer status. One answer
// per question per assessment; last write wins.
type AnswerSet map[types.QuestionID]types.AnswerStatus

// Clone returns a copy of the answer set
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	cloned := make(AnswerSet, len(a))
	for k, v := range a {
		cloned[k] = v
	}
	return cloned
}

// CategoryResult is the scored outcome of one category. Score keeps full
// float64 precision; rounding to one decimal happens only at the report
// boundary.
type CategoryResult struct {
	CategoryID types.CategoryID
	Name       string
	Weight     float64
	Score      float64
	Tier       types.Tier
}

// AssessmentMeta carries the free-text and selection metadata entered by
// the user. Only presence checks are applied, never content validation.
type AssessmentMeta struct {
	SystemName      string
	Assessor        string
	UseCase         string
	DeploymentStage string
	Jurisdictions   []string
	CustomerTypes   []string
}

// RiskAssessment is the completed result of the risk-identification
// questionnaire. One per session; re-submitting replaces the previous one.
type RiskAssessment struct {
	Timestamp       time.Time
	Meta            AssessmentMeta
	CategoryResults []CategoryResult
	OverallScore    float64
	RiskLevel       types.Tier
	CriticalIssues  int
	EUHighRisk      bool
	Recommendations map[types.CategoryID][]string
	Answers         AnswerSet
}

// AttentionItem is a checklist question that needs remediation work,
// surfaced in priority order after a checklist submission.
type AttentionItem struct {
	QuestionID types.QuestionID
	CategoryID types.CategoryID
	Prompt     string
	Priority   types.Priority
	Status     types.AnswerStatus
}

// AssessmentRecord is one completed run of the ethical-assessment
// checklist. Records are appended to the session history in completion
// order and are never deduplicated: re-assessing the same system yields a
// new, independently scored record.
type AssessmentRecord struct {
	Timestamp      time.Time
	Meta           AssessmentMeta
	SectionResults []CategoryResult
	OverallScore   float64
	Readiness      types.Tier
	CriticalIssues int
	AttentionItems []AttentionItem
	Answers        AnswerSet
}
