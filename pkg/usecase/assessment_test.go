package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/usecase"
)

func TestAssessmentSubmit(t *testing.T) {
	uc := newTestUseCases()
	ctx := context.Background()

	session := gt.R1(uc.Session.Create(ctx)).NoError(t)

	input := &usecase.ChecklistInput{
		Meta: model.AssessmentMeta{SystemName: "fraud-detector"},
		Answers: model.AnswerSet{
			"1.1": types.AnswerFullyCompliant,
			"1.2": types.AnswerPartial,
			"6.1": types.AnswerNonCompliant,
			"6.2": types.AnswerNonCompliant,
		},
	}

	record := gt.R1(uc.Assessment.Submit(ctx, session.ID, input)).NoError(t)

	// Fairness: (3 + 0.5) / 4 = 87.5. Oversight: 0 / 5 = 0.
	// Sections combine unweighted: (87.5 + 0) / 2 = 43.75.
	gt.Number(t, record.OverallScore).Equal(43.75)
	gt.Value(t, record.Readiness).Equal(types.TierHigh)
	gt.Number(t, record.CriticalIssues).Equal(1)

	gt.Array(t, record.SectionResults).Length(2)
	gt.Number(t, record.SectionResults[0].Score).Equal(87.5)
	gt.Number(t, record.SectionResults[1].Score).Equal(0.0)

	// Attention items come back in priority order
	gt.Array(t, record.AttentionItems).Length(3)
	gt.Value(t, record.AttentionItems[0].QuestionID).Equal(types.QuestionID("6.1"))
	gt.Value(t, record.AttentionItems[1].QuestionID).Equal(types.QuestionID("6.2"))
	gt.Value(t, record.AttentionItems[2].QuestionID).Equal(types.QuestionID("1.2"))
}

func TestAssessmentHistoryAppends(t *testing.T) {
	uc := newTestUseCases()
	ctx := context.Background()

	session := gt.R1(uc.Session.Create(ctx)).NoError(t)

	// Same system assessed twice: two independent records
	for range 2 {
		input := &usecase.ChecklistInput{
			Meta:    model.AssessmentMeta{SystemName: "fraud-detector"},
			Answers: model.AnswerSet{"1.1": types.AnswerFullyCompliant},
		}
		gt.R1(uc.Assessment.Submit(ctx, session.ID, input)).NoError(t)
	}
	gt.R1(uc.Assessment.Submit(ctx, session.ID, &usecase.ChecklistInput{
		Meta:    model.AssessmentMeta{SystemName: "chatbot"},
		Answers: model.AnswerSet{"6.1": types.AnswerFullyCompliant},
	})).NoError(t)

	history := gt.R1(uc.Assessment.History(ctx, session.ID)).NoError(t)
	gt.Array(t, history).Length(3)
	gt.Value(t, history[0].Meta.SystemName).Equal("fraud-detector")
	gt.Value(t, history[1].Meta.SystemName).Equal("fraud-detector")
	gt.Value(t, history[2].Meta.SystemName).Equal("chatbot")
}

func TestAssessmentSubmitNoAnswers(t *testing.T) {
	uc := newTestUseCases()
	ctx := context.Background()

	session := gt.R1(uc.Session.Create(ctx)).NoError(t)

	// All questions unanswered score as not assessed
	record := gt.R1(uc.Assessment.Submit(ctx, session.ID, &usecase.ChecklistInput{
		Meta: model.AssessmentMeta{SystemName: "fraud-detector"},
	})).NoError(t)

	gt.Number(t, record.OverallScore).Equal(0.0)
	gt.Value(t, record.Readiness).Equal(types.TierHigh)
	gt.Number(t, record.CriticalIssues).Equal(0)
	gt.Array(t, record.AttentionItems).Length(0)
}
