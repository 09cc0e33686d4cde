package usecase_test

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/repository/memory"
	"github.com/fintech-ethics/themis/pkg/usecase"
)

var fixedTime = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func testCatalog() *model.Catalog {
	return &model.Catalog{
		Questionnaires: []model.Questionnaire{
			{
				ID:   model.QuestionnaireRisk,
				Name: "AI Risk Identification",
				Mode: types.CombineWeighted,
				Categories: []model.Category{
					{
						ID:     "fairness",
						Name:   "Fairness",
						Weight: 1.0,
						Questions: []model.Question{
							{ID: "f1", Prompt: "Bias testing performed", Weight: 3},
							{ID: "f2", Prompt: "Proxy variables reviewed", Weight: 3},
							{ID: "f3", Prompt: "Outcomes monitored by segment", Weight: 2},
						},
						Recommendations: []string{
							"Run a proxy variable audit",
							"Add per-segment outcome monitoring",
						},
					},
					{
						ID:     "transparency",
						Name:   "Transparency",
						Weight: 1.0,
						Questions: []model.Question{
							{ID: "t1", Prompt: "Decisions are explainable", Weight: 2},
							{ID: "t2", Prompt: "Model documentation exists", Weight: 2},
						},
						Recommendations: []string{
							"Produce adverse action explanations",
						},
					},
				},
			},
			{
				ID:   model.QuestionnaireChecklist,
				Name: "Ethical Assessment Checklist",
				Mode: types.CombineMean,
				Categories: []model.Category{
					{
						ID:   "fairness",
						Name: "Fairness & Non-Discrimination",
						Questions: []model.Question{
							{ID: "1.1", Prompt: "Protected characteristics are not direct inputs", Priority: types.PriorityCritical},
							{ID: "1.2", Prompt: "Fairness audits scheduled", Priority: types.PriorityMedium},
						},
					},
					{
						ID:   "oversight",
						Name: "Human Oversight",
						Questions: []model.Question{
							{ID: "6.1", Prompt: "Human review for high-stakes decisions", Priority: types.PriorityCritical},
							{ID: "6.2", Prompt: "Override mechanisms documented", Priority: types.PriorityHigh},
						},
					},
				},
			},
		},
	}
}

func newTestUseCases() *usecase.UseCases {
	return usecase.New(memory.New(), testCatalog(),
		usecase.WithClock(func() time.Time { return fixedTime }),
		usecase.WithVersion("test"),
	)
}
