package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// ErrNotFound is returned when a catalog lookup references an undefined
// questionnaire, category or question. This indicates a configuration or
// programming error rather than bad user input.
var ErrNotFound = goerr.New("not found")

// Question is a single assessment question. A question carries either an
// explicit numeric weight or a priority label that maps to a fixed weight
// table; immutable once defined.
type Question struct {
	ID       types.QuestionID
	Prompt   string
	Weight   float64
	Priority types.Priority
}

// EffectiveWeight returns the scoring weight of the question: the explicit
// weight when set, otherwise the weight of the priority label.
func (q *Question) EffectiveWeight() float64 {
	if q.Weight > 0 {
		return q.Weight
	}
	if q.Priority != "" {
		return q.Priority.Weight()
	}
	return 1
}

// Category is a named, ordered group of questions with a category-level
// weight used when combining categories into an overall score.
type Category struct {
	ID              types.CategoryID
	Name            string
	Description     string
	Weight          float64
	Questions       []Question
	Recommendations []string
}

// EffectiveWeight returns the category weight, defaulting to 1.0
func (c *Category) EffectiveWeight() float64 {
	if c.Weight > 0 {
		return c.Weight
	}
	return 1
}

// Question looks up a question by ID within the category
func (c *Category) Question(id types.QuestionID) (*Question, error) {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i], nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "question not found",
		goerr.V("category_id", c.ID), goerr.V("question_id", id))
}

// Questionnaire is a complete, immutable questionnaire definition. The
// category order is declaration order and is used for display and for
// deterministic report ordering.
type Questionnaire struct {
	ID         types.QuestionnaireID
	Name       string
	Mode       types.CombineMode
	Categories []Category
}

// Category looks up a category by ID
func (q *Questionnaire) Category(id types.CategoryID) (*Category, error) {
	for i := range q.Categories {
		if q.Categories[i].ID == id {
			return &q.Categories[i], nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "category not found",
		goerr.V("questionnaire_id", q.ID), goerr.V("category_id", id))
}

// Question looks up a question by ID across all categories of the
// questionnaire, returning the owning category as well.
func (q *Questionnaire) Question(id types.QuestionID) (*Category, *Question, error) {
	for i := range q.Categories {
		cat := &q.Categories[i]
		for j := range cat.Questions {
			if cat.Questions[j].ID == id {
				return cat, &cat.Questions[j], nil
			}
		}
	}
	return nil, nil, goerr.Wrap(ErrNotFound, "question not found",
		goerr.V("questionnaire_id", q.ID), goerr.V("question_id", id))
}

// Well-known questionnaire IDs shipped in the default catalog. The two
// variants share one engine and differ only in configuration.
const (
	QuestionnaireRisk      types.QuestionnaireID = "risk-identification"
	QuestionnaireChecklist types.QuestionnaireID = "ethical-assessment"
)

// Catalog holds all configured questionnaires in declaration order
type Catalog struct {
	Questionnaires []Questionnaire
}

// Questionnaire looks up a questionnaire by ID
func (c *Catalog) Questionnaire(id types.QuestionnaireID) (*Questionnaire, error) {
	for i := range c.Questionnaires {
		if c.Questionnaires[i].ID == id {
			return &c.Questionnaires[i], nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "questionnaire not found", goerr.V("questionnaire_id", id))
}
