package config

import (
	_ "embed"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

//go:embed catalog.toml
var defaultCatalogTOML []byte

// Catalog represents the questionnaire catalog configuration
type Catalog struct {
	Questionnaires []Questionnaire `toml:"questionnaire"`
}

// Questionnaire represents a single questionnaire configuration
type Questionnaire struct {
	ID         string     `toml:"id"`
	Name       string     `toml:"name"`
	Mode       string     `toml:"mode"`
	Categories []Category `toml:"category"`
}

// Validate checks if the Questionnaire is valid
func (q *Questionnaire) Validate() error {
	id := types.QuestionnaireID(q.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid questionnaire ID")
	}
	if q.Name == "" {
		return goerr.New("questionnaire name is required", goerr.V("id", q.ID))
	}
	if q.Mode != "" {
		if _, err := types.ParseCombineMode(q.Mode); err != nil {
			return goerr.Wrap(err, "invalid questionnaire mode", goerr.V("id", q.ID))
		}
	}
	if len(q.Categories) == 0 {
		return goerr.New("questionnaire must have at least one category", goerr.V("id", q.ID))
	}

	categoryIDs := make(map[string]bool)
	questionIDs := make(map[string]bool)
	for _, cat := range q.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category", goerr.V("questionnaire_id", q.ID))
		}
		if categoryIDs[cat.ID] {
			return goerr.New("duplicate category ID", goerr.V("questionnaire_id", q.ID), goerr.V("id", cat.ID))
		}
		categoryIDs[cat.ID] = true

		// Question IDs must be unique across the whole questionnaire so
		// submitted answers can reference them without a category prefix.
		for _, question := range cat.Questions {
			if questionIDs[question.ID] {
				return goerr.New("duplicate question ID", goerr.V("questionnaire_id", q.ID), goerr.V("id", question.ID))
			}
			questionIDs[question.ID] = true
		}
	}

	return nil
}

// Category represents a question category configuration
type Category struct {
	ID              string     `toml:"id"`
	Name            string     `toml:"name"`
	Description     string     `toml:"description"`
	Weight          float64    `toml:"weight"`
	Recommendations []string   `toml:"recommendations"`
	Questions       []Question `toml:"question"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	id := types.CategoryID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if c.Name == "" {
		return goerr.New("category name is required", goerr.V("id", c.ID))
	}
	if c.Weight < 0 {
		return goerr.New("category weight must not be negative", goerr.V("id", c.ID), goerr.V("weight", c.Weight))
	}
	if len(c.Questions) == 0 {
		return goerr.New("category must have at least one question", goerr.V("id", c.ID))
	}
	for _, question := range c.Questions {
		if err := question.Validate(); err != nil {
			return goerr.Wrap(err, "invalid question", goerr.V("category_id", c.ID))
		}
	}
	return nil
}

// Question represents a single question configuration
type Question struct {
	ID       string  `toml:"id"`
	Prompt   string  `toml:"prompt"`
	Weight   float64 `toml:"weight"`
	Priority string  `toml:"priority"`
}

// Validate checks if the Question is valid
func (q *Question) Validate() error {
	id := types.QuestionID(q.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid question ID")
	}
	if q.Prompt == "" {
		return goerr.New("question prompt is required", goerr.V("id", q.ID))
	}
	if q.Weight < 0 {
		return goerr.New("question weight must not be negative", goerr.V("id", q.ID), goerr.V("weight", q.Weight))
	}
	if q.Priority != "" {
		if _, err := types.ParsePriority(q.Priority); err != nil {
			return goerr.Wrap(err, "invalid question priority", goerr.V("id", q.ID))
		}
	}
	if q.Weight == 0 && q.Priority == "" {
		return goerr.New("question must have a weight or a priority", goerr.V("id", q.ID))
	}
	return nil
}

// Validate checks if the Catalog is valid
func (c *Catalog) Validate() error {
	if len(c.Questionnaires) == 0 {
		return goerr.New("catalog must define at least one questionnaire")
	}

	questionnaireIDs := make(map[string]bool)
	for _, qn := range c.Questionnaires {
		if err := qn.Validate(); err != nil {
			return goerr.Wrap(err, "invalid questionnaire")
		}
		if questionnaireIDs[qn.ID] {
			return goerr.New("duplicate questionnaire ID", goerr.V("id", qn.ID))
		}
		questionnaireIDs[qn.ID] = true
	}

	return nil
}

// LoadCatalog loads a questionnaire catalog from a TOML file. An empty path
// loads the embedded default catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalogTOML
	if path != "" {
		// #nosec G304 - path is expected to be provided by CLI argument
		loaded, err := os.ReadFile(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read catalog file", goerr.V("path", path))
		}
		data = loaded
	}

	var catalog Catalog
	if err := toml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML catalog", goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "catalog validation failed", goerr.V("path", path))
	}

	return &catalog, nil
}

// ToModel converts the Catalog configuration to the domain catalog
func (c *Catalog) ToModel() *model.Catalog {
	questionnaires := make([]model.Questionnaire, len(c.Questionnaires))
	for i, qn := range c.Questionnaires {
		categories := make([]model.Category, len(qn.Categories))
		for j, cat := range qn.Categories {
			questions := make([]model.Question, len(cat.Questions))
			for k, question := range cat.Questions {
				questions[k] = model.Question{
					ID:       types.QuestionID(question.ID),
					Prompt:   question.Prompt,
					Weight:   question.Weight,
					Priority: types.Priority(question.Priority),
				}
			}
			categories[j] = model.Category{
				ID:              types.CategoryID(cat.ID),
				Name:            cat.Name,
				Description:     cat.Description,
				Weight:          cat.Weight,
				Questions:       questions,
				Recommendations: append([]string(nil), cat.Recommendations...),
			}
		}
		questionnaires[i] = model.Questionnaire{
			ID:         types.QuestionnaireID(qn.ID),
			Name:       qn.Name,
			Mode:       types.CombineMode(qn.Mode).Normalize(),
			Categories: categories,
		}
	}

	return &model.Catalog{Questionnaires: questionnaires}
}
