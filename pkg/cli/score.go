package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/fintech-ethics/themis/pkg/cli/config"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/repository/memory"
	"github.com/fintech-ethics/themis/pkg/service/render"
	"github.com/fintech-ethics/themis/pkg/usecase"
)

// scoreInput is the JSON input format of the score command. Answer maps
// are keyed by question ID; at least one answer map must be present.
type scoreInput struct {
	SystemName      string            `json:"system_name"`
	Assessor        string            `json:"assessor"`
	UseCase         string            `json:"use_case"`
	DeploymentStage string            `json:"deployment_stage"`
	Jurisdictions   []string          `json:"jurisdictions"`
	CustomerTypes   []string          `json:"customer_types"`

	RiskAnswers      map[string]string `json:"risk_answers"`
	ChecklistAnswers map[string]string `json:"checklist_answers"`
}

func (s *scoreInput) meta() model.AssessmentMeta {
	return model.AssessmentMeta{
		SystemName:      s.SystemName,
		Assessor:        s.Assessor,
		UseCase:         s.UseCase,
		DeploymentStage: s.DeploymentStage,
		Jurisdictions:   s.Jurisdictions,
		CustomerTypes:   s.CustomerTypes,
	}
}

func toAnswerSet(raw map[string]string) model.AnswerSet {
	answers := make(model.AnswerSet, len(raw))
	for qid, status := range raw {
		answers[types.QuestionID(qid)] = types.AnswerStatus(status)
	}
	return answers
}

func cmdScore() *cli.Command {
	var catalogPath string
	var inputPath string
	var outputDir string
	var formats []string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "Path to questionnaire catalog TOML (empty uses the built-in catalog)",
			Sources:     cli.EnvVars("THEMIS_CATALOG"),
			Destination: &catalogPath,
		},
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to answers JSON file",
			Required:    true,
			Destination: &inputPath,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Directory to write report files to",
			Value:       ".",
			Destination: &outputDir,
		},
		&cli.StringSliceFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Report formats to export (json, markdown, html)",
			Value:       []string{"json", "markdown", "html"},
			Destination: &formats,
		},
	}

	return &cli.Command{
		Name:  "score",
		Usage: "Score an assessment from a JSON answer file and export reports",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			catalogCfg, err := config.LoadCatalog(catalogPath)
			if err != nil {
				return goerr.Wrap(err, "failed to load questionnaire catalog")
			}

			// #nosec G304 - path is expected to be provided by CLI argument
			data, err := os.ReadFile(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to read input file", goerr.V("path", inputPath))
			}
			var input scoreInput
			if err := json.Unmarshal(data, &input); err != nil {
				return goerr.Wrap(err, "failed to parse input file", goerr.V("path", inputPath))
			}
			if len(input.RiskAnswers) == 0 && len(input.ChecklistAnswers) == 0 {
				return goerr.New("input has no answers", goerr.V("path", inputPath))
			}

			renderers := make(map[render.Format]render.Renderer, len(formats))
			for _, f := range formats {
				format := render.Format(f).Normalize()
				renderer, err := render.New(format)
				if err != nil {
					return goerr.Wrap(err, "unsupported report format", goerr.V("format", f))
				}
				renderers[format] = renderer
			}

			repo := memory.New()
			defer func() {
				_ = repo.Close()
			}()
			uc := usecase.New(repo, catalogCfg.ToModel(), usecase.WithVersion(c.Root().Version))

			session, err := uc.Session.Create(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to create session")
			}

			if len(input.RiskAnswers) > 0 {
				result, err := uc.Risk.Submit(ctx, session.ID, &usecase.RiskInput{
					Meta:    input.meta(),
					Answers: toAnswerSet(input.RiskAnswers),
				})
				if err != nil {
					return goerr.Wrap(err, "risk assessment failed")
				}
				printRiskResult(result)
			}

			if len(input.ChecklistAnswers) > 0 {
				record, err := uc.Assessment.Submit(ctx, session.ID, &usecase.ChecklistInput{
					Meta:    input.meta(),
					Answers: toAnswerSet(input.ChecklistAnswers),
				})
				if err != nil {
					return goerr.Wrap(err, "ethical assessment failed")
				}
				printChecklistResult(record)
			}

			if err := os.MkdirAll(outputDir, 0750); err != nil {
				return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", outputDir))
			}

			eg, egCtx := errgroup.WithContext(ctx)
			for format, renderer := range renderers {
				path := filepath.Join(outputDir, "report"+formatExt(format))
				eg.Go(func() error {
					out, _, err := uc.Report.ExportWith(egCtx, session.ID, renderer)
					if err != nil {
						return goerr.Wrap(err, "failed to export report", goerr.V("format", format))
					}
					if err := os.WriteFile(path, out, 0600); err != nil {
						return goerr.Wrap(err, "failed to write report file", goerr.V("path", path))
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				return err
			}

			fmt.Println()
			for format := range renderers {
				path := filepath.Join(outputDir, "report"+formatExt(format))
				color.New(color.FgGreen).Printf("✓ wrote %s\n", path)
			}
			return nil
		},
	}
}

func formatExt(f render.Format) string {
	switch f {
	case render.FormatMarkdown:
		return ".md"
	case render.FormatHTML:
		return ".html"
	default:
		return ".json"
	}
}

func tierColor(t types.Tier) *color.Color {
	switch t {
	case types.TierLow:
		return color.New(color.FgGreen, color.Bold)
	case types.TierMedium:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printRiskResult(result *model.RiskAssessment) {
	fmt.Printf("Risk assessment for %s\n", color.CyanString(result.Meta.SystemName))
	fmt.Printf("  Overall score:   %.1f\n", result.OverallScore)
	fmt.Printf("  Risk level:      %s\n", tierColor(result.RiskLevel).Sprint(result.RiskLevel.RiskLabel()))
	fmt.Printf("  Critical issues: %d\n", result.CriticalIssues)
	if result.EUHighRisk {
		color.New(color.FgYellow).Println("  ⚠ Likely EU AI Act high-risk classification")
	}
	for _, cat := range result.CategoryResults {
		fmt.Printf("    %-40s %6.1f  %s\n", cat.Name, cat.Score, tierColor(cat.Tier).Sprint(cat.Tier.RiskLabel()))
	}
}

func printChecklistResult(record *model.AssessmentRecord) {
	fmt.Printf("Ethical assessment for %s\n", color.CyanString(record.Meta.SystemName))
	fmt.Printf("  Overall score:   %.1f\n", record.OverallScore)
	fmt.Printf("  Readiness:       %s\n", tierColor(record.Readiness).Sprint(record.Readiness.ReadinessLabel()))
	fmt.Printf("  Critical issues: %d\n", record.CriticalIssues)
	for _, item := range record.AttentionItems {
		fmt.Printf("    [%s] %s: %s\n", item.Priority, item.QuestionID, item.Prompt)
	}
}
