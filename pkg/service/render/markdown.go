package render

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fintech-ethics/themis/pkg/report"
)

type markdownRenderer struct{}

// Render produces a markdown document whose top-level sections mirror the
// four payload keys one to one.
func (r *markdownRenderer) Render(_ context.Context, payload *report.Payload) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# AI Governance Report\n\n")
	fmt.Fprintf(&b, "- Generated: %s\n", payload.Metadata.GeneratedAt)
	fmt.Fprintf(&b, "- Tool version: %s\n\n", payload.Metadata.ToolVersion)

	writeRiskSection(&b, payload.Risk)
	writeGovernanceSection(&b, payload.Governance)
	writeAssessmentSection(&b, payload.Assessments)

	return []byte(b.String()), nil
}

func (r *markdownRenderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

func writeRiskSection(b *strings.Builder, section report.RiskSection) {
	b.WriteString("## Risk Assessment\n\n")
	if !section.Completed || section.Result == nil {
		b.WriteString("Not yet completed.\n\n")
		return
	}
	result := section.Result

	fmt.Fprintf(b, "- System: %s\n", result.System.Name)
	if result.System.Assessor != "" {
		fmt.Fprintf(b, "- Assessor: %s\n", result.System.Assessor)
	}
	fmt.Fprintf(b, "- Assessed at: %s\n", result.AssessedAt)
	fmt.Fprintf(b, "- Overall score: %.1f (%s risk)\n", result.OverallScore, result.RiskLevel)
	fmt.Fprintf(b, "- Critical issues: %d\n", result.CriticalIssues)
	if result.EUHighRisk {
		b.WriteString("- EU AI Act: likely high-risk classification\n")
	}
	b.WriteString("\n")

	if len(result.Categories) > 0 {
		b.WriteString("| Category | Score | Risk |\n")
		b.WriteString("|---|---|---|\n")
		for _, cat := range result.Categories {
			fmt.Fprintf(b, "| %s | %.1f | %s |\n", cat.Name, cat.Score, cat.Level)
		}
		b.WriteString("\n")
	}

	if len(result.Recommendations) > 0 {
		b.WriteString("### Recommendations\n\n")
		catIDs := make([]string, 0, len(result.Recommendations))
		for catID := range result.Recommendations {
			catIDs = append(catIDs, catID)
		}
		sort.Strings(catIDs)
		for _, catID := range catIDs {
			for _, rec := range result.Recommendations[catID] {
				fmt.Fprintf(b, "- %s: %s\n", catID, rec)
			}
		}
		b.WriteString("\n")
	}
}

func writeGovernanceSection(b *strings.Builder, section report.GovernanceSection) {
	b.WriteString("## Governance Framework\n\n")
	if !section.Completed || section.Plan == nil {
		b.WriteString("Not yet completed.\n\n")
		return
	}
	plan := section.Plan

	fmt.Fprintf(b, "- Saved at: %s\n", plan.SavedAt)
	if plan.Organization.PrimaryBusiness != "" {
		fmt.Fprintf(b, "- Organization: %s (%s)\n", plan.Organization.PrimaryBusiness, plan.Organization.Size)
	}
	if plan.Structure.AIOfficer != "" {
		fmt.Fprintf(b, "- AI officer: %s\n", plan.Structure.AIOfficer)
	}
	fmt.Fprintf(b, "- Policies defined: %d of %d\n", plan.Summary.PoliciesDefined, plan.Summary.PoliciesTotal)
	fmt.Fprintf(b, "- Procedures defined: %d of %d\n", plan.Summary.ProceduresDefined, plan.Summary.ProceduresTotal)
	fmt.Fprintf(b, "- Lifecycle controls selected: %d\n", plan.Summary.LifecycleControls)
	b.WriteString("\n")
}

func writeAssessmentSection(b *strings.Builder, section report.AssessmentSection) {
	b.WriteString("## Ethical Assessments\n\n")
	if !section.Completed || len(section.Records) == 0 {
		b.WriteString("Not yet completed.\n\n")
		return
	}

	fmt.Fprintf(b, "%d assessment(s) completed.\n\n", section.Count)
	for i, rec := range section.Records {
		fmt.Fprintf(b, "### %d. %s\n\n", i+1, rec.System.Name)
		fmt.Fprintf(b, "- Assessed at: %s\n", rec.AssessedAt)
		fmt.Fprintf(b, "- Overall score: %.1f (%s)\n", rec.OverallScore, rec.Readiness)
		fmt.Fprintf(b, "- Critical issues: %d\n", rec.CriticalIssues)
		b.WriteString("\n")

		if len(rec.Sections) > 0 {
			b.WriteString("| Section | Score | Result |\n")
			b.WriteString("|---|---|---|\n")
			for _, sec := range rec.Sections {
				fmt.Fprintf(b, "| %s | %.1f | %s |\n", sec.Name, sec.Score, sec.Level)
			}
			b.WriteString("\n")
		}

		if len(rec.Attention) > 0 {
			b.WriteString("Items needing attention:\n\n")
			for _, item := range rec.Attention {
				fmt.Fprintf(b, "- [%s] %s (%s)\n", item.Priority, item.Prompt, item.Status)
			}
			b.WriteString("\n")
		}
	}
}
