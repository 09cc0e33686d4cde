// Package report assembles the consolidated governance report from the
// artifacts accumulated in a session. Building the payload is a pure
// transformation: missing sections are marked as not completed instead of
// failing, and scores are rounded to one decimal only here.
package report

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/scoring"
)

// Payload is the consolidated report. The four top-level JSON keys are a
// stable contract consumed by downstream tooling and must not change.
type Payload struct {
	Metadata    Metadata          `json:"report_metadata"`
	Risk        RiskSection       `json:"risk_assessment"`
	Governance  GovernanceSection `json:"governance_framework"`
	Assessments AssessmentSection `json:"ethical_assessments"`
}

// Metadata identifies when and by which tool version the report was built
type Metadata struct {
	GeneratedAt string `json:"generated_at"`
	ToolVersion string `json:"tool_version"`
}

// RiskSection carries the risk-identification result, if one was completed
type RiskSection struct {
	Completed bool        `json:"completed"`
	Result    *RiskResult `json:"result,omitempty"`
}

// RiskResult is the serialized outcome of the risk questionnaire
type RiskResult struct {
	AssessedAt      string              `json:"assessed_at"`
	System          SystemInfo          `json:"system"`
	OverallScore    float64             `json:"overall_score"`
	RiskLevel       string              `json:"risk_level"`
	CriticalIssues  int                 `json:"critical_issues"`
	EUHighRisk      bool                `json:"eu_high_risk"`
	Categories      []CategoryScore     `json:"categories"`
	Recommendations map[string][]string `json:"recommendations,omitempty"`
}

// SystemInfo describes the assessed AI system
type SystemInfo struct {
	Name            string   `json:"name"`
	Assessor        string   `json:"assessor,omitempty"`
	UseCase         string   `json:"use_case,omitempty"`
	DeploymentStage string   `json:"deployment_stage,omitempty"`
	Jurisdictions   []string `json:"jurisdictions,omitempty"`
	CustomerTypes   []string `json:"customer_types,omitempty"`
}

// CategoryScore is one category or checklist section with its rounded score
// and display label
type CategoryScore struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

// GovernanceSection carries the governance plan, if one was saved
type GovernanceSection struct {
	Completed bool              `json:"completed"`
	Plan      *GovernanceDetail `json:"plan,omitempty"`
}

// GovernanceDetail is the serialized governance framework
type GovernanceDetail struct {
	SavedAt           string              `json:"saved_at"`
	Organization      OrganizationInfo    `json:"organization"`
	Structure         StructureInfo       `json:"structure"`
	Policies          map[string]string   `json:"policies"`
	Procedures        map[string]string   `json:"procedures"`
	RiskManagement    RiskManagementInfo  `json:"risk_management"`
	LifecycleControls map[string][]string `json:"lifecycle_controls"`
	Monitoring        MonitoringInfo      `json:"monitoring"`
	Summary           SummaryInfo         `json:"summary"`
}

// OrganizationInfo describes the organization profile
type OrganizationInfo struct {
	Size             string `json:"size,omitempty"`
	PrimaryBusiness  string `json:"primary_business,omitempty"`
	RegulatoryStatus string `json:"regulatory_status,omitempty"`
	AIMaturity       string `json:"ai_maturity,omitempty"`
}

// StructureInfo describes accountability roles and committees
type StructureInfo struct {
	AIOfficer          string   `json:"ai_officer,omitempty"`
	ExecutiveSponsor   string   `json:"executive_sponsor,omitempty"`
	RiskOwner          string   `json:"risk_owner,omitempty"`
	EthicsOwner        string   `json:"ethics_owner,omitempty"`
	HasEthicsCommittee bool     `json:"has_ethics_committee"`
	HasModelCommittee  bool     `json:"has_model_committee"`
	HasDataCommittee   bool     `json:"has_data_committee"`
	FirstLine          []string `json:"first_line,omitempty"`
	SecondLine         []string `json:"second_line,omitempty"`
	ThirdLine          []string `json:"third_line,omitempty"`
}

// RiskManagementInfo describes the risk taxonomy and assessment approach
type RiskManagementInfo struct {
	Taxonomy  []string          `json:"taxonomy,omitempty"`
	Approach  string            `json:"approach,omitempty"`
	Frequency string            `json:"frequency,omitempty"`
	Appetite  map[string]string `json:"appetite,omitempty"`
}

// MonitoringInfo describes KPIs, reporting cadence and audit requirements
type MonitoringInfo struct {
	KPIs                []string      `json:"kpis,omitempty"`
	BoardReporting      ReportingInfo `json:"board_reporting"`
	ManagementReporting ReportingInfo `json:"management_reporting"`
	InternalAudit       bool          `json:"internal_audit"`
	ExternalAudit       bool          `json:"external_audit"`
	RegulatoryExamPrep  bool          `json:"regulatory_exam_prep"`
}

// ReportingInfo is one reporting line
type ReportingInfo struct {
	Frequency string   `json:"frequency,omitempty"`
	Content   []string `json:"content,omitempty"`
}

// SummaryInfo holds the headline counts of the governance plan
type SummaryInfo struct {
	PoliciesDefined   int `json:"policies_defined"`
	PoliciesTotal     int `json:"policies_total"`
	ProceduresDefined int `json:"procedures_defined"`
	ProceduresTotal   int `json:"procedures_total"`
	LifecycleControls int `json:"lifecycle_controls"`
}

// AssessmentSection carries the checklist history in completion order.
// Records are never deduplicated or reordered.
type AssessmentSection struct {
	Completed bool              `json:"completed"`
	Count     int               `json:"count"`
	Records   []AssessmentEntry `json:"records"`
}

// AssessmentEntry is one completed checklist run
type AssessmentEntry struct {
	AssessedAt     string          `json:"assessed_at"`
	System         SystemInfo      `json:"system"`
	OverallScore   float64         `json:"overall_score"`
	Readiness      string          `json:"readiness"`
	CriticalIssues int             `json:"critical_issues"`
	Sections       []CategoryScore `json:"sections"`
	Attention      []AttentionInfo `json:"attention_items,omitempty"`
}

// AttentionInfo is one checklist item flagged for remediation
type AttentionInfo struct {
	QuestionID string `json:"question_id"`
	Section    string `json:"section"`
	Prompt     string `json:"prompt"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
}

// Build assembles the report payload from whatever session artifacts exist.
// A nil risk assessment or governance plan and an empty history are all
// valid: the matching section is marked as not completed and the payload is
// still produced.
func Build(risk *model.RiskAssessment, plan *model.GovernancePlan, history []*model.AssessmentRecord, now time.Time, version string) *Payload {
	p := &Payload{
		Metadata: Metadata{
			GeneratedAt: now.UTC().Format(time.RFC3339),
			ToolVersion: version,
		},
		Assessments: AssessmentSection{
			Completed: len(history) > 0,
			Count:     len(history),
			Records:   make([]AssessmentEntry, 0, len(history)),
		},
	}

	if risk != nil {
		p.Risk = RiskSection{
			Completed: true,
			Result:    buildRiskResult(risk),
		}
	}
	if plan != nil {
		p.Governance = GovernanceSection{
			Completed: true,
			Plan:      buildGovernanceDetail(plan),
		}
	}
	for _, rec := range history {
		p.Assessments.Records = append(p.Assessments.Records, buildAssessmentEntry(rec))
	}

	return p
}

func buildRiskResult(risk *model.RiskAssessment) *RiskResult {
	result := &RiskResult{
		AssessedAt:     risk.Timestamp.UTC().Format(time.RFC3339),
		System:         buildSystemInfo(risk.Meta),
		OverallScore:   scoring.Round1(risk.OverallScore),
		RiskLevel:      risk.RiskLevel.RiskLabel(),
		CriticalIssues: risk.CriticalIssues,
		EUHighRisk:     risk.EUHighRisk,
		Categories:     make([]CategoryScore, 0, len(risk.CategoryResults)),
	}
	for _, cr := range risk.CategoryResults {
		result.Categories = append(result.Categories, CategoryScore{
			ID:    cr.CategoryID.String(),
			Name:  cr.Name,
			Score: scoring.Round1(cr.Score),
			Level: cr.Tier.RiskLabel(),
		})
	}
	if len(risk.Recommendations) > 0 {
		result.Recommendations = make(map[string][]string, len(risk.Recommendations))
		for catID, recs := range risk.Recommendations {
			result.Recommendations[catID.String()] = recs
		}
	}
	return result
}

func buildGovernanceDetail(plan *model.GovernancePlan) *GovernanceDetail {
	summary := plan.Summary()
	return &GovernanceDetail{
		SavedAt: plan.Timestamp.UTC().Format(time.RFC3339),
		Organization: OrganizationInfo{
			Size:             plan.Profile.Size,
			PrimaryBusiness:  plan.Profile.PrimaryBusiness,
			RegulatoryStatus: plan.Profile.RegulatoryStatus,
			AIMaturity:       plan.Profile.AIMaturity,
		},
		Structure: StructureInfo{
			AIOfficer:          plan.Structure.AIOfficer,
			ExecutiveSponsor:   plan.Structure.ExecutiveSponsor,
			RiskOwner:          plan.Structure.RiskOwner,
			EthicsOwner:        plan.Structure.EthicsOwner,
			HasEthicsCommittee: plan.Structure.HasEthicsCommittee,
			HasModelCommittee:  plan.Structure.HasModelCommittee,
			HasDataCommittee:   plan.Structure.HasDataCommittee,
			FirstLine:          plan.Structure.FirstLine,
			SecondLine:         plan.Structure.SecondLine,
			ThirdLine:          plan.Structure.ThirdLine,
		},
		Policies:   statusMap(plan.Policies),
		Procedures: statusMap(plan.Procedures),
		RiskManagement: RiskManagementInfo{
			Taxonomy:  plan.RiskManagement.Taxonomy,
			Approach:  plan.RiskManagement.Approach,
			Frequency: plan.RiskManagement.Frequency,
			Appetite:  plan.RiskManagement.Appetite,
		},
		LifecycleControls: plan.LifecycleControls,
		Monitoring: MonitoringInfo{
			KPIs: plan.Monitoring.KPIs,
			BoardReporting: ReportingInfo{
				Frequency: plan.Monitoring.BoardReporting.Frequency,
				Content:   plan.Monitoring.BoardReporting.Content,
			},
			ManagementReporting: ReportingInfo{
				Frequency: plan.Monitoring.ManagementReporting.Frequency,
				Content:   plan.Monitoring.ManagementReporting.Content,
			},
			InternalAudit:      plan.Monitoring.InternalAudit,
			ExternalAudit:      plan.Monitoring.ExternalAudit,
			RegulatoryExamPrep: plan.Monitoring.RegulatoryExamPrep,
		},
		Summary: SummaryInfo{
			PoliciesDefined:   summary.PoliciesDefined,
			PoliciesTotal:     summary.PoliciesTotal,
			ProceduresDefined: summary.ProceduresDefined,
			ProceduresTotal:   summary.ProceduresTotal,
			LifecycleControls: summary.LifecycleControls,
		},
	}
}

func buildAssessmentEntry(rec *model.AssessmentRecord) AssessmentEntry {
	entry := AssessmentEntry{
		AssessedAt:     rec.Timestamp.UTC().Format(time.RFC3339),
		System:         buildSystemInfo(rec.Meta),
		OverallScore:   scoring.Round1(rec.OverallScore),
		Readiness:      rec.Readiness.ReadinessLabel(),
		CriticalIssues: rec.CriticalIssues,
		Sections:       make([]CategoryScore, 0, len(rec.SectionResults)),
	}
	for _, sr := range rec.SectionResults {
		entry.Sections = append(entry.Sections, CategoryScore{
			ID:    sr.CategoryID.String(),
			Name:  sr.Name,
			Score: scoring.Round1(sr.Score),
			Level: sr.Tier.ChecklistLabel(),
		})
	}
	for _, item := range rec.AttentionItems {
		entry.Attention = append(entry.Attention, AttentionInfo{
			QuestionID: item.QuestionID.String(),
			Section:    item.CategoryID.String(),
			Prompt:     item.Prompt,
			Priority:   item.Priority.String(),
			Status:     item.Status.String(),
		})
	}
	return entry
}

func buildSystemInfo(meta model.AssessmentMeta) SystemInfo {
	return SystemInfo{
		Name:            meta.SystemName,
		Assessor:        meta.Assessor,
		UseCase:         meta.UseCase,
		DeploymentStage: meta.DeploymentStage,
		Jurisdictions:   meta.Jurisdictions,
		CustomerTypes:   meta.CustomerTypes,
	}
}

func statusMap(m map[string]types.PolicyStatus) map[string]string {
	out := make(map[string]string, len(m))
	for name, status := range m {
		out[name] = status.String()
	}
	return out
}
