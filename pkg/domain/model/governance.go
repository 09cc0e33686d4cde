package model

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// OrgProfile describes the organization building the governance framework
type OrgProfile struct {
	Size             string
	PrimaryBusiness  string
	RegulatoryStatus string
	AIMaturity       string
}

// GovernanceStructure defines accountability roles, committees and the
// three-lines-of-defense responsibilities
type GovernanceStructure struct {
	AIOfficer          string
	ExecutiveSponsor   string
	RiskOwner          string
	EthicsOwner        string
	HasEthicsCommittee bool
	HasModelCommittee  bool
	HasDataCommittee   bool
	FirstLine          []string
	SecondLine         []string
	ThirdLine          []string
}

// RiskManagementPlan defines the risk taxonomy, assessment methodology and
// risk appetite settings
type RiskManagementPlan struct {
	Taxonomy  []string
	Approach  string
	Frequency string
	Appetite  map[string]string
}

// ReportingCadence is one reporting line with its frequency and content
type ReportingCadence struct {
	Frequency string
	Content   []string
}

// MonitoringPlan defines KPIs, reporting structure and audit requirements
type MonitoringPlan struct {
	KPIs                []string
	BoardReporting      ReportingCadence
	ManagementReporting ReportingCadence
	InternalAudit       bool
	ExternalAudit       bool
	RegulatoryExamPrep  bool
}

// GovernancePlan is the customized AI governance framework built during a
// session. One per session; last write wins.
type GovernancePlan struct {
	Timestamp         time.Time
	Profile           OrgProfile
	Structure         GovernanceStructure
	Policies          map[string]types.PolicyStatus
	Procedures        map[string]types.PolicyStatus
	RiskManagement    RiskManagementPlan
	LifecycleControls map[string][]string
	Monitoring        MonitoringPlan
}

// GovernanceSummary holds the headline figures shown after a plan is saved
type GovernanceSummary struct {
	PoliciesDefined   int
	PoliciesTotal     int
	ProceduresDefined int
	ProceduresTotal   int
	LifecycleControls int
}

// Summary counts defined policies and procedures and the total number of
// selected lifecycle controls
func (p *GovernancePlan) Summary() GovernanceSummary {
	s := GovernanceSummary{
		PoliciesTotal:   len(p.Policies),
		ProceduresTotal: len(p.Procedures),
	}
	for _, status := range p.Policies {
		if status.Defined() {
			s.PoliciesDefined++
		}
	}
	for _, status := range p.Procedures {
		if status.Defined() {
			s.ProceduresDefined++
		}
	}
	for _, controls := range p.LifecycleControls {
		s.LifecycleControls += len(controls)
	}
	return s
}
