package model_test

import (
	"testing"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

func TestGovernancePlanSummary(t *testing.T) {
	plan := &model.GovernancePlan{
		Policies: map[string]types.PolicyStatus{
			"AI Ethics Policy":          types.PolicyApproved,
			"AI Risk Management Policy": types.PolicyInDevelopment,
			"Data Governance Policy":    types.PolicyNotStarted,
			"Third-Party AI Policy":     types.PolicyNotApplicable,
		},
		Procedures: map[string]types.PolicyStatus{
			"Model Validation Procedures": types.PolicyUnderReview,
			"Fairness Testing Procedures": types.PolicyNotStarted,
		},
		LifecycleControls: map[string][]string{
			"planning":   {"Use case business justification", "Ethical impact assessment"},
			"deployment": {"Deployment approval process"},
		},
	}

	summary := plan.Summary()

	if summary.PoliciesDefined != 2 {
		t.Errorf("PoliciesDefined = %v, want 2", summary.PoliciesDefined)
	}
	if summary.PoliciesTotal != 4 {
		t.Errorf("PoliciesTotal = %v, want 4", summary.PoliciesTotal)
	}
	if summary.ProceduresDefined != 1 {
		t.Errorf("ProceduresDefined = %v, want 1", summary.ProceduresDefined)
	}
	if summary.ProceduresTotal != 2 {
		t.Errorf("ProceduresTotal = %v, want 2", summary.ProceduresTotal)
	}
	if summary.LifecycleControls != 3 {
		t.Errorf("LifecycleControls = %v, want 3", summary.LifecycleControls)
	}
}

func TestGovernancePlanSummaryEmpty(t *testing.T) {
	plan := &model.GovernancePlan{}
	summary := plan.Summary()

	if summary.PoliciesDefined != 0 || summary.PoliciesTotal != 0 {
		t.Errorf("expected zero policy counts, got %+v", summary)
	}
	if summary.LifecycleControls != 0 {
		t.Errorf("LifecycleControls = %v, want 0", summary.LifecycleControls)
	}
}
