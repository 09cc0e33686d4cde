package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/utils/logging"
)

// GovernanceUseCase builds and stores the governance framework plan
type GovernanceUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

func NewGovernanceUseCase(repo interfaces.Repository, clock func() time.Time) *GovernanceUseCase {
	return &GovernanceUseCase{repo: repo, clock: clock}
}

// Save stores the governance plan on the session, replacing any previous
// plan, and returns the headline summary.
func (uc *GovernanceUseCase) Save(ctx context.Context, sessionID types.SessionID, plan *model.GovernancePlan) (*model.GovernanceSummary, error) {
	if plan == nil {
		return nil, goerr.Wrap(ErrMissingGovernancePlan, "nothing to save")
	}

	for name, status := range plan.Policies {
		if !status.IsValid() {
			return nil, goerr.Wrap(ErrInvalidPolicyStatus, "unknown policy status", goerr.V("policy", name), goerr.V("status", status))
		}
	}
	for name, status := range plan.Procedures {
		if !status.IsValid() {
			return nil, goerr.Wrap(ErrInvalidPolicyStatus, "unknown procedure status", goerr.V("procedure", name), goerr.V("status", status))
		}
	}

	plan.Timestamp = uc.clock()
	if err := uc.repo.Session().PutGovernancePlan(ctx, sessionID, plan); err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, sessionID))
	}

	summary := plan.Summary()
	logging.From(ctx).Info("governance plan saved",
		"session_id", sessionID,
		"policies_defined", summary.PoliciesDefined,
		"procedures_defined", summary.ProceduresDefined,
	)
	return &summary, nil
}
