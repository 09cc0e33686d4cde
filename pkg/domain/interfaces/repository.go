package interfaces

import (
	"context"
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// SessionRepository defines the contract for session state access. The only
// shared mutable resource in the system is the per-session assessment
// state; every write is a whole-value replacement or an append, applied
// atomically by the implementation.
type SessionRepository interface {
	// Create creates a new session with a generated ID
	Create(ctx context.Context) (*model.Session, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, id types.SessionID) (*model.Session, error)

	// PutRiskAssessment replaces the session's risk assessment (last write wins)
	PutRiskAssessment(ctx context.Context, id types.SessionID, assessment *model.RiskAssessment) error

	// PutGovernancePlan replaces the session's governance plan (last write wins)
	PutGovernancePlan(ctx context.Context, id types.SessionID, plan *model.GovernancePlan) error

	// AppendAssessment appends a completed checklist record to the session
	// history, preserving completion order
	AppendAssessment(ctx context.Context, id types.SessionID, record *model.AssessmentRecord) error

	// History returns the session's checklist records in completion order
	History(ctx context.Context, id types.SessionID) ([]*model.AssessmentRecord, error)

	// Delete removes a session by ID
	Delete(ctx context.Context, id types.SessionID) error

	// DeleteExpired removes all sessions untouched since the deadline and
	// returns how many were removed
	DeleteExpired(ctx context.Context, deadline time.Time) (int, error)
}

// Repository is the root data access interface
type Repository interface {
	Session() SessionRepository
	Close() error
}
