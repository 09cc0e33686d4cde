package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.SessionID]*model.Session
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[types.SessionID]*model.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	session := &model.Session{
		ID:        types.SessionID(uuid.NewString()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	r.sessions[session.ID] = session
	return session.Clone(), nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.SessionID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	// Return a copy to prevent external modification
	return session.Clone(), nil
}

func (r *sessionRepository) PutRiskAssessment(ctx context.Context, id types.SessionID, assessment *model.RiskAssessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	session.RiskAssessment = assessment
	session.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *sessionRepository) PutGovernancePlan(ctx context.Context, id types.SessionID, plan *model.GovernancePlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	session.GovernancePlan = plan
	session.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *sessionRepository) AppendAssessment(ctx context.Context, id types.SessionID, record *model.AssessmentRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.sessions[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	session.Assessments = append(session.Assessments, record)
	session.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *sessionRepository) History(ctx context.Context, id types.SessionID) ([]*model.AssessmentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	history := make([]*model.AssessmentRecord, len(session.Assessments))
	copy(history, session.Assessments)
	return history, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id types.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[id]; !exists {
		return goerr.Wrap(ErrNotFound, "session not found", goerr.V("sessionID", id))
	}

	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, deadline time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.UpdatedAt.Before(deadline) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}
