package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// SessionUseCase manages the lifecycle of assessment sessions
type SessionUseCase struct {
	repo interfaces.Repository
}

func NewSessionUseCase(repo interfaces.Repository) *SessionUseCase {
	return &SessionUseCase{repo: repo}
}

// Create starts a new, empty session
func (uc *SessionUseCase) Create(ctx context.Context) (*model.Session, error) {
	session, err := uc.repo.Session().Create(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}
	return session, nil
}

// Get retrieves a session by ID
func (uc *SessionUseCase) Get(ctx context.Context, id types.SessionID) (*model.Session, error) {
	session, err := uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	return session, nil
}

// Delete removes a session and all of its assessment state
func (uc *SessionUseCase) Delete(ctx context.Context, id types.SessionID) error {
	if err := uc.repo.Session().Delete(ctx, id); err != nil {
		return goerr.Wrap(ErrSessionNotFound, "session not found", goerr.V(SessionIDKey, id))
	}
	return nil
}
