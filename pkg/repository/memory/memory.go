package memory

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
)

// ErrNotFound is returned when a session does not exist or has expired
var ErrNotFound = goerr.New("not found")

// Memory is an in-memory repository. Session state is ephemeral by design:
// it lives for the duration of the process and is swept by the expiry
// worker.
type Memory struct {
	session *sessionRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		session: newSessionRepository(),
	}
}

func (m *Memory) Session() interfaces.SessionRepository {
	return m.session
}

func (m *Memory) Close() error {
	return nil
}
