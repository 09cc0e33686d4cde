package model

import (
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/types"
)

// Session holds all assessment state for one user session. The application
// layer owns its lifetime: created at session start, expired by the session
// worker, never shared across sessions. All engine operations take the
// session state explicitly instead of reading ambient globals.
type Session struct {
	ID        types.SessionID
	CreatedAt time.Time
	UpdatedAt time.Time

	RiskAssessment *RiskAssessment
	GovernancePlan *GovernancePlan
	Assessments    []*AssessmentRecord
}

// Clone returns a deep-enough copy of the session to hand out of the
// repository without sharing mutable state with the store.
func (s *Session) Clone() *Session {
	cloned := &Session{
		ID:             s.ID,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		RiskAssessment: s.RiskAssessment,
		GovernancePlan: s.GovernancePlan,
	}
	if s.Assessments != nil {
		cloned.Assessments = make([]*AssessmentRecord, len(s.Assessments))
		copy(cloned.Assessments, s.Assessments)
	}
	return cloned
}
