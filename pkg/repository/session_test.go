package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintech-ethics/themis/pkg/domain/interfaces"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/repository/memory"
)

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns a unique ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s1, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		s2, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create second session: %v", err)
		}

		if s1.ID == "" {
			t.Error("expected non-empty session ID")
		}
		if s1.ID == s2.ID {
			t.Errorf("expected unique session IDs, both were %s", s1.ID)
		}
		if s1.CreatedAt.IsZero() {
			t.Error("expected non-zero CreatedAt")
		}
		if s1.UpdatedAt.IsZero() {
			t.Error("expected non-zero UpdatedAt")
		}
	})

	t.Run("Get returns a fresh session with no artifacts", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		got, err := repo.Session().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if got.ID != created.ID {
			t.Errorf("expected ID %s, got %s", created.ID, got.ID)
		}
		if got.RiskAssessment != nil {
			t.Error("expected nil risk assessment on a fresh session")
		}
		if got.GovernancePlan != nil {
			t.Error("expected nil governance plan on a fresh session")
		}
		if len(got.Assessments) != 0 {
			t.Errorf("expected empty history, got %d records", len(got.Assessments))
		}
	})

	t.Run("Get unknown session returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Session().Get(ctx, "no-such-session")
		if !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("PutRiskAssessment replaces the previous result", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		first := &model.RiskAssessment{OverallScore: 56.25, RiskLevel: types.TierHigh}
		if err := repo.Session().PutRiskAssessment(ctx, created.ID, first); err != nil {
			t.Fatalf("failed to put first assessment: %v", err)
		}

		second := &model.RiskAssessment{OverallScore: 82.5, RiskLevel: types.TierLow}
		if err := repo.Session().PutRiskAssessment(ctx, created.ID, second); err != nil {
			t.Fatalf("failed to put second assessment: %v", err)
		}

		got, err := repo.Session().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if got.RiskAssessment == nil {
			t.Fatal("expected risk assessment to be set")
		}
		if got.RiskAssessment.OverallScore != 82.5 {
			t.Errorf("expected last write to win, got score %v", got.RiskAssessment.OverallScore)
		}
	})

	t.Run("AppendAssessment preserves order and duplicates", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		names := []string{"credit-scorer", "chatbot", "credit-scorer"}
		for _, name := range names {
			record := &model.AssessmentRecord{
				Timestamp: time.Now().UTC(),
				Meta:      model.AssessmentMeta{SystemName: name},
			}
			if err := repo.Session().AppendAssessment(ctx, created.ID, record); err != nil {
				t.Fatalf("failed to append assessment: %v", err)
			}
		}

		history, err := repo.Session().History(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get history: %v", err)
		}
		if len(history) != 3 {
			t.Fatalf("expected 3 records, got %d", len(history))
		}
		for i, name := range names {
			if history[i].Meta.SystemName != name {
				t.Errorf("record %d: expected %s, got %s", i, name, history[i].Meta.SystemName)
			}
		}
	})

	t.Run("Writes to unknown session return ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		if err := repo.Session().PutRiskAssessment(ctx, "missing", &model.RiskAssessment{}); !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("PutRiskAssessment: expected ErrNotFound, got %v", err)
		}
		if err := repo.Session().PutGovernancePlan(ctx, "missing", &model.GovernancePlan{}); !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("PutGovernancePlan: expected ErrNotFound, got %v", err)
		}
		if err := repo.Session().AppendAssessment(ctx, "missing", &model.AssessmentRecord{}); !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("AppendAssessment: expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Session().Delete(ctx, created.ID); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}
		if _, err := repo.Session().Get(ctx, created.ID); !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("DeleteExpired removes only stale sessions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stale, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		fresh, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		// Touch the fresh session so its UpdatedAt moves past the deadline
		// we sweep with.
		time.Sleep(time.Millisecond)
		deadline := time.Now().UTC()
		if err := repo.Session().PutGovernancePlan(ctx, fresh.ID, &model.GovernancePlan{}); err != nil {
			t.Fatalf("failed to touch session: %v", err)
		}

		removed, err := repo.Session().DeleteExpired(ctx, deadline)
		if err != nil {
			t.Fatalf("failed to delete expired sessions: %v", err)
		}
		if removed != 1 {
			t.Errorf("expected 1 removed session, got %d", removed)
		}
		if _, err := repo.Session().Get(ctx, stale.ID); !errors.Is(err, memory.ErrNotFound) {
			t.Errorf("expected stale session to be gone, got %v", err)
		}
		if _, err := repo.Session().Get(ctx, fresh.ID); err != nil {
			t.Errorf("expected fresh session to survive, got %v", err)
		}
	})

	t.Run("Returned sessions do not share history state with the store", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Session().Create(ctx)
		if err != nil {
			t.Fatalf("failed to create session: %v", err)
		}
		if err := repo.Session().AppendAssessment(ctx, created.ID, &model.AssessmentRecord{
			Meta: model.AssessmentMeta{SystemName: "original"},
		}); err != nil {
			t.Fatalf("failed to append assessment: %v", err)
		}

		got, err := repo.Session().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		got.Assessments[0] = &model.AssessmentRecord{
			Meta: model.AssessmentMeta{SystemName: "tampered"},
		}

		again, err := repo.Session().Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("failed to get session again: %v", err)
		}
		if again.Assessments[0].Meta.SystemName != "original" {
			t.Error("mutation of a returned session leaked into the store")
		}
	})
}

func TestMemoryRepository(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}
