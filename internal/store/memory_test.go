package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/entrevio-dev/entrevio/internal/domain"
)

func testSession(id string, createdAt time.Time) *domain.Session {
	return &domain.Session{
		ID:             id,
		Role:           "Backend Engineer",
		Seniority:      domain.SeniorityMid,
		TotalQuestions: 3,
		Status:         domain.StatusInProgress,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}

func TestMemoryCRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	if err := m.CreateSession(ctx, testSession("a", now)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := m.CreateSession(ctx, testSession("a", now)); err == nil {
		t.Fatal("duplicate CreateSession should fail")
	}

	got, err := m.GetSession(ctx, "a")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got == nil || got.ID != "a" {
		t.Fatalf("GetSession = %+v", got)
	}

	got.Role = "Data Engineer"
	if err := m.UpdateSession(ctx, got); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	updated, err := m.GetSession(ctx, "a")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if updated.Role != "Data Engineer" {
		t.Errorf("Role = %q after update", updated.Role)
	}

	if err := m.DeleteSession(ctx, "a"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := m.DeleteSession(ctx, "a"); err != nil {
		t.Fatalf("deleting a missing session should be a no-op: %v", err)
	}
	missing, err := m.GetSession(ctx, "a")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if missing != nil {
		t.Errorf("GetSession after delete = %+v, want nil", missing)
	}
}

func TestMemoryUpdateMissingSession(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	err := m.UpdateSession(context.Background(), testSession("ghost", time.Now()))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetReturnsClone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	s := testSession("a", time.Now().UTC())
	if _, err := s.AddQuestion("Tell me about yourself.", time.Now().UTC()); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}
	if err := m.CreateSession(ctx, s); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	first, err := m.GetSession(ctx, "a")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	first.Turns[0].Question.Text = "mutated"
	first.Status = domain.StatusCompleted

	second, err := m.GetSession(ctx, "a")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if second.Turns[0].Question.Text != "Tell me about yourself." {
		t.Error("mutating a returned session leaked into the store")
	}
	if second.Status != domain.StatusInProgress {
		t.Error("status mutation leaked into the store")
	}
}

func TestMemoryListNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	base := time.Now().UTC()
	for i, id := range []string{"oldest", "middle", "newest"} {
		if err := m.CreateSession(ctx, testSession(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("CreateSession(%s): %v", id, err)
		}
	}

	got, err := m.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	want := []string{"newest", "middle", "oldest"}
	if len(got) != len(want) {
		t.Fatalf("got %d sessions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("position %d = %s, want %s", i, got[i].ID, want[i])
		}
	}
}

func TestMemoryDeleteExpiredSessions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewMemory()
	now := time.Now().UTC()

	stale := testSession("stale", now.Add(-2*time.Hour))
	fresh := testSession("fresh", now)
	if err := m.CreateSession(ctx, stale); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := m.CreateSession(ctx, fresh); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	deleted, err := m.DeleteExpiredSessions(ctx, time.Hour)
	if err != nil {
		t.Fatalf("DeleteExpiredSessions: %v", err)
	}
	if len(deleted) != 1 || deleted[0] != "stale" {
		t.Errorf("deleted = %v, want [stale]", deleted)
	}

	if s, _ := m.GetSession(ctx, "fresh"); s == nil {
		t.Error("fresh session should survive the sweep")
	}
	if s, _ := m.GetSession(ctx, "stale"); s != nil {
		t.Error("stale session should be gone")
	}
}

func TestMemoryPingAfterClose(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	if err := m.Ping(context.Background()); err != nil {
		t.Fatalf("Ping on open store: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := m.Ping(context.Background()); err == nil {
		t.Error("Ping after Close should fail")
	}
}
