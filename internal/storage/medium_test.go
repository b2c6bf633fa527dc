package storage

import (
	"context"
	"path/filepath"
	"testing"
)

// roundTrip exercises the Medium contract shared by every driver.
func roundTrip(t *testing.T, m Medium) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := m.LoadCollection(ctx, "resources"); err != nil || ok {
		t.Fatalf("fresh medium: ok=%v err=%v, expected absent", ok, err)
	}
	if err := m.SaveCollection(ctx, "resources", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, ok, err := m.LoadCollection(ctx, "resources")
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if string(payload) != `[{"id":"1"}]` {
		t.Fatalf("unexpected payload: %s", payload)
	}

	// Overwrite replaces the previous payload wholesale.
	if err := m.SaveCollection(ctx, "resources", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	payload, _, _ = m.LoadCollection(ctx, "resources")
	if string(payload) != `[]` {
		t.Fatalf("expected overwritten payload, got %s", payload)
	}

	// Presence is tracked per collection: writing one collection must not
	// make another look present.
	if err := m.SaveCollection(ctx, "reservations", []byte(`[]`)); err != nil {
		t.Fatalf("save second collection: %v", err)
	}
	if _, ok, err := m.LoadCollection(ctx, "serviceTasks"); err != nil || ok {
		t.Fatalf("untouched collection must be absent: ok=%v err=%v", ok, err)
	}
}

func TestMemoryMediumRoundTrip(t *testing.T) {
	roundTrip(t, NewMemoryMedium())
}

func TestFSMediumRoundTrip(t *testing.T) {
	m, err := NewFSMedium(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSMedium: %v", err)
	}
	roundTrip(t, m)
}

func TestSQLiteMediumRoundTrip(t *testing.T) {
	m, err := NewSQLiteMedium(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	roundTrip(t, m)
}

func TestS3MediumRoundTrip(t *testing.T) {
	roundTrip(t, NewMockS3Medium())
}

func TestSQLiteMediumSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	m, err := NewSQLiteMedium(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := m.SaveCollection(context.Background(), "serviceTasks", []byte(`[{"id":"t1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	reopened, err := NewSQLiteMedium(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })
	payload, ok, err := reopened.LoadCollection(context.Background(), "serviceTasks")
	if err != nil || !ok || string(payload) != `[{"id":"t1"}]` {
		t.Fatalf("reload: ok=%v err=%v payload=%s", ok, err, payload)
	}
}

func TestFSMediumRejectsUnsafeNames(t *testing.T) {
	m, err := NewFSMedium(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSMedium: %v", err)
	}
	for _, name := range []string{"", "  ", "../escape", "a/b", `a\b`} {
		if err := m.SaveCollection(context.Background(), name, []byte("x")); err == nil {
			t.Errorf("expected error for collection name %q", name)
		}
		if _, _, err := m.LoadCollection(context.Background(), name); err == nil {
			t.Errorf("expected load error for collection name %q", name)
		}
	}
}
