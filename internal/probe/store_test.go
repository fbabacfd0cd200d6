package probe

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cloudeye/orient/internal/db"
)

func seedLibrarian(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "librarian.db")
	conn, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Exec(`
		CREATE TABLE architect_guidance (
			id TEXT PRIMARY KEY,
			priority TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			embedding BLOB,
			created_at TEXT NOT NULL
		)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	rows := []struct {
		id, priority, content string
		embedded              bool
	}{
		{"1", "current focus", "fix the bridge", true},
		{"2", "essence", "always verify before trusting", true},
		{"3", "essence", "PHOENIX HANDOFF complete, state saved", false},
		{"4", "reference", "background detail", false},
	}
	for _, r := range rows {
		var emb any
		if r.embedded {
			emb = []byte{1, 2, 3}
		}
		if _, err := conn.Exec(
			`INSERT INTO architect_guidance (id, priority, content, embedding, created_at)
			 VALUES (?, ?, ?, ?, datetime('now'))`,
			r.id, r.priority, r.content, emb); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	return path
}

func TestProbeLibrarian(t *testing.T) {
	path := seedLibrarian(t)
	p := testProber(t, nil)

	st := p.probeLibrarian(context.Background(), path)
	if !st.Readable {
		t.Fatalf("expected readable, got error %q", st.Err)
	}
	if st.TotalGuidance != 4 {
		t.Errorf("total: got %d, want 4", st.TotalGuidance)
	}
	if st.CurrentFocusCount != 1 {
		t.Errorf("focus count: got %d, want 1", st.CurrentFocusCount)
	}
	if st.EssenceCount != 2 {
		t.Errorf("essence count: got %d, want 2", st.EssenceCount)
	}
	if st.EmbeddingCoveragePct != 50.0 {
		t.Errorf("coverage: got %v, want 50.0", st.EmbeddingCoveragePct)
	}
	if st.RecentHandoff == "" {
		t.Error("expected a recent handoff preview")
	}
}

func TestProbeLibrarianMissingFile(t *testing.T) {
	p := testProber(t, nil)
	st := p.probeLibrarian(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	if st.Readable {
		t.Error("expected unreadable for missing file")
	}
	if st.Err == "" {
		t.Error("expected non-empty error")
	}
}

func TestProbeSapphireSchemaDrift(t *testing.T) {
	// A sapphire store missing the detected_patterns table: the probe
	// must stay readable and absorb the failed counts as zero.
	path := filepath.Join(t.TempDir(), "sapphire.db")
	conn, err := db.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := conn.Exec(`
		CREATE TABLE routing_observations (
			id INTEGER PRIMARY KEY,
			query_text TEXT NOT NULL,
			observed_at TEXT NOT NULL
		)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := conn.Exec(
		`INSERT INTO routing_observations (query_text, observed_at)
		 VALUES ('where is the scanner', '2026-08-01T10:00:00Z')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	conn.Close()

	p := testProber(t, nil)
	st := p.probeSapphire(context.Background(), path)
	if !st.Readable {
		t.Fatalf("expected readable, got error %q", st.Err)
	}
	if st.RoutingObservations != 1 {
		t.Errorf("observations: got %d, want 1", st.RoutingObservations)
	}
	if st.DetectedPatterns != 0 || st.UnappliedPatterns != 0 {
		t.Errorf("missing table must count as zero, got %d/%d",
			st.DetectedPatterns, st.UnappliedPatterns)
	}
	if st.RecentObservation == "" {
		t.Error("expected a recent observation preview")
	}
}
