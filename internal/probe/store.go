package probe

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cloudeye/orient/internal/db"
)

// probeLibrarian reads aggregate counts from the knowledge-base store.
// Individual query failures are absorbed as zero counts so the probe
// survives schema drift; only a missing or unopenable file marks the
// store unreadable.
func (p *Prober) probeLibrarian(ctx context.Context, path string) LibrarianState {
	st := LibrarianState{Path: path}

	conn, err := db.OpenReadOnly(path, p.storeBusyMS)
	if err != nil {
		st.Err = err.Error()
		return st
	}
	defer conn.Close()
	st.Readable = true

	st.TotalGuidance = countQuery(ctx, conn, `SELECT COUNT(*) FROM architect_guidance`)
	st.CurrentFocusCount = countQuery(ctx, conn,
		`SELECT COUNT(*) FROM architect_guidance WHERE priority IN ('current focus', 'current_focus')`)
	st.EssenceCount = countQuery(ctx, conn,
		`SELECT COUNT(*) FROM architect_guidance WHERE priority = 'essence'`)

	embedded := countQuery(ctx, conn,
		`SELECT COUNT(*) FROM architect_guidance WHERE embedding IS NOT NULL`)
	if st.TotalGuidance > 0 {
		st.EmbeddingCoveragePct = roundPct(embedded, st.TotalGuidance)
	}

	var handoff string
	err = conn.QueryRowContext(ctx, `
		SELECT substr(content, 1, 200) FROM architect_guidance
		WHERE content LIKE '%PHOENIX%HANDOFF%' OR content LIKE '%HANDOFF%Instance%'
		ORDER BY created_at DESC LIMIT 1`).Scan(&handoff)
	if err == nil {
		st.RecentHandoff = handoff
	}

	return st
}

// probeSapphire reads aggregate counts from the routing-pattern store.
func (p *Prober) probeSapphire(ctx context.Context, path string) SapphireState {
	st := SapphireState{Path: path}

	conn, err := db.OpenReadOnly(path, p.storeBusyMS)
	if err != nil {
		st.Err = err.Error()
		return st
	}
	defer conn.Close()
	st.Readable = true

	st.RoutingObservations = countQuery(ctx, conn, `SELECT COUNT(*) FROM routing_observations`)

	var queryText, observedAt string
	err = conn.QueryRowContext(ctx, `
		SELECT query_text, observed_at FROM routing_observations
		ORDER BY observed_at DESC LIMIT 1`).Scan(&queryText, &observedAt)
	if err == nil {
		st.RecentObservation = fmt.Sprintf("%s: %s", observedAt, truncate(queryText, 80))
	}

	st.DetectedPatterns = countQuery(ctx, conn, `SELECT COUNT(*) FROM detected_patterns`)
	st.UnappliedPatterns = countQuery(ctx, conn,
		`SELECT COUNT(*) FROM detected_patterns WHERE adjustment_applied = 0`)

	return st
}

// countQuery runs a single COUNT query, absorbing any failure
// (e.g. missing table) as zero.
func countQuery(ctx context.Context, conn *sql.DB, query string) int {
	var n int
	if err := conn.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0
	}
	return n
}

func roundPct(part, total int) float64 {
	return float64(int(float64(part)/float64(total)*1000+0.5)) / 10
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
