// Package guidance reads the knowledge-base store (architect_guidance)
// that other processes write. All access is read-only.
package guidance

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudeye/orient/internal/db"
)

// Entry is one knowledge-base row as the claim extractor consumes it.
type Entry struct {
	ID        string
	Priority  string
	Category  string
	Content   string
	CreatedAt string
}

// Preview is a truncated entry for briefing display.
type Preview struct {
	ID        string `json:"id"`
	Priority  string `json:"priority"`
	Category  string `json:"category"`
	Preview   string `json:"preview"`
	CreatedAt string `json:"created_at"`
}

const (
	previewLen = 400
	essenceLen = 200
	// recentEntryHeadroom widens the extraction query past the focus
	// cap so recent essence entries still make the cut.
	recentEntryHeadroom = 10
)

// Store reads guidance entries from a SQLite knowledge base.
type Store struct {
	path   string
	busyMS int
	now    func() time.Time
}

// NewStore creates a reader over the store at path. busyTimeoutMS bounds
// how long a read waits on a writer's lock.
func NewStore(path string, busyTimeoutMS int) *Store {
	return &Store{path: path, busyMS: busyTimeoutMS, now: time.Now}
}

// RecentEntries returns current-focus and recent essence entries within
// the recency window: current-focus rows first, then recency
// descending, capped at limit plus headroom. A missing store yields an
// empty result, not an error.
func (s *Store) RecentEntries(ctx context.Context, window time.Duration, limit int) ([]Entry, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, nil
	}

	conn, err := db.OpenReadOnly(s.path, s.busyMS)
	if err != nil {
		return nil, fmt.Errorf("opening guidance store: %w", err)
	}
	defer conn.Close()

	cutoff := s.now().UTC().Add(-window).Format(time.RFC3339)
	rows, err := conn.QueryContext(ctx, `
		SELECT id, priority, category, content, created_at
		FROM architect_guidance
		WHERE priority IN ('current focus', 'current_focus', 'essence')
		AND (created_at > ? OR priority LIKE '%current%')
		ORDER BY
		  CASE priority WHEN 'current focus' THEN 0 WHEN 'current_focus' THEN 0 ELSE 1 END,
		  created_at DESC
		LIMIT ?`, cutoff, limit+recentEntryHeadroom)
	if err != nil {
		return nil, fmt.Errorf("querying recent entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Priority, &e.Category, &e.Content, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CurrentFocus returns previews of the latest current-focus entries,
// content truncated for display.
func (s *Store) CurrentFocus(ctx context.Context, limit int) ([]Preview, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, nil
	}

	conn, err := db.OpenReadOnly(s.path, s.busyMS)
	if err != nil {
		return nil, fmt.Errorf("opening guidance store: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT id, priority, category, substr(content, 1, ?) AS preview, created_at
		FROM architect_guidance
		WHERE priority IN ('current focus', 'current_focus')
		ORDER BY created_at DESC
		LIMIT ?`, previewLen, limit)
	if err != nil {
		return nil, fmt.Errorf("querying current focus: %w", err)
	}
	defer rows.Close()

	var previews []Preview
	for rows.Next() {
		var p Preview
		if err := rows.Scan(&p.ID, &p.Priority, &p.Category, &p.Preview, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning preview: %w", err)
		}
		previews = append(previews, p)
	}
	return previews, rows.Err()
}

// EssencePreviews returns the newest essence entries, truncated.
func (s *Store) EssencePreviews(ctx context.Context, limit int) ([]string, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, nil
	}

	conn, err := db.OpenReadOnly(s.path, s.busyMS)
	if err != nil {
		return nil, fmt.Errorf("opening guidance store: %w", err)
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, `
		SELECT substr(content, 1, ?)
		FROM architect_guidance
		WHERE priority = 'essence'
		ORDER BY created_at DESC
		LIMIT ?`, essenceLen, limit)
	if err != nil {
		return nil, fmt.Errorf("querying essence: %w", err)
	}
	defer rows.Close()

	var previews []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scanning essence: %w", err)
		}
		previews = append(previews, p)
	}
	return previews, rows.Err()
}
