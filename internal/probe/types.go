// Package probe gathers ground truth: version-control state, remote
// service health, local metadata stores, and key-file existence. Every
// probe absorbs its own failures into an explicit error field; a scan
// always completes with a full snapshot.
package probe

import "time"

// GitState is the version-control status of one repository at scan time.
type GitState struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Available bool     `json:"available"`
	Head      string   `json:"head,omitempty"`      // short revision id, for display
	HeadFull  string   `json:"head_full,omitempty"` // full revision id, for claim matching
	Branch    string   `json:"branch,omitempty"`
	Untracked []string `json:"untracked,omitempty"`
	Modified  []string `json:"modified,omitempty"`
	Staged    []string `json:"staged,omitempty"`
	Ahead     int      `json:"ahead,omitempty"`
	Behind    int      `json:"behind,omitempty"`
	// HasUpstream reports whether an origin branch of the same name
	// existed to compare against.
	HasUpstream bool   `json:"has_upstream,omitempty"`
	Err         string `json:"error,omitempty"`
}

// ServiceState is the health of one remote service.
type ServiceState struct {
	Name         string         `json:"name"`
	URL          string         `json:"url"`
	Reachable    bool           `json:"reachable"`
	StatusCode   int            `json:"status_code,omitempty"`
	ResponseMS   float64        `json:"response_ms,omitempty"`
	Version      string         `json:"version,omitempty"`
	HealthDetail map[string]any `json:"health_detail,omitempty"`
	Err          string         `json:"error,omitempty"`
}

// LibrarianState aggregates counts from the knowledge-base store.
type LibrarianState struct {
	Path                 string  `json:"path"`
	Readable             bool    `json:"readable"`
	TotalGuidance        int     `json:"total_guidance"`
	CurrentFocusCount    int     `json:"current_focus_count"`
	EssenceCount         int     `json:"essence_count"`
	RecentHandoff        string  `json:"recent_handoff,omitempty"`
	EmbeddingCoveragePct float64 `json:"embedding_coverage_pct"`
	Err                  string  `json:"error,omitempty"`
}

// SapphireState aggregates counts from the routing-pattern store.
type SapphireState struct {
	Path                string `json:"path"`
	Readable            bool   `json:"readable"`
	RoutingObservations int    `json:"routing_observations"`
	DetectedPatterns    int    `json:"detected_patterns"`
	UnappliedPatterns   int    `json:"unapplied_patterns"`
	RecentObservation   string `json:"recent_observation,omitempty"`
	Err                 string `json:"error,omitempty"`
}

// RealitySnapshot is the immutable, point-in-time ground truth produced
// by one full scan. It is never mutated after construction.
type RealitySnapshot struct {
	ScannedAt      time.Time               `json:"scanned_at"`
	ScanDurationMS float64                 `json:"scan_duration_ms"`
	Git            map[string]GitState     `json:"git"`
	Services       map[string]ServiceState `json:"services"`
	Librarian      LibrarianState          `json:"librarian"`
	Sapphire       SapphireState           `json:"sapphire"`
	Filesystem     map[string]bool         `json:"filesystem"` // key -> exists
}

// DownServices returns the names of unreachable services in sorted order.
func (s *RealitySnapshot) DownServices() []string {
	var down []string
	for _, name := range sortedKeys(s.Services) {
		if !s.Services[name].Reachable {
			down = append(down, name)
		}
	}
	return down
}
