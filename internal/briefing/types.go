// Package briefing merges a reality snapshot and verified claims into a
// single prioritized orientation report, cached behind a short TTL.
package briefing

import (
	"time"

	"github.com/cloudeye/orient/internal/claims"
	"github.com/cloudeye/orient/internal/guidance"
)

// WarningLevel is the three-tier aggregate severity of a briefing.
type WarningLevel string

const (
	LevelGreen WarningLevel = "GREEN"
	LevelAmber WarningLevel = "AMBER"
	LevelRed   WarningLevel = "RED"
)

// Briefing is the synthesized orientation report.
type Briefing struct {
	GeneratedAt    time.Time
	ScanDurationMS float64

	// Ground truth
	GitSummary       map[string]string
	ServiceSummary   map[string]string
	LibrarianSummary string
	SapphireSummary  string
	Filesystem       map[string]bool

	// Illusion report
	Illusions      []claims.Claim
	Unverifiable   []claims.Claim
	VerifiedClaims []claims.Claim
	IllusionCount  int
	WarningLevel   WarningLevel

	// Grounded guidance
	CurrentFocus    []guidance.Preview
	EssenceSnapshot []string
	ActiveWorkOrder string
	NextAction      string

	// Rendered plain-text report
	TextReport string
}

// JSON returns the stable wire shape of the briefing. Field names are a
// contract for external consumers; do not rename them.
func (b *Briefing) JSON() map[string]any {
	illusions := make([]map[string]any, 0, len(b.Illusions))
	for _, c := range b.Illusions {
		illusions = append(illusions, map[string]any{
			"type":     c.Type,
			"claim":    c.Text,
			"severity": c.Severity,
			"actual":   c.Actual,
			"note":     c.Note,
		})
	}

	focus := b.CurrentFocus
	if len(focus) > 5 {
		focus = focus[:5]
	}
	if focus == nil {
		focus = []guidance.Preview{}
	}

	return map[string]any{
		"generated_at":       b.GeneratedAt.UTC().Format(time.RFC3339),
		"scan_duration_ms":   b.ScanDurationMS,
		"warning_level":      b.WarningLevel,
		"git":                b.GitSummary,
		"services":           b.ServiceSummary,
		"librarian":          b.LibrarianSummary,
		"sapphire":           b.SapphireSummary,
		"filesystem":         b.Filesystem,
		"illusions":          illusions,
		"unverifiable_count": len(b.Unverifiable),
		"verified_count":     len(b.VerifiedClaims),
		"current_focus":      focus,
		"work_order":         b.ActiveWorkOrder,
		"next_action":        b.NextAction,
		"text_report":        b.TextReport,
	}
}
