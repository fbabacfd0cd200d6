package briefing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cloudeye/orient/internal/claims"
	"github.com/cloudeye/orient/internal/config"
	"github.com/cloudeye/orient/internal/guidance"
	"github.com/cloudeye/orient/internal/probe"
)

// Synthesize builds a full briefing from a snapshot and its verified,
// sorted claims. It is deterministic: identical inputs produce an
// identical briefing.
func Synthesize(snap *probe.RealitySnapshot, verified []claims.Claim,
	focus []guidance.Preview, essence []string, workCfg config.WorkOrderConfig) *Briefing {

	gitSummary := make(map[string]string, len(snap.Git))
	for name, g := range snap.Git {
		gitSummary[name] = gitLine(name, g)
	}
	svcSummary := make(map[string]string, len(snap.Services))
	for name, s := range snap.Services {
		svcSummary[name] = serviceLine(name, s)
	}

	var illusions, unverifiable, verifiedClaims []claims.Claim
	for _, c := range verified {
		switch c.Verdict {
		case claims.Illusion:
			illusions = append(illusions, c)
		case claims.Unverifiable:
			unverifiable = append(unverifiable, c)
		case claims.Verified:
			verifiedClaims = append(verifiedClaims, c)
		}
	}

	workOrder, nextAction := deriveWorkOrder(snap, illusions, workCfg)

	b := &Briefing{
		GeneratedAt:      snap.ScannedAt,
		ScanDurationMS:   snap.ScanDurationMS,
		GitSummary:       gitSummary,
		ServiceSummary:   svcSummary,
		LibrarianSummary: librarianLine(snap.Librarian),
		SapphireSummary:  sapphireLine(snap.Sapphire),
		Filesystem:       snap.Filesystem,
		Illusions:        illusions,
		Unverifiable:     unverifiable,
		VerifiedClaims:   verifiedClaims,
		IllusionCount:    len(illusions),
		WarningLevel:     warningLevel(illusions, snap.DownServices()),
		CurrentFocus:     focus,
		EssenceSnapshot:  essence,
		ActiveWorkOrder:  workOrder,
		NextAction:       nextAction,
	}
	b.TextReport = buildTextReport(b)
	return b
}

func gitLine(name string, g probe.GitState) string {
	if !g.Available {
		return fmt.Sprintf("%s: NOT FOUND (%s)", name, g.Err)
	}
	var status []string
	if n := len(g.Staged); n > 0 {
		status = append(status, fmt.Sprintf("%d staged", n))
	}
	if n := len(g.Modified); n > 0 {
		status = append(status, fmt.Sprintf("%d modified", n))
	}
	if n := len(g.Untracked); n > 0 {
		status = append(status, fmt.Sprintf("%d untracked", n))
	}
	dirty := "clean"
	if len(status) > 0 {
		dirty = strings.Join(status, ", ")
	}
	ab := ""
	if g.HasUpstream && (g.Ahead > 0 || g.Behind > 0) {
		ab = fmt.Sprintf(" [+%d/-%d]", g.Ahead, g.Behind)
	}
	return fmt.Sprintf("%s: %s (%s, %s)%s", name, g.Head, g.Branch, dirty, ab)
}

func serviceLine(name string, s probe.ServiceState) string {
	if s.Reachable {
		v := ""
		if s.Version != "" {
			v = " v" + s.Version
		}
		return fmt.Sprintf("%s: UP %.1fms%s", name, s.ResponseMS, v)
	}
	errMsg := s.Err
	if errMsg == "" {
		errMsg = "unreachable"
	}
	return fmt.Sprintf("%s: DOWN (%s)", name, errMsg)
}

func librarianLine(l probe.LibrarianState) string {
	if !l.Readable {
		return "UNAVAILABLE: " + l.Err
	}
	return fmt.Sprintf("%d entries (%d focus, %d essence), %.1f%% embedded",
		l.TotalGuidance, l.CurrentFocusCount, l.EssenceCount, l.EmbeddingCoveragePct)
}

func sapphireLine(s probe.SapphireState) string {
	if !s.Readable {
		return "UNAVAILABLE: " + s.Err
	}
	return fmt.Sprintf("%d observations, %d unapplied patterns",
		s.RoutingObservations, s.UnappliedPatterns)
}

// warningLevel escalates strictly: RED beats AMBER beats GREEN, checked
// in that order. Adding a down service or HIGH illusion can never lower
// the level.
func warningLevel(illusions []claims.Claim, downServices []string) WarningLevel {
	if len(downServices) > 0 {
		return LevelRed
	}
	for _, c := range illusions {
		if c.Severity == claims.SeverityHigh {
			return LevelRed
		}
	}
	for _, c := range illusions {
		if c.Severity == claims.SeverityMedium {
			return LevelAmber
		}
	}
	return LevelGreen
}

const defaultNextAction = "Review current focus entries and orient to system state."

// deriveWorkOrder runs the ordered rule chain. Each rule appends its
// own lines; only the highest-priority rule that wants the next_action
// slot gets it.
func deriveWorkOrder(snap *probe.RealitySnapshot, illusions []claims.Claim,
	cfg config.WorkOrderConfig) (string, string) {

	var lines []string
	nextAction := defaultNextAction
	actionSet := false
	setAction := func(a string) {
		if !actionSet {
			nextAction = a
			actionSet = true
		}
	}

	// 1. Unreachable services are always critical.
	down := snap.DownServices()
	if len(down) > 0 {
		lines = append(lines, "CRITICAL: services unreachable: "+strings.Join(down, ", "))
		setAction(fmt.Sprintf("Investigate why %s is unreachable", down[0]))
	}

	// 2. Up to three HIGH-severity illusions.
	shown := 0
	for _, c := range illusions {
		if c.Severity != claims.SeverityHigh || shown == 3 {
			continue
		}
		lines = append(lines, fmt.Sprintf("ILLUSION (%s): %s -> actually: %s",
			c.Type, clip(c.Text, 80), c.Actual))
		shown++
	}

	// 3. Untracked files in the focus repository.
	if g, ok := snap.Git[cfg.FocusRepo]; ok && len(g.Untracked) > 0 {
		lines = append(lines, fmt.Sprintf("%d untracked files in %s repo, commit or discard:",
			len(g.Untracked), cfg.FocusRepo))
		for i, f := range g.Untracked {
			if i == 4 {
				break
			}
			lines = append(lines, "   "+f)
		}
	}

	// 4. Watched key files that are missing.
	watch := append([]string(nil), cfg.WatchKeys...)
	sort.Strings(watch)
	for _, key := range watch {
		if snap.Filesystem[key] {
			continue
		}
		lines = append(lines, "Key file missing: "+key)
		setAction(fmt.Sprintf("Restore or commit %s", key))
	}

	// 5. Nothing to report: all clear.
	if len(lines) == 0 && len(down) == 0 {
		lines = append(lines, "No critical issues detected. System appears healthy.")
		setAction("Proceed with current focus.")
	}

	return strings.Join(lines, "\n"), nextAction
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
