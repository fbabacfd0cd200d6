package briefing

import (
	"fmt"
	"sort"
	"strings"
)

// buildTextReport renders the fixed-section plain-text briefing:
// header, reality scan, illusion report, work order, next action,
// current focus previews, footer.
func buildTextReport(b *Briefing) string {
	ts := b.GeneratedAt.UTC().Format("2006-01-02 15:04:05")
	var lines []string

	lines = append(lines,
		"╔══════════════════════════════════════════════════════════════════╗",
		"║  ORIENT — ORIENTATION BRIEFING                                   ║",
		fmt.Sprintf("║  %s UTC    scan: %.0fms", ts, b.ScanDurationMS),
		"╚══════════════════════════════════════════════════════════════════╝",
		"",
		"── REALITY SCAN ─────────────────────────────────────────────────",
		"REPOSITORIES:")
	for _, name := range sortedKeys(b.GitSummary) {
		lines = append(lines, "  "+b.GitSummary[name])
	}

	lines = append(lines, "", "SERVICES:")
	for _, name := range sortedKeys(b.ServiceSummary) {
		lines = append(lines, "  "+b.ServiceSummary[name])
	}

	lines = append(lines,
		"",
		"LIBRARIAN DB: "+b.LibrarianSummary,
		"SAPPHIRE DB:  "+b.SapphireSummary,
		"",
		"KEY FILES:")
	for _, key := range sortedBoolKeys(b.Filesystem) {
		icon := "✗"
		if b.Filesystem[key] {
			icon = "✓"
		}
		lines = append(lines, fmt.Sprintf("  %s %s", icon, key))
	}

	lines = append(lines, "",
		fmt.Sprintf("── ILLUSION REPORT  [%s] ──────────────────────────────", b.WarningLevel))
	if len(b.Illusions) == 0 {
		lines = append(lines, "  No confirmed illusions detected.")
	} else {
		for i, c := range b.Illusions {
			if i == 6 {
				break
			}
			lines = append(lines, fmt.Sprintf("  ⚠ [%s] %s: %s", c.Severity, c.Type, clip(c.Text, 70)))
			if c.Actual != "" {
				lines = append(lines, "     actual: "+clip(c.Actual, 70))
			}
		}
	}

	if len(b.Unverifiable) > 0 {
		lines = append(lines, "",
			fmt.Sprintf("  UNVERIFIABLE (%d claims, require manual check):", len(b.Unverifiable)))
		for i, c := range b.Unverifiable {
			if i == 4 {
				break
			}
			lines = append(lines, fmt.Sprintf("    ? %s: %s", c.Type, clip(c.Text, 70)))
			if c.Note != "" {
				lines = append(lines, "      note: "+c.Note)
			}
		}
	}

	lines = append(lines, "",
		"── ACTIVE WORK ORDER ────────────────────────────────────────────",
		b.ActiveWorkOrder,
		"",
		"── NEXT ACTION ──────────────────────────────────────────────────",
		"  → "+b.NextAction)

	if len(b.CurrentFocus) > 0 {
		n := len(b.CurrentFocus)
		if n > 3 {
			n = 3
		}
		lines = append(lines, "",
			fmt.Sprintf("── CURRENT FOCUS (latest %d) ────────────────────────────────────", n))
		for _, entry := range b.CurrentFocus[:n] {
			lines = append(lines, "",
				fmt.Sprintf("  [%s] [%s]", clip(entry.CreatedAt, 16), entry.Category),
				"  "+clip(entry.Preview, 300))
		}
	}

	rule := strings.Repeat("═", 68)
	lines = append(lines, "", rule,
		"  What was recorded is not what is real. Trust the scan.",
		rule)

	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
