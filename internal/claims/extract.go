package claims

import (
	"regexp"
	"sort"
	"strings"
)

// A Rule is one named, independently testable extraction pattern.
// Adding a claim type means appending a rule, not modifying the others.
type Rule struct {
	Name    string
	Extract func(e Entry) []Claim
}

// Extractor runs an ordered rule list over knowledge-base entries.
type Extractor struct {
	rules []Rule
}

var (
	// A context word immediately followed by a 7-10 char hex token.
	reCommitContext = regexp.MustCompile(`(?i)(?:master|HEAD|branch|commit|at|repo)\s+([0-9a-f]{7,10})\b`)

	// Entries only yield defect claims when they carry an inventory marker.
	reBugMarker = regexp.MustCompile(`(?i)BUG INVENTORY|KNOWN RUNTIME|BEFORE STATE|runtime bugs`)
	reBugActive = regexp.MustCompile(`(?i)(?:BUG\s*\d+|no such table|no such column|attribute.*get|sqlite3\.Row).*`)

	// A file-action verb followed by a path-like token with a known extension.
	reFileClaim = regexp.MustCompile(`(?i)(?:committed|deployed|created|exists|saved).*?([A-Za-z0-9_\-/\\]+\.(?:go|py|md|js|ts|jsx|sql|toml|json))\b`)
)

const claimTextCap = 120

// NewExtractor builds the rule list. serviceNames seeds the
// health-reference rule; with no known services that rule extracts
// nothing.
func NewExtractor(serviceNames []string) *Extractor {
	up, down, canonical := serviceHealthPatterns(serviceNames)

	return &Extractor{rules: []Rule{
		{Name: "git_commit", Extract: extractCommitClaims},
		{Name: "service_health", Extract: extractServiceClaims(up, down, canonical)},
		{Name: "bug_active", Extract: extractBugClaims},
		{Name: "file_exists", Extract: extractFileClaims},
	}}
}

// Extract runs every rule over one entry, in rule order.
func (x *Extractor) Extract(e Entry) []Claim {
	var out []Claim
	for _, rule := range x.rules {
		out = append(out, rule.Extract(e)...)
	}
	return out
}

// ExtractAll extracts from every entry then deduplicates across the
// whole batch, preserving first-seen order.
func (x *Extractor) ExtractAll(entries []Entry) []Claim {
	var all []Claim
	for _, e := range entries {
		all = append(all, x.Extract(e)...)
	}
	return Dedupe(all)
}

// Rules exposes the rule list, mostly for tests.
func (x *Extractor) Rules() []Rule { return x.rules }

func extractCommitClaims(e Entry) []Claim {
	var out []Claim
	for _, m := range reCommitContext.FindAllStringSubmatch(e.Content, -1) {
		out = append(out, Claim{
			EntryID:       e.ID,
			EntryPriority: e.Priority,
			Type:          TypeGitCommit,
			Text:          m[0],
			Expected:      strings.ToLower(m[1]),
			Verdict:       Unverifiable, // assigned by Verify
			Severity:      SeverityLow,
		})
	}
	return out
}

// serviceHealthPatterns compiles UP and DOWN reference patterns over
// the known service names and a lookup from lowered token back to the
// configured name.
func serviceHealthPatterns(names []string) (up, down *regexp.Regexp, canonical map[string]string) {
	if len(names) == 0 {
		return nil, nil, nil
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	quoted := make([]string, len(sorted))
	canonical = make(map[string]string, len(sorted))
	for i, n := range sorted {
		quoted[i] = regexp.QuoteMeta(n)
		canonical[strings.ToLower(n)] = n
	}
	alt := strings.Join(quoted, "|")

	up = regexp.MustCompile(`(?i)\b(` + alt + `)\b[^\n]*?:\s*(UP|LIVE|healthy|running|operational)\b`)
	down = regexp.MustCompile(`(?i)\b(` + alt + `)\b[^\n]*?:\s*(DOWN|failed|error|unreachable)\b`)
	return up, down, canonical
}

func extractServiceClaims(up, down *regexp.Regexp, canonical map[string]string) func(Entry) []Claim {
	return func(e Entry) []Claim {
		if up == nil {
			return nil
		}
		var out []Claim
		emit := func(re *regexp.Regexp, state string) {
			for _, m := range re.FindAllStringSubmatch(e.Content, -1) {
				name, ok := canonical[strings.ToLower(m[1])]
				if !ok {
					continue
				}
				out = append(out, Claim{
					EntryID:       e.ID,
					EntryPriority: e.Priority,
					Type:          TypeServiceHealth,
					Text:          m[0],
					Expected:      name + ":" + state,
					Verdict:       Unverifiable,
					Severity:      SeverityLow,
				})
			}
		}
		emit(up, "UP")
		emit(down, "DOWN")
		return out
	}
}

func extractBugClaims(e Entry) []Claim {
	if !reBugMarker.MatchString(e.Content) {
		return nil
	}
	var out []Claim
	for _, m := range reBugActive.FindAllString(e.Content, -1) {
		out = append(out, Claim{
			EntryID:       e.ID,
			EntryPriority: e.Priority,
			Type:          TypeBugActive,
			Text:          prefix(m, claimTextCap),
			Expected:      "bug:present",
			Verdict:       Unverifiable,
			Severity:      SeverityHigh,
		})
	}
	return out
}

func extractFileClaims(e Entry) []Claim {
	var out []Claim
	for _, m := range reFileClaim.FindAllStringSubmatch(e.Content, -1) {
		fname := m[1]
		if len(fname) <= 4 { // skip trivial matches
			continue
		}
		out = append(out, Claim{
			EntryID:       e.ID,
			EntryPriority: e.Priority,
			Type:          TypeFileExists,
			Text:          prefix(m[0], claimTextCap),
			Expected:      fname,
			Verdict:       Unverifiable,
			Severity:      SeverityLow,
		})
	}
	return out
}
