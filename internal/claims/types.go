// Package claims mines knowledge-base entries for checkable assertions
// and cross-references them against a reality snapshot.
package claims

import "sort"

// Verdict is the outcome of verifying one claim.
type Verdict string

const (
	Verified     Verdict = "VERIFIED"     // claim matches reality
	Illusion     Verdict = "ILLUSION"     // claim contradicts reality
	Unverifiable Verdict = "UNVERIFIABLE" // cannot be checked automatically
	Stale        Verdict = "STALE"        // claim may have been superseded
)

// Severity ranks how dangerous a confirmed illusion is.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// ClaimType identifies which extraction rule produced a claim.
type ClaimType string

const (
	TypeGitCommit     ClaimType = "git_commit"
	TypeServiceHealth ClaimType = "service_health"
	TypeBugActive     ClaimType = "bug_active"
	TypeFileExists    ClaimType = "file_exists"
)

// Claim is a single extracted assertion. The extractor creates it with
// verdict UNVERIFIABLE; Verify assigns the final verdict exactly once.
type Claim struct {
	EntryID       string    `json:"entry_id"`
	EntryPriority string    `json:"entry_priority"`
	Type          ClaimType `json:"type"`
	Text          string    `json:"claim"`
	Expected      string    `json:"expected"`
	Verdict       Verdict   `json:"verdict"`
	Actual        string    `json:"actual,omitempty"`
	Severity      Severity  `json:"severity"`
	Note          string    `json:"note,omitempty"`
}

// Entry is the slice of a knowledge-base row the extractor needs.
type Entry struct {
	ID       string
	Priority string
	Content  string
}

var verdictRank = map[Verdict]int{
	Illusion:     0,
	Unverifiable: 1,
	Verified:     2,
	Stale:        3,
}

var severityRank = map[Severity]int{
	SeverityHigh:   0,
	SeverityMedium: 1,
	SeverityLow:    2,
}

// Sort orders claims by verdict priority (ILLUSION first), ties broken
// by severity (HIGH first). This ordering is a contract consumed by the
// synthesizer and by report renderers.
func Sort(cs []Claim) {
	sort.SliceStable(cs, func(i, j int) bool {
		vi, vj := rank(verdictRank, cs[i].Verdict, 9), rank(verdictRank, cs[j].Verdict, 9)
		if vi != vj {
			return vi < vj
		}
		return rank(severityRank, cs[i].Severity, 9) < rank(severityRank, cs[j].Severity, 9)
	})
}

func rank[K comparable](m map[K]int, k K, fallback int) int {
	if r, ok := m[k]; ok {
		return r
	}
	return fallback
}

// Dedupe drops claims sharing a (type, expected-value prefix) key,
// keeping the first occurrence in extraction order.
func Dedupe(cs []Claim) []Claim {
	type key struct {
		t ClaimType
		e string
	}
	seen := make(map[key]bool, len(cs))
	out := make([]Claim, 0, len(cs))
	for _, c := range cs {
		k := key{c.Type, prefix(c.Expected, 40)}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

func prefix(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
