package claims

import (
	"strings"
	"testing"

	"github.com/cloudeye/orient/internal/probe"
)

func snapshotFixture() *probe.RealitySnapshot {
	return &probe.RealitySnapshot{
		Git: map[string]probe.GitState{
			"coach": {Name: "coach", Available: true, Head: "1a2b3c4", HeadFull: "1a2b3c4d5e0000000000000000000000000000ff", Branch: "master"},
			"omni":  {Name: "omni", Available: true, Head: "9f8e7d6", HeadFull: "9f8e7d60000000000000000000000000000000aa", Branch: "main"},
			"ghost": {Name: "ghost", Available: false, Err: "path not found"},
		},
		Services: map[string]probe.ServiceState{
			"coach": {Name: "coach", Reachable: false, Err: "connection refused"},
			"ui":    {Name: "ui", Reachable: true, StatusCode: 200, ResponseMS: 12.5},
		},
		Filesystem: map[string]bool{
			"coach/notes.md": false,
			"omni/README.md": true,
			"bridge/tau.py":  true,
		},
	}
}

func TestVerifyCommitMatch(t *testing.T) {
	// Scenario A: "branch master at 1a2b3c4" against head 1a2b3c4d5e...
	snap := snapshotFixture()
	cs := Verify([]Claim{{
		Type:     TypeGitCommit,
		Text:     "branch master at 1a2b3c4",
		Expected: "1a2b3c4",
		Verdict:  Unverifiable,
		Severity: SeverityLow,
	}}, snap)

	c := cs[0]
	if c.Verdict != Verified {
		t.Fatalf("verdict: got %s, want VERIFIED", c.Verdict)
	}
	if c.Actual != snap.Git["coach"].HeadFull {
		t.Errorf("actual must be the full head id, got %q", c.Actual)
	}
	if !strings.Contains(c.Note, "coach") {
		t.Errorf("note must name the matching repo, got %q", c.Note)
	}
}

func TestVerifyCommitIllusion(t *testing.T) {
	cs := Verify([]Claim{{
		Type:     TypeGitCommit,
		Expected: "deadbee",
		Verdict:  Unverifiable,
		Severity: SeverityLow,
	}}, snapshotFixture())

	c := cs[0]
	if c.Verdict != Illusion {
		t.Fatalf("verdict: got %s, want ILLUSION", c.Verdict)
	}
	if c.Severity != SeverityMedium {
		t.Errorf("severity: got %s, want MEDIUM", c.Severity)
	}
	// Actual maps every known repo to its head, deterministically.
	if c.Actual != "coach=1a2b3c4 omni=9f8e7d6" {
		t.Errorf("actual: got %q", c.Actual)
	}
}

func TestVerifyServiceClaimedUpButDown(t *testing.T) {
	// Scenario B: "coach: UP" while the probe reports unreachable.
	cs := Verify([]Claim{{
		Type:     TypeServiceHealth,
		Text:     "coach: UP",
		Expected: "coach:UP",
		Verdict:  Unverifiable,
		Severity: SeverityLow,
	}}, snapshotFixture())

	c := cs[0]
	if c.Verdict != Illusion {
		t.Fatalf("verdict: got %s, want ILLUSION", c.Verdict)
	}
	if c.Severity != SeverityHigh {
		t.Errorf("severity: got %s, want HIGH", c.Severity)
	}
	if !strings.Contains(c.Actual, "connection refused") {
		t.Errorf("actual should carry the probe error, got %q", c.Actual)
	}
}

func TestVerifyServiceStates(t *testing.T) {
	cases := []struct {
		name     string
		expected string
		want     Verdict
	}{
		{"up and reachable", "ui:UP", Verified},
		{"down and unreachable", "coach:DOWN", Verified},
		{"down but reachable", "ui:DOWN", Unverifiable},
		{"unknown service", "mystery:UP", Unverifiable},
	}
	for _, tc := range cases {
		cs := Verify([]Claim{{Type: TypeServiceHealth, Expected: tc.expected,
			Verdict: Unverifiable, Severity: SeverityLow}}, snapshotFixture())
		if cs[0].Verdict != tc.want {
			t.Errorf("%s: got %s, want %s", tc.name, cs[0].Verdict, tc.want)
		}
	}
}

func TestVerifyBugAlwaysUnverifiable(t *testing.T) {
	cs := Verify([]Claim{{
		Type:     TypeBugActive,
		Text:     "BUG 4: no such table: routing_observations",
		Expected: "bug:present",
		Verdict:  Unverifiable,
		Severity: SeverityHigh,
	}}, snapshotFixture())

	c := cs[0]
	if c.Verdict != Unverifiable {
		t.Fatalf("bug claims are never mechanically verifiable, got %s", c.Verdict)
	}
	if c.Note == "" {
		t.Error("expected a note documenting the manual-verification limitation")
	}
}

func TestVerifyFileExistsIllusion(t *testing.T) {
	// Scenario E: claim names notes.md; the probe recorded
	// coach/notes.md as missing.
	cs := Verify([]Claim{{
		Type:     TypeFileExists,
		Text:     "committed notes.md",
		Expected: "notes.md",
		Verdict:  Unverifiable,
		Severity: SeverityLow,
	}}, snapshotFixture())

	c := cs[0]
	if c.Verdict != Illusion {
		t.Fatalf("verdict: got %s, want ILLUSION", c.Verdict)
	}
	if c.Severity != SeverityMedium {
		t.Errorf("severity: got %s, want MEDIUM", c.Severity)
	}
	if !strings.Contains(c.Actual, "coach/notes.md") {
		t.Errorf("actual should name the matched key, got %q", c.Actual)
	}
}

func TestVerifyFileExistsVerifiedAndUnknown(t *testing.T) {
	cs := Verify([]Claim{
		{Type: TypeFileExists, Expected: "tau.py", Verdict: Unverifiable, Severity: SeverityLow},
		{Type: TypeFileExists, Expected: "elsewhere/unknown.sql", Verdict: Unverifiable, Severity: SeverityLow},
	}, snapshotFixture())

	if cs[0].Verdict != Verified {
		t.Errorf("existing matched key: got %s, want VERIFIED", cs[0].Verdict)
	}
	if cs[1].Verdict != Unverifiable {
		t.Errorf("unmatched path: got %s, want UNVERIFIABLE", cs[1].Verdict)
	}
	if cs[1].Note != "File not in known scan paths" {
		t.Errorf("note: got %q", cs[1].Note)
	}
}

func TestVerifyAssignsExactlyOneVerdict(t *testing.T) {
	x := NewExtractor([]string{"coach", "ui"})
	entries := []Entry{{ID: "1", Priority: "current focus",
		Content: "commit 1a2b3c4; coach: UP; committed notes.md\nBUG INVENTORY\nBUG 1: no such column: x"}}
	cs := Verify(x.ExtractAll(entries), snapshotFixture())

	for _, c := range cs {
		switch c.Verdict {
		case Verified, Illusion, Unverifiable, Stale:
		default:
			t.Errorf("claim left without a verdict: %+v", c)
		}
	}
}

func TestSortTotalOrder(t *testing.T) {
	cs := []Claim{
		{Verdict: Verified, Severity: SeverityLow},
		{Verdict: Unverifiable, Severity: SeverityHigh},
		{Verdict: Illusion, Severity: SeverityMedium},
		{Verdict: Stale, Severity: SeverityHigh},
		{Verdict: Illusion, Severity: SeverityHigh},
	}
	Sort(cs)

	want := []struct {
		v Verdict
		s Severity
	}{
		{Illusion, SeverityHigh},
		{Illusion, SeverityMedium},
		{Unverifiable, SeverityHigh},
		{Verified, SeverityLow},
		{Stale, SeverityHigh},
	}
	for i, w := range want {
		if cs[i].Verdict != w.v || cs[i].Severity != w.s {
			t.Errorf("position %d: got %s/%s, want %s/%s",
				i, cs[i].Verdict, cs[i].Severity, w.v, w.s)
		}
	}
}
