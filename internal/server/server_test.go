package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cloudeye/orient/internal/briefing"
	"github.com/cloudeye/orient/internal/config"
)

// testServer builds a server over an engine whose stores and services
// are all absent, so every request works fully offline.
func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.LibrarianDB = filepath.Join(dir, "librarian.db")
	cfg.SapphireDB = filepath.Join(dir, "sapphire.db")

	engine := briefing.NewEngine(cfg, nil)
	s := New(cfg.Server, engine, nil)

	srv := httptest.NewServer(s.Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string) map[string]any {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding %s: %v", url, err)
	}
	return body
}

func TestHealthz(t *testing.T) {
	srv := testServer(t)
	body := getJSON(t, srv.URL+"/healthz")
	if body["status"] != "ok" {
		t.Errorf("healthz status: %v", body["status"])
	}
}

func TestOrientHealth(t *testing.T) {
	srv := testServer(t)
	body := getJSON(t, srv.URL+"/orient/health")
	if body["service"] != "orient" {
		t.Errorf("service: %v", body["service"])
	}
	if body["version"] == "" {
		t.Error("version must be reported")
	}
}

func TestBriefingTextEndpoint(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/orient/briefing")
	if err != nil {
		t.Fatalf("GET briefing: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type: %s", ct)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	report := string(raw)
	for _, section := range []string{"ORIENTATION BRIEFING", "REALITY SCAN", "NEXT ACTION"} {
		if !strings.Contains(report, section) {
			t.Errorf("report missing %q", section)
		}
	}
}

func TestBriefingJSONEndpoint(t *testing.T) {
	srv := testServer(t)
	body := getJSON(t, srv.URL+"/orient/briefing.json")

	for _, key := range []string{"generated_at", "warning_level", "illusions", "text_report", "next_action"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if body["warning_level"] != "GREEN" {
		t.Errorf("nothing configured must be GREEN, got %v", body["warning_level"])
	}
}

func TestScanEndpoint(t *testing.T) {
	srv := testServer(t)
	body := getJSON(t, srv.URL+"/orient/scan")

	for _, key := range []string{"scanned_at", "duration_ms", "git", "services", "librarian", "sapphire", "filesystem"} {
		if _, ok := body[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if _, ok := body["illusions"]; ok {
		t.Error("scan endpoint must not include claim analysis")
	}
}

func TestIllusionsEndpoint(t *testing.T) {
	srv := testServer(t)
	body := getJSON(t, srv.URL+"/orient/illusions")

	if body["illusion_count"] != float64(0) {
		t.Errorf("illusion_count: %v", body["illusion_count"])
	}
	if body["illusions"] == nil {
		t.Error("illusions must be an empty list, never null")
	}
	if body["unverifiable"] == nil {
		t.Error("unverifiable must be an empty list, never null")
	}
}

func TestBriefingCachedAcrossRequests(t *testing.T) {
	srv := testServer(t)

	first := getJSON(t, srv.URL+"/orient/briefing.json")
	second := getJSON(t, srv.URL+"/orient/briefing.json")
	if first["generated_at"] != second["generated_at"] {
		t.Error("back-to-back requests inside the TTL must share one scan")
	}
}
