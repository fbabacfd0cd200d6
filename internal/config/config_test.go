package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Scan.HTTPTimeoutSeconds != 8 {
		t.Errorf("expected default http timeout 8, got %d", cfg.Scan.HTTPTimeoutSeconds)
	}
	if cfg.Scan.RecentHours != 72 {
		t.Errorf("expected default recency window 72h, got %d", cfg.Scan.RecentHours)
	}
	if cfg.Cache.TTLSeconds != 60 {
		t.Errorf("expected default cache TTL 60s, got %d", cfg.Cache.TTLSeconds)
	}
	if cfg.Server.Port != 8556 {
		t.Errorf("expected default port 8556, got %d", cfg.Server.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.orient.yml")

	original := DefaultConfig()
	original.LibrarianDB = "/data/librarian.db"
	original.SapphireDB = "/data/sapphire_torus.db"
	original.Repos = map[string]string{"coach": "/srv/coach", "omni": "/srv/omni"}
	original.Services = map[string]string{"coach": "https://coach.example.com"}
	original.KeyFiles = map[string]string{"coach/notes.md": "/srv/coach/notes.md"}
	original.Scan.RecentHours = 48
	original.Cache.TTLSeconds = 30
	original.WorkOrder.FocusRepo = "coach"
	original.WorkOrder.WatchKeys = []string{"coach/notes.md"}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.LibrarianDB != original.LibrarianDB {
		t.Errorf("librarian_db: got %q, want %q", loaded.LibrarianDB, original.LibrarianDB)
	}
	if loaded.Repos["coach"] != "/srv/coach" {
		t.Errorf("repos.coach: got %q", loaded.Repos["coach"])
	}
	if loaded.Services["coach"] != "https://coach.example.com" {
		t.Errorf("services.coach: got %q", loaded.Services["coach"])
	}
	if loaded.Scan.RecentHours != 48 {
		t.Errorf("recent_hours: got %d, want 48", loaded.Scan.RecentHours)
	}
	if loaded.Cache.TTLSeconds != 30 {
		t.Errorf("ttl_seconds: got %d, want 30", loaded.Cache.TTLSeconds)
	}
	if loaded.WorkOrder.FocusRepo != "coach" {
		t.Errorf("focus_repo: got %q", loaded.WorkOrder.FocusRepo)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("round-tripped config should validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8556 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing.yml")

	os.Setenv("ORIENT_LIBRARIAN_DB", "/override/librarian.db")
	defer os.Unsetenv("ORIENT_LIBRARIAN_DB")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LibrarianDB != "/override/librarian.db" {
		t.Errorf("env override not applied: got %q", cfg.LibrarianDB)
	}
}

func TestValidateRejectsMalformedService(t *testing.T) {
	cases := map[string]string{
		"no scheme":  "coach.example.com",
		"bad scheme": "ftp://coach.example.com",
		"no host":    "http://",
	}
	for name, raw := range cases {
		cfg := DefaultConfig()
		cfg.Services = map[string]string{"coach": raw}
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error for %q", name, raw)
		}
	}
}

func TestValidateRejectsEmptyRepoPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Repos = map[string]string{"coach": ""}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty repo path")
	}
}

func TestValidateRejectsUnknownFocusRepo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkOrder.FocusRepo = "ghost"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unregistered focus repo")
	}
}

func TestValidateRejectsUnknownWatchKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkOrder.WatchKeys = []string{"not/registered.md"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unregistered watch key")
	}
}
