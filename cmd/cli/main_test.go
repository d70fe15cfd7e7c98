package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRealMainExportsEmptySession(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "timetable.csv")
	cfg := writeConfig(t, dir, `
import:
  calendarium_url: ""
export:
  timetable_csv: `+out+`
log:
  level: error
  format: json
`)

	if code := realMain([]string{"-config", cfg}); code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("timetable not exported: %v", err)
	}
}

func TestRealMainFailedImport(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, `
import:
  calendarium_url: ""
  rooms_csv: `+filepath.Join(dir, "missing.csv")+`
export:
  timetable_csv: ""
log:
  level: error
  format: json
`)

	if code := realMain([]string{"-config", cfg}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRealMainMissingConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if code := realMain([]string{"-config", missing}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRealMainBadFlag(t *testing.T) {
	if code := realMain([]string{"-unknown"}); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}
