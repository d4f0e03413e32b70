package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestConfigValidate verifies the flag combination checks, in particular
// that -remove-original without -apply is rejected.
func TestConfigValidate(t *testing.T) {
	cfg := &config{removeOriginal: true, apply: false, workers: 1}
	err := cfg.validate()
	if err == nil {
		t.Fatal("expected -remove-original without -apply to be rejected")
	}
	if !strings.Contains(err.Error(), "requires -apply") {
		t.Errorf("unexpected error message %q", err)
	}

	cfg = &config{removeOriginal: true, apply: true, workers: 1}
	if err := cfg.validate(); err != nil {
		t.Errorf("-remove-original with -apply should validate, got %v", err)
	}

	cfg = &config{workers: 1}
	if err := cfg.validate(); err != nil {
		t.Errorf("default configuration should validate, got %v", err)
	}
}

// TestConfigValidateClampsWorkers verifies that a non-positive worker count
// is normalized to one.
func TestConfigValidateClampsWorkers(t *testing.T) {
	for _, workers := range []int{-3, 0, 1} {
		cfg := &config{workers: workers}
		if err := cfg.validate(); err != nil {
			t.Fatalf("validate failed for workers=%d: %v", workers, err)
		}
		if cfg.workers < 1 {
			t.Errorf("workers=%d not clamped, got %d", workers, cfg.workers)
		}
	}
}

// TestConfigTargetsExplicitPaths verifies that explicit paths bypass the
// directory scan entirely.
func TestConfigTargetsExplicitPaths(t *testing.T) {
	cfg := &config{
		root:  filepath.Join(t.TempDir(), "does-not-exist"),
		paths: []string{"a.png", "b.png"},
	}

	got, err := cfg.targets()
	if err != nil {
		t.Fatalf("targets failed: %v", err)
	}
	if diff := cmp.Diff([]string{"a.png", "b.png"}, got); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

// TestConfigTargetsScansRoot verifies the scan fallback when no paths are
// given.
func TestConfigTargetsScansRoot(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "figure.png")
	if err := os.WriteFile(want, []byte("placeholder"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := &config{root: dir}
	got, err := cfg.targets()
	if err != nil {
		t.Fatalf("targets failed: %v", err)
	}
	if diff := cmp.Diff([]string{want}, got); diff != "" {
		t.Errorf("targets mismatch (-want +got):\n%s", diff)
	}
}

// TestConfigTargetsMissingRoot verifies that a nonexistent scan root is
// reported as an error.
func TestConfigTargetsMissingRoot(t *testing.T) {
	cfg := &config{root: filepath.Join(t.TempDir(), "missing")}

	if _, err := cfg.targets(); err == nil {
		t.Error("expected an error for a nonexistent root directory")
	}
}
