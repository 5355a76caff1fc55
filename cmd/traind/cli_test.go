package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("TRAIND_TEST_KEY", "")
	if got := envOr("TRAIND_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("got %q", got)
	}
	t.Setenv("TRAIND_TEST_KEY", "set")
	if got := envOr("TRAIND_TEST_KEY", "fallback"); got != "set" {
		t.Fatalf("got %q", got)
	}
}

func TestEnvOrInt(t *testing.T) {
	t.Setenv("TRAIND_TEST_INT", "not-a-number")
	if got := envOrInt("TRAIND_TEST_INT", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
	t.Setenv("TRAIND_TEST_INT", "42")
	if got := envOrInt("TRAIND_TEST_INT", 7); got != 42 {
		t.Fatalf("got %d", got)
	}
}

func TestNewLoggerLevelFallback(t *testing.T) {
	if lvl := newLogger("definitely-not-a-level").GetLevel(); lvl != zerolog.InfoLevel {
		t.Fatalf("fallback level %v", lvl)
	}
	if lvl := newLogger("debug").GetLevel(); lvl != zerolog.DebugLevel {
		t.Fatalf("debug level %v", lvl)
	}
}

func TestBuildRootCmdSubcommands(t *testing.T) {
	root := buildRootCmd()
	want := map[string]bool{"train": false, "datasets": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, seen := range want {
		if !seen {
			t.Fatalf("missing subcommand %q", name)
		}
	}
}

func TestRunDatasets(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.csv"), []byte("1,2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := runDatasets(dir); err != nil {
		t.Fatalf("runDatasets: %v", err)
	}
	if err := runDatasets(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing dir")
	}
}
