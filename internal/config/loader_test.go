package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\ndatasets_dir: /tmp\nmax_epochs: 50\nbatch_size: 16\nlearning_rate: 0.05\npatience: 4\ntol: 0.001\nmetric: loss\nmaximize: false\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9999" || cfg.DatasetsDir != "/tmp" || cfg.MaxEpochs != 50 || cfg.BatchSize != 16 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.LearningRate != 0.05 || cfg.Patience != 4 || cfg.Tol != 0.001 || cfg.Metric != "loss" || cfg.Maximize {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","dataset":"housing.csv","max_epochs":12,"metric":"mae","maximize":true,"seed":42}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" || cfg.Dataset != "housing.csv" || cfg.MaxEpochs != 12 || cfg.Metric != "mae" || !cfg.Maximize || cfg.Seed != 42 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\ndatasets_dir=\"/x\"\npatience=2\ntol=0.01\nlog_level=\"debug\"\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8081" || cfg.DatasetsDir != "/x" || cfg.Patience != 2 || cfg.Tol != 0.01 || cfg.LogLevel != "debug" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error on missing file")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Fatalf("missing file error should say so: %v", err)
	}
	bad := writeTempFile(t, d, "bad.yaml", ":\n\t-")
	if _, err := Load(bad); err == nil {
		t.Fatalf("expected yaml parse error")
	}
}
