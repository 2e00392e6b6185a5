package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultConfig(t *testing.T) {
	LoadDefaultConfig()
	if Config.Listen != ":9090" {
		t.Errorf("listen = %q, want :9090", Config.Listen)
	}
	if Config.StorePath != "fprint.db" {
		t.Errorf("store path = %q, want fprint.db", Config.StorePath)
	}
	if Config.MatchThreshold != 40 {
		t.Errorf("match threshold = %v, want 40", Config.MatchThreshold)
	}
	if Config.Workers <= 0 {
		t.Errorf("workers = %d, want > 0", Config.Workers)
	}
	if Config.LogMaxAgeDays != 7 || Config.LogRotateHours != 24 {
		t.Errorf("log rotation defaults wrong: %d days, %d hours", Config.LogMaxAgeDays, Config.LogRotateHours)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fprintd.toml")
	body := `
listen = ":7000"
match_threshold = 55.5
workers = 2
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if Config.Listen != ":7000" {
		t.Errorf("listen = %q, want :7000", Config.Listen)
	}
	if Config.MatchThreshold != 55.5 {
		t.Errorf("match threshold = %v, want 55.5", Config.MatchThreshold)
	}
	if Config.Workers != 2 {
		t.Errorf("workers = %d, want 2", Config.Workers)
	}
	// Keys absent from the file keep their defaults.
	if Config.StorePath != "fprint.db" {
		t.Errorf("store path = %q, want default", Config.StorePath)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatalf("missing file did not error")
	}
}
