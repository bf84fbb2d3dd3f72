package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.AlertBuffer != 64 || cfg.AlertHorizon != 7 {
		t.Fatalf("unexpected alert defaults: %+v", cfg)
	}
	if !cfg.MorningDigest {
		t.Fatalf("expected morning digest on by default: %+v", cfg)
	}
	if cfg.DBPath == "" || cfg.LogPath == "" {
		t.Fatalf("expected data paths set: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("PLANNERD_DB", "data/custom.db")
	t.Setenv("PLANNERD_LOG", "data/custom.log")
	t.Setenv("PLANNERD_ALERT_BUFFER", "128")
	t.Setenv("PLANNERD_ALERT_HORIZON_DAYS", "14")
	t.Setenv("PLANNERD_MORNING_DIGEST", "off")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DBPath != "data/custom.db" || cfg.LogPath != "data/custom.log" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
	if cfg.AlertBuffer != 128 || cfg.AlertHorizon != 14 {
		t.Fatalf("unexpected alert overrides: %+v", cfg)
	}
	if cfg.MorningDigest {
		t.Fatalf("expected morning digest off from env: %+v", cfg)
	}
}
