package update

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DBPath        string
	LogPath       string
	AlertBuffer   int
	AlertHorizon  int
	MorningDigest bool
}

func DefaultRuntimeConfig() RuntimeConfig {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return RuntimeConfig{
		DBPath:        filepath.Join(home, ".plannerd", "plannerd.db"),
		LogPath:       filepath.Join(home, ".plannerd", "plannerd.log"),
		AlertBuffer:   64,
		AlertHorizon:  7,
		MorningDigest: true,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("PLANNERD_DB")); v != "" {
		cfg.DBPath = v
	}
	if v := strings.TrimSpace(os.Getenv("PLANNERD_LOG")); v != "" {
		cfg.LogPath = v
	}
	if v, ok := getEnvInt("PLANNERD_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	if v, ok := getEnvInt("PLANNERD_ALERT_HORIZON_DAYS"); ok && v > 0 {
		cfg.AlertHorizon = v
	}
	if v, ok := getEnvBool("PLANNERD_MORNING_DIGEST"); ok {
		cfg.MorningDigest = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
