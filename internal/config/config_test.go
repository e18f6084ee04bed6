package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, "server:\n  http_port: 9000\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.HTTPPort != 9000 {
		t.Errorf("HTTPPort = %d, want 9000", cfg.Server.HTTPPort)
	}
	if cfg.Ingest.UDPPort != 5004 {
		t.Errorf("UDPPort default = %d, want 5004", cfg.Ingest.UDPPort)
	}
	if cfg.Monitor.PushIntervalMS != 1000 {
		t.Errorf("PushIntervalMS default = %d, want 1000", cfg.Monitor.PushIntervalMS)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(writeTempConfig(t, "server:\n  bogus_field: 1\n"))
	if err == nil {
		t.Fatal("Load accepted an unknown field")
	}
}

func TestValidateRanges(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"http port too high", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"udp port zero", func(c *Config) { c.Ingest.UDPPort = 0 }},
		{"interval too small", func(c *Config) { c.Monitor.PushIntervalMS = 10 }},
	}
	for _, tc := range cases {
		cfg := &Config{}
		cfg.setDefaults()
		tc.mut(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: Validate accepted invalid config", tc.name)
		}
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
