package app

import "testing"

func TestConfigFromEnvOverrides(t *testing.T) {
	t.Setenv("LANLORDS_TCP_ADDR", "127.0.0.1:7001")
	t.Setenv("LANLORDS_HTTP_ADDR", "127.0.0.1:7002")
	t.Setenv("LANLORDS_LOG_FILE", "/tmp/test.log")

	cfg := configFromEnv()
	if cfg.TCPAddr != "127.0.0.1:7001" {
		t.Fatalf("unexpected TCP addr %q", cfg.TCPAddr)
	}
	if cfg.HTTPAddr != "127.0.0.1:7002" {
		t.Fatalf("unexpected HTTP addr %q", cfg.HTTPAddr)
	}
	if cfg.LogFile != "/tmp/test.log" {
		t.Fatalf("unexpected log file %q", cfg.LogFile)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TCPAddr != ":60001" {
		t.Fatalf("unexpected default TCP addr %q", cfg.TCPAddr)
	}
	if cfg.HTTPAddr != ":60002" {
		t.Fatalf("unexpected default HTTP addr %q", cfg.HTTPAddr)
	}
	if cfg.LogFile == "" {
		t.Fatalf("expected a default log file")
	}
}
