package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret-key-32bytes-long!!!!")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}

	if cfg.SecretKey != "test-secret-key-32bytes-long!!!!" {
		t.Errorf("SecretKey = %q, want test secret", cfg.SecretKey)
	}

	// Verify that slog global logger is configured for JSON output
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithMissingConfig_ReturnsError(t *testing.T) {
	t.Setenv("SECRET_KEY", "")

	var buf bytes.Buffer
	cfg, err := Init(&buf)
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}
