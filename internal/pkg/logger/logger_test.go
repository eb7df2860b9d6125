package logger

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel})

	Component("registry").Info().Int64("messID", 3).Msg("assigned")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "registry" {
		t.Errorf("component = %v, want registry", entry["component"])
	}
	if entry["message"] != "assigned" {
		t.Errorf("message = %v, want assigned", entry["message"])
	}
}

func TestConfigureUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "loud", Output: &buf})
	defer Configure(Config{Level: InfoLevel})

	Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line written at info level: %q", buf.String())
	}
	Info().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("info line missing")
	}
}

func TestConfigFrom(t *testing.T) {
	cfg := ConfigFrom("WARN", "text")
	if cfg.Level != WarnLevel || !cfg.Pretty {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestEveryLineCarriesServiceName(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	defer Configure(Config{Level: InfoLevel})

	Warn().Msg("unroutable complaint")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["service"] != ServiceName || entry["level"] != "warn" {
		t.Errorf("unexpected entry %v", entry)
	}
}
