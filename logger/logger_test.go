// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_Production(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	log := Init("production", &buf)

	log.Debug("hidden")
	log.Info("vote recorded", "performer", "ANA")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 JSON line (debug suppressed), got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "vote recorded" || entry["performer"] != "ANA" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestInit_Development(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	Init("development", &buf)

	slog.Debug("probe", "state", "up")

	out := buf.String()
	if !strings.Contains(out, "msg=probe") || !strings.Contains(out, "state=up") {
		t.Errorf("expected text debug output, got %q", out)
	}
}
