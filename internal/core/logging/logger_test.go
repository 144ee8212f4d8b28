package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("discovery")
	logger.Info().Ctx(WithScanRoot(context.Background(), "/repo")).Msg("test message")

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if cmp := logEntry["cmp"]; cmp != "discovery" {
		t.Errorf("Component() cmp = %v, want %q", cmp, "discovery")
	}

	if msg := logEntry["message"]; msg != "test message" {
		t.Errorf("Component() message = %v, want %q", msg, "test message")
	}

	if root := logEntry["scan_root"]; root != "/repo" {
		t.Errorf("Component() scan_root = %v, want %q", root, "/repo")
	}
}
