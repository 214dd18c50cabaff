package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/matt-g-everett/framecast/config"
	"github.com/matt-g-everett/framecast/scene"
)

func TestNewLogger(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "debug"
	var buf bytes.Buffer
	logger, err := newLogger(cfg, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatalf("expected debug records to be enabled")
	}
	logger.Debug("frame", "index", 3)
	if !strings.Contains(buf.String(), "index=3") {
		t.Fatalf("expected a text record, got %q", buf.String())
	}

	cfg.Log.Level = "loud"
	var invalid *scene.InvalidConfigError
	if _, err := newLogger(cfg, &buf); !errors.As(err, &invalid) || invalid.Field != "log.level" {
		t.Fatalf("expected InvalidConfigError for log.level, got %v", err)
	}
}
