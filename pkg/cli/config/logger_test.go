package config_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/e-minguez/suse-edge-support-matrix/pkg/cli/config"
)

func TestLogger_New(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "debug", level: "debug"},
		{name: "DEBUG (case insensitive)", level: "DEBUG"},
		{name: "info", level: "info"},
		{name: "warn", level: "warn"},
		{name: "ERROR", level: "ERROR"},
		{name: "invalid", level: "invalid", wantErr: true},
		{name: "empty string", level: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level}
			logger, err := cfg.New(&bytes.Buffer{})
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, logger).Nil()
				return
			}
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &config.Logger{Level: "warn", JSON: true}
	logger, err := cfg.New(&buf)
	gt.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("Duplicate component name, overwriting previous record", "name", "Metal3")

	var entry map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	gt.Value(t, entry["level"]).Equal("WARN")
	gt.Value(t, entry["name"]).Equal("Metal3")
}

func TestLogger_Flags(t *testing.T) {
	cfg := &config.Logger{}
	gt.Value(t, flagNames(cfg.Flags())).Equal([]string{"log-level", "log-json"})
}
