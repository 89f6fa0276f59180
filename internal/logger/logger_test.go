package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      Level
		want    zapcore.Level
		wantErr bool
	}{
		{DebugLevel, zapcore.DebugLevel, false},
		{"", zapcore.InfoLevel, false},
		{WarnLevel, zapcore.WarnLevel, false},
		{ErrorLevel, zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "musicbook.log")
	log, err := New(Config{Level: WarnLevel, File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info("hidden")
	log.Warn("shown", zap.Int("page", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info record written at warn level")
	}
	if !strings.Contains(string(data), `"msg":"shown"`) || !strings.Contains(string(data), `"page":3`) {
		t.Errorf("log file = %s", data)
	}
}

func TestNew_Nop(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without outputs must be a no-op")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud", Console: true}); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
