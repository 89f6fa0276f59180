package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/handiism/musicbook/internal/audio"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *s != *DefaultSettings() {
		t.Errorf("Load() = %+v, want defaults", s)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	s := DefaultSettings()
	s.ScrollSettleMS = 66
	s.PlaylistFormat = "pls"
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.ScrollSettleDelay() != 66*time.Millisecond {
		t.Errorf("ScrollSettleDelay() = %v, want 66ms", got.ScrollSettleDelay())
	}
	if got.ToPlaylistFormat() != audio.FormatPLS {
		t.Errorf("ToPlaylistFormat() = %v, want PLS", got.ToPlaylistFormat())
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.LogLevel != "debug" || s.RestartThreshold != 2 {
		t.Errorf("Load() = %+v", s)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvScrollSettleMS, "120")
	t.Setenv(EnvMediaBaseURI, "https://example.com/media/")

	s := DefaultSettings()
	s.ApplyEnv()

	if s.LogLevel != "warn" || s.ScrollSettleMS != 120 || s.MediaBaseURI != "https://example.com/media/" {
		t.Errorf("ApplyEnv() = %+v", s)
	}
	if s.LogFile != "" {
		t.Errorf("LogFile = %q, want unchanged", s.LogFile)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := EnvLogFile + "=/tmp/musicbook.log\n" + EnvLogLevel + "=error\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogFile, "")
	os.Unsetenv(EnvLogFile)

	if err := LoadEnv(path); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := os.Getenv(EnvLogFile); got != "/tmp/musicbook.log" {
		t.Errorf("%s = %q", EnvLogFile, got)
	}
	if got := os.Getenv(EnvLogLevel); got != "debug" {
		t.Errorf("%s = %q, existing variables must win", EnvLogLevel, got)
	}

	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadEnv() of a missing file error = %v", err)
	}
}

func TestToLoggerConfig(t *testing.T) {
	s := DefaultSettings()
	s.LogFile = "/var/log/musicbook.log"

	cfg := s.ToLoggerConfig(false)
	if cfg.Console || cfg.File != s.LogFile || string(cfg.Level) != "info" || cfg.MaxBackups != 3 {
		t.Errorf("ToLoggerConfig() = %+v", cfg)
	}
}
