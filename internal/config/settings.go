package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/handiism/musicbook/internal/audio"
	"github.com/handiism/musicbook/internal/logger"
)

// Settings holds all configuration options.
type Settings struct {
	// Player settings
	ScrollSettleMS       int     `json:"scroll_settle_ms"`
	RestartThreshold     float64 `json:"restart_threshold"`
	LoadLatencyMS        int     `json:"load_latency_ms"`
	TickIntervalMS       int     `json:"tick_interval_ms"`
	DefaultTrackDuration float64 `json:"default_track_duration"`

	// Book settings
	MediaBaseURI       string `json:"media_base_uri"` // overrides the manifest's base
	CreateContentsPage bool   `json:"create_contents_page"`

	// Scan settings
	ScanConcurrency int `json:"scan_concurrency"`

	// Playlist settings
	PlaylistFormat string `json:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended"`

	// HTTP settings
	HTTPTimeoutSeconds int    `json:"http_timeout_seconds"`
	UserAgent          string `json:"user_agent"`

	// Log settings
	LogLevel      string `json:"log_level"` // debug, info, warn, error
	LogFile       string `json:"log_file"`
	LogMaxSizeMB  int    `json:"log_max_size_mb"`
	LogMaxBackups int    `json:"log_max_backups"`
	LogMaxAgeDays int    `json:"log_max_age_days"`
	LogCompress   bool   `json:"log_compress"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		ScrollSettleMS:       200,
		RestartThreshold:     2,
		LoadLatencyMS:        250,
		TickIntervalMS:       100,
		DefaultTrackDuration: 180,

		CreateContentsPage: true,

		ScanConcurrency: 8,

		PlaylistFormat: "m3u",
		M3UExtended:    true,

		HTTPTimeoutSeconds: 30,

		LogLevel:      "info",
		LogMaxSizeMB:  10,
		LogMaxBackups: 3,
		LogMaxAgeDays: 28,
	}
}

// DefaultPath returns the default location of the settings file.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "musicbook", "settings.json")
}

// Load reads settings from a JSON file. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ScrollSettleDelay returns the debounce delay of scroll notifications.
func (s *Settings) ScrollSettleDelay() time.Duration {
	return time.Duration(s.ScrollSettleMS) * time.Millisecond
}

// LoadLatency returns the simulated load time of a media source.
func (s *Settings) LoadLatency() time.Duration {
	return time.Duration(s.LoadLatencyMS) * time.Millisecond
}

// TickInterval returns the interval the player clock advances at.
func (s *Settings) TickInterval() time.Duration {
	if s.TickIntervalMS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(s.TickIntervalMS) * time.Millisecond
}

// DefaultDuration returns the length assumed for tracks of unknown length.
func (s *Settings) DefaultDuration() time.Duration {
	return time.Duration(s.DefaultTrackDuration * float64(time.Second))
}

// HTTPTimeout returns the timeout of HTTP requests.
func (s *Settings) HTTPTimeout() time.Duration {
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}

// ToPlaylistFormat converts the playlist format name, falling back to M3U.
func (s *Settings) ToPlaylistFormat() audio.PlaylistFormat {
	f, err := audio.ParsePlaylistFormat(s.PlaylistFormat)
	if err != nil {
		return audio.FormatM3U
	}
	return f
}

// ToLoggerConfig converts settings to a logger configuration.
func (s *Settings) ToLoggerConfig(console bool) logger.Config {
	return logger.Config{
		Level:      logger.Level(s.LogLevel),
		Console:    console,
		File:       s.LogFile,
		MaxSizeMB:  s.LogMaxSizeMB,
		MaxBackups: s.LogMaxBackups,
		MaxAgeDays: s.LogMaxAgeDays,
		Compress:   s.LogCompress,
	}
}
