// Package config provides configuration management for musicbook.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Overrides from the environment and .env files
//   - Conversion to logger and playlist configuration
//
// # Loading Settings
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    return err // defaults are used if the file doesn't exist
//	}
//	if err := config.LoadEnv(); err != nil {
//	    return err
//	}
//	settings.ApplyEnv()
//
// # Environment
//
// MUSICBOOK_LOG_LEVEL, MUSICBOOK_LOG_FILE, MUSICBOOK_SCROLL_SETTLE_MS and
// MUSICBOOK_MEDIA_BASE_URI override the corresponding settings. A .env file
// in the working directory is loaded first; it never overrides variables
// that are already set.
package config
