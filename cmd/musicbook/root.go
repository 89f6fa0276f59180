package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/book"
	"github.com/handiism/musicbook/internal/config"
	"github.com/handiism/musicbook/internal/http"
	ioutils "github.com/handiism/musicbook/internal/io"
	"github.com/handiism/musicbook/internal/logger"
	"github.com/handiism/musicbook/internal/manifest"
)

var (
	configPath string
	logLevel   string
	logFile    string

	settings *config.Settings
	appLog   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "musicbook",
	Short:         "musicbook plays albums as page-turning books.",
	Long:          "musicbook shows an album as a book with one page per track or part, keeping the page in view and the playing audio in step.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = appLog.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the settings file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write JSON logs to this file, rotated")
}

// setup loads the settings and creates the logger. The player owns the
// terminal, so it logs to the log file only.
func setup(cmd *cobra.Command) error {
	if err := config.LoadEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	s, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("load settings %s: %w", path, err)
	}
	s.ApplyEnv()
	if cmd.Flags().Changed("log-level") {
		s.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		s.LogFile = logFile
	}
	settings = s

	log, err := logger.New(s.ToLoggerConfig(cmd.Name() != "play"))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	appLog = log
	return nil
}

func newHTTPClient() *http.Client {
	return http.NewClient(
		http.WithTimeout(settings.HTTPTimeout()),
		http.WithUserAgent(settings.UserAgent),
	)
}

// loadBook reads the manifest at source and builds its book.
func loadBook(ctx context.Context, source string) (*book.Registry, error) {
	m, err := manifest.Load(ctx, source, newHTTPClient())
	if err != nil {
		return nil, err
	}
	if settings.MediaBaseURI != "" {
		m.Book.MediaBaseURI = settings.MediaBaseURI
	}
	reg, err := manifest.Build(m, book.WithLogger(appLog.Named("book")))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return reg, nil
}

// loadImage reads a local image or downloads a remote one.
func loadImage(ctx context.Context, location string) ([]byte, error) {
	if manifest.IsRemote(location) {
		return newHTTPClient().Get(ctx, location)
	}
	return ioutils.NewImageService().ReadImage(location)
}
