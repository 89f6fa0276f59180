package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/scan"
)

// ManifestFileName is the default name of a manifest written next to its media.
const ManifestFileName = "musicbook.yaml"

var (
	scanOutput   string
	scanCover    bool
	scanContents bool
	verbose      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Create a manifest from a folder of MP3 files",
	Long:  "Create a manifest from the ID3 tags of the MP3 files in a folder. Files are ordered by track number, or by name when track numbers are missing.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		contents := settings.CreateContentsPage
		if cmd.Flags().Changed("contents") {
			contents = scanContents
		}

		scanner := scan.NewScanner(
			scan.WithConcurrency(settings.ScanConcurrency),
			scan.WithContents(contents),
			scan.WithCoverExtraction(scanCover),
			scan.WithProgress(printProgress(cmd)),
			scan.WithLogger(appLog.Named("scan")),
		)

		m, err := scanner.Scan(cmd.Context(), dir)
		if m == nil {
			return err
		}
		if err != nil {
			appLog.Warn("Some files were skipped", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "! some files were skipped: %v\n", err)
		}

		output := scanOutput
		if output == "" {
			output = filepath.Join(dir, ManifestFileName)
		}
		if err := m.Save(output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s (%d pages)\n", output, len(m.Pages))
		return nil
	},
}

// printProgress prints progress events, verbose ones only with --verbose.
func printProgress(cmd *cobra.Command) func(scan.ProgressEvent) {
	out := cmd.OutOrStdout()
	return func(event scan.ProgressEvent) {
		if event.Level == scan.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case scan.LevelError:
			prefix = "✗ "
		case scan.LevelWarning:
			prefix = "! "
		case scan.LevelSuccess:
			prefix = "✓ "
		case scan.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Fprintln(out, prefix+event.Message)
	}
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "manifest file to write (default <dir>/"+ManifestFileName+")")
	scanCmd.Flags().BoolVar(&scanCover, "cover", false, "extract the embedded cover picture into "+scan.CoverFileName)
	scanCmd.Flags().BoolVar(&scanContents, "contents", true, "add a table of contents page")
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show every file")
	rootCmd.AddCommand(scanCmd)
}
