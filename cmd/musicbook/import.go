package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/handiism/musicbook/internal/bandcamp"
	ioutils "github.com/handiism/musicbook/internal/io"
)

var (
	importOutput   string
	importContents bool
)

var importCmd = &cobra.Command{
	Use:   "import <bandcamp-url>",
	Short: "Create manifests from Bandcamp albums",
	Long:  "Create a manifest for a Bandcamp album or track page, or for every release of an artist page. The manifests stream the Bandcamp previews.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contents := settings.CreateContentsPage
		if cmd.Flags().Changed("contents") {
			contents = importContents
		}

		importer := bandcamp.NewImporter(newHTTPClient(), bandcamp.NewParser(contents), appLog.Named("bandcamp"))
		manifests, importErr := importer.Import(cmd.Context(), args[0])

		out := cmd.OutOrStdout()
		for _, m := range manifests {
			name := ioutils.SanitizeFileName(m.Book.Artist+" - "+m.Book.Title) + ".yaml"
			path := filepath.Join(importOutput, name)
			if err := m.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ %s (%d pages)\n", path, len(m.Pages))
		}
		return importErr
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", ".", "directory to write the manifests to")
	importCmd.Flags().BoolVar(&importContents, "contents", true, "add a table of contents page")
	rootCmd.AddCommand(importCmd)
}
