package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/musicbook/internal/audio"
	ioutils "github.com/handiism/musicbook/internal/io"
)

var (
	playlistFormat string
	playlistOutput string
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <manifest>",
	Short: "Export the tracks of a book as a playlist",
	Long:  "Export the tracks of a book as an M3U, PLS, WPL or ZPL playlist. Multi-part tracks are listed once.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := settings.ToPlaylistFormat()
		if cmd.Flags().Changed("format") {
			f, err := audio.ParsePlaylistFormat(playlistFormat)
			if err != nil {
				return err
			}
			format = f
		}

		reg, err := loadBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		content := audio.NewPlaylistCreator(format, settings.M3UExtended).CreatePlaylist(reg)

		if playlistOutput == "" || playlistOutput == "-" {
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		}
		if err := ioutils.WriteFile(playlistOutput, []byte(content)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ wrote %s\n", playlistOutput)
		return nil
	},
}

func init() {
	playlistCmd.Flags().StringVarP(&playlistFormat, "format", "f", "m3u", "playlist format: m3u, pls, wpl, zpl")
	playlistCmd.Flags().StringVarP(&playlistOutput, "output", "o", "", "file to write (default standard output)")
	rootCmd.AddCommand(playlistCmd)
}
