package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tocCmd = &cobra.Command{
	Use:   "toc <manifest>",
	Short: "Print the table of contents of a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, reg.Book().WindowTitle())
		fmt.Fprintln(out)
		fmt.Fprint(out, reg.Contents().String())
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <manifest>",
	Short: "Check that a manifest builds a valid book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadBook(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		tracks, parts := 0, 0
		for _, p := range reg.Pages() {
			if reg.IsTrack(p.ID) {
				tracks++
			}
			if reg.IsPart(p.ID) {
				parts++
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d pages, %d tracks, %d parts\n",
			reg.Book().Title, reg.Len(), tracks, parts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tocCmd, validateCmd)
}
