package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/musicbook/internal/config"
)

var saveConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings",
	Long:  "Show the effective settings, after the settings file and the environment have been applied. With --save they are written to the settings file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if saveConfig {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := settings.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ wrote %s\n", path)
			return nil
		}

		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&saveConfig, "save", false, "write the settings file")
	rootCmd.AddCommand(configCmd)
}
