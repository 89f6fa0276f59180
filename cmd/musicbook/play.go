package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/handiism/musicbook/internal/manifest"
	"github.com/handiism/musicbook/internal/tui"
	"github.com/handiism/musicbook/internal/watch"
)

// reloadDelay collapses the events of one save into one reload.
const reloadDelay = 300 * time.Millisecond

var watchManifest bool

var playCmd = &cobra.Command{
	Use:   "play <manifest>",
	Short: "Open a book in the terminal player",
	Long:  "Open a book in the terminal player. The manifest is a YAML file or an http(s) URL.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		source := args[0]

		reg, err := loadBook(ctx, source)
		if err != nil {
			return err
		}
		appLog.Info("Opening book",
			zap.String("source", source),
			zap.String("title", reg.Book().Title),
			zap.Int("pages", reg.Len()))

		model := tui.NewModel(reg, settings,
			tui.WithLogger(appLog.Named("tui")),
			tui.WithImageLoader(loadImage),
		)

		if !watchManifest || manifest.IsRemote(source) {
			return tui.Run(model, nil)
		}

		var w *watch.Watcher
		err = tui.Run(model, func(p *tea.Program) {
			var werr error
			w, werr = watch.New(source, reloadDelay, func() {
				reg, err := loadBook(ctx, source)
				if err != nil {
					appLog.Warn("Reload failed", zap.Error(err))
				}
				p.Send(tui.ReloadMsg{Registry: reg, Err: err})
			}, appLog.Named("watch"))
			if werr != nil {
				appLog.Warn("Cannot watch manifest", zap.String("source", source), zap.Error(werr))
				return
			}
			go w.Run(ctx)
		})
		if w != nil {
			w.Close()
		}
		return err
	},
}

func init() {
	playCmd.Flags().BoolVarP(&watchManifest, "watch", "w", false, "reload the book when the manifest file changes")
	rootCmd.AddCommand(playCmd)
}
