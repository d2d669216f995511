package cmd

import (
	"path"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focuslog/internal/panel"
	"github.com/Tiliavir/focuslog/internal/watch"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Open the interactive timer, logs and stats panel",
	Args:  cobra.NoArgs,
	RunE:  runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	toasts := panel.NewToasts()
	engine := newEngine(toasts)

	watcher, err := watch.New(app.vaultDir)
	if err != nil {
		app.log.WithError(err).Warn("file watching disabled")
	} else {
		defer watcher.Close()
	}

	m := panel.New(panel.Deps{
		Engine:   engine,
		Diary:    app.diary,
		Settings: &app.settings,
		Toasts:   toasts,
		Watcher:  watcher,
		WatchDir: dayFolder,
	})

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// dayFolder is the folder on disk holding the log for day.
func dayFolder(day time.Time) string {
	return filepath.Join(app.vaultDir, filepath.FromSlash(path.Dir(app.diary.Path(day))))
}
