package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focuslog/internal/config"
	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logging"
	"github.com/Tiliavir/focuslog/internal/notice"
	"github.com/Tiliavir/focuslog/internal/storage"
	"github.com/Tiliavir/focuslog/internal/timer"
	"github.com/Tiliavir/focuslog/internal/vault"
)

var (
	configPath string
	vaultDir   string
)

// app holds what every command needs, loaded once before the command runs.
var app struct {
	settings     config.Settings
	settingsPath string
	vaultDir     string
	store        vault.Store
	diary        *storage.Diary
	log          *logrus.Entry
}

var rootCmd = &cobra.Command{
	Use:   "focuslog",
	Short: "focuslog – a Pomodoro timer that logs sessions to markdown",
	Long: `focuslog runs Pomodoro focus and break countdowns and records every
completed focus session as a row in a per-day markdown file inside a notes
vault (~/.focuslog/settings.yml configures where).

Run without a subcommand to open the interactive panel.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadApp,
	RunE:              runPanel,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode is 1 for bad input and 2 for failures reading or writing data.
func exitCode(err error) int {
	switch apperr.GetCode(err) {
	case apperr.ErrCodeFileSystem, apperr.ErrCodeNotDirectory:
		return 2
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Settings file (default ~/.focuslog/settings.yml)")
	rootCmd.PersistentFlags().StringVar(&vaultDir, "vault", "", "Vault root folder (overrides vaultPath)")

	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(configCmd)
}

func loadApp(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}
	s, err := config.Load(path)
	if err != nil {
		return err
	}
	if vaultDir != "" {
		s.VaultPath = vaultDir
	}
	dir, err := s.VaultDir()
	if err != nil {
		return err
	}

	app.settings = s
	app.settingsPath = path
	app.vaultDir = dir
	app.store = vault.NewFS(dir)
	app.diary = storage.New(app.store, s)
	app.log = logging.NewLogger("cmd").WithField("command", cmd.Name())
	app.log.WithFields(logrus.Fields{"vault": dir, "settings": path}).Debug("loaded settings")
	return nil
}

// newEngine builds a timer whose completed focus sessions are written to
// the diary.
func newEngine(n notice.Notifier) *timer.Engine {
	return timer.New(timer.Options{
		Durations: func() (int, int) {
			return app.settings.WorkSeconds(), app.settings.BreakSeconds()
		},
		Notifier: n,
		OnFocusComplete: func(s timer.Session) error {
			_, err := app.diary.Record(s.Start, s.Entry())
			return err
		},
	})
}

// parseDay reads a --date value: empty or "today", "yesterday", or
// YYYY-MM-DD in local time.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}
	d, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
	if err != nil {
		return time.Time{}, apperr.InvalidInput(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

// checkTag rejects tags missing from the settings.
func checkTag(tag string) error {
	if strings.TrimSpace(tag) == "" {
		return apperr.TagRequired()
	}
	if !app.settings.HasTag(tag) {
		return apperr.InvalidInput(fmt.Sprintf("unknown tag %q (configured: %s)", tag, strings.Join(app.settings.Tags, ", ")))
	}
	return nil
}
