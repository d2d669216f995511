package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focuslog/internal/stats"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's focus time and the last session",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	now := time.Now()

	day, err := app.diary.LoadDay(now)
	if err != nil {
		return err
	}
	r, err := stats.New(app.diary, app.settings.WeekStartDay()).Daily(now)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Log: %s\n", day.Path)
	if len(day.Entries) == 0 {
		fmt.Fprintln(out, "No focus sessions today.")
		return nil
	}

	fmt.Fprintf(out, "Today: %d session(s), %s focused.\n", r.Sessions, timecalc.FormatMinutes(r.Total))
	for _, t := range r.ByTag {
		fmt.Fprintf(out, "  %-10s%s\n", t.Tag, timecalc.FormatMinutes(t.Minutes))
	}
	last := day.Entries[len(day.Entries)-1]
	fmt.Fprintf(out, "Last: %s–%s  %s\n", last.StartTime, last.EndTime, last.Tag)
	return nil
}
