package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

var (
	listDate string
	listWeek bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded focus sessions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listDate, "date", "", "Day to list (YYYY-MM-DD, default today)")
	listCmd.Flags().BoolVar(&listWeek, "week", false, "List the whole week containing the day")
}

func runList(cmd *cobra.Command, args []string) error {
	days, err := loadDays(listDate, listWeek)
	if err != nil {
		return err
	}
	printList(cmd.OutOrStdout(), days)
	return nil
}

// loadDays loads the day named by date, or its whole week.
func loadDays(date string, week bool) ([]model.DayLog, error) {
	day, err := parseDay(date, time.Now())
	if err != nil {
		return nil, err
	}
	from, to := timecalc.StartOfDay(day), timecalc.StartOfDay(day)
	if week {
		from, to = timecalc.WeekRange(day, app.settings.WeekStartDay())
	}
	return app.diary.LoadRange(from, to)
}

// printList prints sessions grouped by date.
func printList(out io.Writer, days []model.DayLog) {
	found := false
	for _, d := range days {
		if len(d.Entries) == 0 {
			continue
		}
		found = true
		fmt.Fprintln(out, d.Date)
		for _, e := range d.Entries {
			notes := ""
			if e.Notes != "" {
				notes = "  " + e.Notes
			}
			fmt.Fprintf(out, "  %s–%s  %s%s (%s)\n",
				e.StartTime, e.EndTime, e.Tag, notes, logtable.FormatDuration(e.DurationMinutes))
		}
	}
	if !found {
		fmt.Fprintln(out, "No sessions found.")
	}
}
