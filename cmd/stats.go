package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/stats"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

var (
	statsDay    bool
	statsWeek   bool
	statsYear   bool
	statsDate   string
	statsFormat string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show focus time per hour, day or month",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsDay, "day", false, "Hourly totals for one day (default)")
	statsCmd.Flags().BoolVar(&statsWeek, "week", false, "Daily totals for the week")
	statsCmd.Flags().BoolVar(&statsYear, "year", false, "Monthly totals for the year")
	statsCmd.Flags().StringVar(&statsDate, "date", "", "Day inside the period (YYYY-MM-DD, default today)")
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, json")
	statsCmd.MarkFlagsMutuallyExclusive("day", "week", "year")
}

func runStats(cmd *cobra.Command, args []string) error {
	day, err := parseDay(statsDate, time.Now())
	if err != nil {
		return err
	}
	period := stats.Day
	switch {
	case statsWeek:
		period = stats.Week
	case statsYear:
		period = stats.Year
	}

	r, err := stats.New(app.diary, app.settings.WeekStartDay()).Report(period, day)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch statsFormat {
	case "json":
		return writeStatsJSON(out, r)
	case "md", "":
		printStats(out, r)
		return nil
	default:
		return apperr.InvalidInput(fmt.Sprintf("unknown format %q (want md or json)", statsFormat))
	}
}

func printStats(out io.Writer, r stats.Report) {
	peak := 0
	for _, b := range r.Buckets {
		peak = max(peak, b.Minutes)
	}

	title := strings.ToUpper(r.Period.String()[:1]) + r.Period.String()[1:]
	if r.Period == stats.Week {
		title += " " + timecalc.ISOWeekLabel(r.From)
	}
	fmt.Fprintf(out, "%s %s – %s\n", title, r.From.Format("2006-01-02"), r.To.Format("2006-01-02"))
	fmt.Fprintln(out, "--------------------------------")
	for _, b := range r.Buckets {
		if r.Period == stats.Day && b.Minutes == 0 {
			continue
		}
		fmt.Fprintf(out, "%-12s%-22s%s\n", b.Label, textBar(b.Minutes, peak, 20), timecalc.FormatMinutes(b.Minutes))
	}
	if len(r.ByTag) > 0 {
		fmt.Fprintln(out, "--------------------------------")
		for _, t := range r.ByTag {
			fmt.Fprintf(out, "%-12s%s (%d)\n", t.Tag, timecalc.FormatMinutes(t.Minutes), t.Sessions)
		}
	}
	fmt.Fprintln(out, "--------------------------------")
	fmt.Fprintf(out, "%-12s%s in %d session(s), average %s\n", "Total",
		timecalc.FormatMinutes(r.Total), r.Sessions, timecalc.FormatMinutes(int(r.Average()+0.5)))
}

func textBar(value, peak, width int) string {
	if peak <= 0 || value <= 0 {
		return ""
	}
	return strings.Repeat("#", max(value*width/peak, 1))
}

type statsJSON struct {
	Period   string           `json:"period"`
	Week     string           `json:"week,omitempty"`
	From     string           `json:"from"`
	To       string           `json:"to"`
	Total    int              `json:"total_minutes"`
	Sessions int              `json:"sessions"`
	Average  float64          `json:"average_minutes"`
	Buckets  []stats.Bucket   `json:"buckets"`
	ByTag    []stats.TagTotal `json:"by_tag"`
}

func writeStatsJSON(out io.Writer, r stats.Report) error {
	week := ""
	if r.Period == stats.Week {
		week = timecalc.ISOWeekLabel(r.From)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(statsJSON{
		Period:   r.Period.String(),
		Week:     week,
		From:     r.From.Format("2006-01-02"),
		To:       r.To.Format("2006-01-02"),
		Total:    r.Total,
		Sessions: r.Sessions,
		Average:  r.Average(),
		Buckets:  r.Buckets,
		ByTag:    r.ByTag,
	})
}
