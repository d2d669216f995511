package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
)

var (
	exportFormat string
	exportDate   string
	exportWeek   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded sessions to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
	exportCmd.Flags().StringVar(&exportDate, "date", "", "Day to export (YYYY-MM-DD, default today)")
	exportCmd.Flags().BoolVar(&exportWeek, "week", false, "Export the whole week containing the day")
}

func runExport(cmd *cobra.Command, args []string) error {
	days, err := loadDays(exportDate, exportWeek)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch exportFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(days); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case "md":
		printMarkdown(out, days)
	case "csv", "":
		printCSV(out, days)
	default:
		return apperr.InvalidInput(fmt.Sprintf("unknown format %q (want csv, json or md)", exportFormat))
	}
	return nil
}

func printCSV(out io.Writer, days []model.DayLog) {
	fmt.Fprintln(out, "date,start,end,tag,notes,duration_minutes")
	for _, d := range days {
		for _, e := range d.Entries {
			fmt.Fprintf(out, "%s,%s,%s,%s,%s,%d\n",
				csvEscape(d.Date),
				csvEscape(e.StartTime),
				csvEscape(e.EndTime),
				csvEscape(e.Tag),
				csvEscape(e.Notes),
				e.DurationMinutes,
			)
		}
	}
}

// printMarkdown prints one table per day in the log file's own format.
func printMarkdown(out io.Writer, days []model.DayLog) {
	first := true
	for _, d := range days {
		if len(d.Entries) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(out)
		}
		first = false

		fmt.Fprintf(out, "## %s %s\n\n%s\n%s\n", d.Date, app.settings.RecordHeading, logtable.HeaderRow, logtable.SeparatorRow)
		for _, e := range d.Entries {
			fmt.Fprintln(out, logtable.FormatRow(e))
		}
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
