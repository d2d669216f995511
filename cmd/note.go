package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	noteStart string
	noteEnd   string
	noteTag   string
	noteDate  string
)

var noteCmd = &cobra.Command{
	Use:   "note <notes>",
	Short: "Replace the notes of a recorded session",
	Long: `note rewrites the notes cell of the session identified by its start
time, end time and tag. The other cells of the row are left untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNote,
}

func init() {
	noteCmd.Flags().StringVar(&noteStart, "start", "", "Start time of the session")
	noteCmd.Flags().StringVar(&noteEnd, "end", "", "End time of the session")
	noteCmd.Flags().StringVar(&noteTag, "tag", "", "Tag of the session")
	noteCmd.Flags().StringVar(&noteDate, "date", "", "Day of the session (YYYY-MM-DD, default today)")
	_ = noteCmd.MarkFlagRequired("start")
	_ = noteCmd.MarkFlagRequired("end")
	_ = noteCmd.MarkFlagRequired("tag")
}

func runNote(cmd *cobra.Command, args []string) error {
	day, err := parseDay(noteDate, time.Now())
	if err != nil {
		return err
	}
	start, err := normalizeClock(noteStart)
	if err != nil {
		return err
	}
	end, err := normalizeClock(noteEnd)
	if err != nil {
		return err
	}
	notes := strings.Join(args, " ")

	if err := app.diary.UpdateNotes(day, start, end, noteTag, notes); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated notes of %s–%s [%s].\n", start, end, noteTag)
	return nil
}
