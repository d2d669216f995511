package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

var (
	addStart string
	addEnd   string
	addTag   string
	addNotes string
	addDate  string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a focus session that was not timed by focuslog",
	Args:  cobra.NoArgs,
	RunE:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addStart, "start", "", "Start time (HH:MM or HH:MM:SS)")
	addCmd.Flags().StringVar(&addEnd, "end", "", "End time (HH:MM or HH:MM:SS)")
	addCmd.Flags().StringVar(&addTag, "tag", "", "Tag of the session")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "Notes for the session")
	addCmd.Flags().StringVar(&addDate, "date", "", "Day of the session (YYYY-MM-DD, default today)")
	_ = addCmd.MarkFlagRequired("start")
	_ = addCmd.MarkFlagRequired("end")
	_ = addCmd.MarkFlagRequired("tag")
}

func runAdd(cmd *cobra.Command, args []string) error {
	if err := checkTag(addTag); err != nil {
		return err
	}
	day, err := parseDay(addDate, time.Now())
	if err != nil {
		return err
	}
	start, err := normalizeClock(addStart)
	if err != nil {
		return err
	}
	end, err := normalizeClock(addEnd)
	if err != nil {
		return err
	}
	minutes, err := timecalc.MinutesBetween(start, end)
	if err != nil {
		return apperr.InvalidInput(err.Error())
	}

	e := model.Entry{StartTime: start, EndTime: end, Tag: addTag, Notes: addNotes, DurationMinutes: minutes}
	added, err := app.diary.Record(day, e)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !added {
		fmt.Fprintf(out, "Session %s–%s [%s] is already recorded.\n", start, end, addTag)
		return nil
	}
	fmt.Fprintf(out, "Recorded %s–%s [%s] (%d min) in %s\n", start, end, addTag, minutes, app.diary.Path(day))
	return nil
}

// normalizeClock turns HH:MM or HH:MM:SS into the HH:MM:SS form used in logs.
func normalizeClock(s string) (string, error) {
	secs, err := timecalc.ParseClock(s)
	if err != nil {
		return "", apperr.InvalidInput(err.Error())
	}
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs%3600/60, secs%60), nil
}
