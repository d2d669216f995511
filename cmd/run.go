package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/focuslog/internal/notice"
	"github.com/Tiliavir/focuslog/internal/timecalc"
	"github.com/Tiliavir/focuslog/internal/timer"
)

var (
	runTag    string
	runCycles int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run focus sessions in the terminal without the panel",
	Long: `run counts down a focus session for --tag and records it when it
completes. With --cycles greater than one, breaks and further focus sessions
follow automatically. Interrupting discards the running session.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runTag, "tag", "", "Tag for the focus sessions (required)")
	runCmd.Flags().IntVar(&runCycles, "cycles", 1, "Number of focus sessions to run")
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := checkTag(runTag); err != nil {
		return err
	}
	if runCycles < 1 {
		runCycles = 1
	}

	out := cmd.OutOrStdout()
	live := isTerminal(out)
	engine := newEngine(notice.Func(func(msg string) {
		if live {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, msg)
	}))
	if err := engine.SelectTag(runTag); err != nil {
		return err
	}
	if err := engine.Start(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	return countdown(ctx, engine, out, live, runCycles, ticker.C)
}

// countdown ticks engine on every value from ticks until cycles focus
// sessions have completed or ctx is cancelled.
func countdown(ctx context.Context, engine *timer.Engine, out io.Writer, live bool, cycles int, ticks <-chan time.Time) error {
	started := time.Now()
	done := 0

	for {
		select {
		case <-ctx.Done():
			if live {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "Interrupted after %s; the running %s was not recorded.\n",
				formatElapsed(int64(time.Since(started).Seconds())), engine.Mode())
			return nil

		case <-ticks:
			finished := engine.Mode()
			if !engine.Tick() {
				if live {
					fmt.Fprintf(out, "\r%s %s  %s ", engine.Mode(), engine.Tag(), timecalc.FormatCountdown(engine.Remaining()))
				}
				continue
			}

			if finished == timer.Focus {
				done++
				if done >= cycles {
					fmt.Fprintf(out, "Done: %d focus session(s) in %s.\n", done, formatElapsed(int64(time.Since(started).Seconds())))
					return nil
				}
			}
			if err := engine.Start(); err != nil {
				return err
			}
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func formatElapsed(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
