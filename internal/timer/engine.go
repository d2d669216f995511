// Package timer implements the Pomodoro countdown: a single counter that
// alternates between focus and break, advanced by a one-second tick.
package timer

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logging"
	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/notice"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

// Mode is the phase the countdown is in.
type Mode int

const (
	Focus Mode = iota
	Break
)

func (m Mode) String() string {
	if m == Break {
		return "break"
	}
	return "focus"
}

func (m Mode) opposite() Mode {
	if m == Focus {
		return Break
	}
	return Focus
}

// Session is a completed focus interval.
type Session struct {
	Start   time.Time
	End     time.Time
	Tag     string
	Minutes int
}

// Entry converts s into a log row.
func (s Session) Entry() model.Entry {
	return model.Entry{
		StartTime:       s.Start.Format(timecalc.ClockLayout),
		EndTime:         s.End.Format(timecalc.ClockLayout),
		Tag:             s.Tag,
		Notes:           logtable.AutoNotes,
		DurationMinutes: s.Minutes,
	}
}

// Options wires an Engine to its collaborators. Durations is consulted every
// time a countdown is armed, so settings changes apply to the next session.
type Options struct {
	Durations       func() (focusSeconds, breakSeconds int)
	Now             func() time.Time
	OnFocusComplete func(Session) error
	Notifier        notice.Notifier
}

// Engine is the timer state machine. It is not safe for concurrent use; all
// calls are expected from one event loop.
type Engine struct {
	opts Options
	log  *logrus.Entry

	mode       Mode
	remaining  int
	total      int
	running    bool
	paused     bool
	completing bool
	tag        string
	started    time.Time
	generation uint64
}

// New returns an idle engine in focus mode.
func New(opts Options) *Engine {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Notifier == nil {
		opts.Notifier = notice.Discard
	}
	if opts.Durations == nil {
		opts.Durations = func() (int, int) { return 25 * 60, 5 * 60 }
	}
	e := &Engine{opts: opts, log: logging.NewLogger("timer"), mode: Focus}
	e.arm()
	return e
}

// arm loads the full duration of the current mode.
func (e *Engine) arm() {
	focus, brk := e.opts.Durations()
	if e.mode == Focus {
		e.total = focus
	} else {
		e.total = brk
	}
	if e.total < 1 {
		e.total = 1
	}
	e.remaining = e.total
}

// stopTicking invalidates the current tick stream.
func (e *Engine) stopTicking() {
	e.generation++
}

// SelectTag chooses the tag recorded for the next focus session. It fails
// while a focus session is running or paused.
func (e *Engine) SelectTag(tag string) error {
	if e.TagLocked() {
		return apperr.InvalidInput("the tag cannot change during a focus session")
	}
	e.tag = tag
	return nil
}

// Start begins or resumes the countdown. A focus session needs a tag; without
// one a warning is shown and the timer stays stopped. Starting from idle
// re-reads the durations, resuming after Pause keeps the remaining time.
func (e *Engine) Start() error {
	if e.running {
		return nil
	}
	if e.mode == Focus && e.tag == "" {
		err := apperr.TagRequired()
		e.opts.Notifier.Notify("Select a tag before starting a focus session.")
		return err
	}
	if !e.paused {
		e.arm()
		e.started = e.opts.Now()
	}
	e.paused = false
	e.running = true
	e.stopTicking()
	e.log.WithFields(logrus.Fields{"mode": e.mode, "remaining": e.remaining, "tag": e.tag}).Debug("timer started")
	return nil
}

// Tick advances the countdown by one second. It does nothing unless the
// timer is running, and ignores calls made while a completion is in
// progress. It reports whether this tick finished the countdown.
func (e *Engine) Tick() bool {
	if !e.running || e.completing {
		return false
	}
	if e.remaining > 0 {
		e.remaining--
	}
	if e.remaining != 0 {
		return false
	}

	e.completing = true
	e.stopTicking()

	finished := e.mode
	if finished == Focus {
		s := Session{Start: e.started, End: e.opts.Now(), Tag: e.tag, Minutes: e.total / 60}
		if e.opts.OnFocusComplete != nil {
			if err := e.opts.OnFocusComplete(s); err != nil {
				e.log.WithError(err).Error("recording focus session failed")
				e.opts.Notifier.Notify(fmt.Sprintf("Could not record the session: %v", err))
			}
		}
		e.opts.Notifier.Notify("Focus session complete. Time for a break.")
	} else {
		e.opts.Notifier.Notify("Break is over. Ready to focus again.")
	}

	e.mode = finished.opposite()
	e.arm()
	e.running = false
	e.paused = false
	e.completing = false
	e.log.WithField("finished", finished).Info("countdown complete")
	return true
}

// Pause stops the countdown, keeping the remaining time.
func (e *Engine) Pause() {
	if !e.running {
		return
	}
	e.stopTicking()
	e.running = false
	e.paused = true
}

// Skip abandons the current countdown and switches mode without recording
// anything. The timer is left stopped.
func (e *Engine) Skip() {
	e.stopTicking()
	e.running = false
	e.paused = false
	e.mode = e.mode.opposite()
	e.arm()
	e.log.WithField("mode", e.mode).Debug("skipped to next mode")
}

// Reset abandons the current countdown and re-arms the same mode.
func (e *Engine) Reset() {
	e.stopTicking()
	e.running = false
	e.paused = false
	e.arm()
}

// Mode returns the current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Remaining returns the seconds left in the current countdown.
func (e *Engine) Remaining() int { return e.remaining }

// Total returns the full length of the current countdown in seconds.
func (e *Engine) Total() int { return e.total }

// Running reports whether the countdown is ticking.
func (e *Engine) Running() bool { return e.running }

// Paused reports whether a countdown was paused part way through.
func (e *Engine) Paused() bool { return e.paused }

// Tag returns the selected tag.
func (e *Engine) Tag() string { return e.tag }

// TagLocked reports whether tag selection is disabled. A paused focus
// session keeps its tag until it completes or is reset.
func (e *Engine) TagLocked() bool { return e.mode == Focus && (e.running || e.paused) }

// Generation identifies the current tick stream. It changes whenever ticking
// starts or stops, so a tick scheduled under an older generation is stale.
func (e *Engine) Generation() uint64 { return e.generation }
