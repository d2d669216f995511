// Package panel is the interactive terminal view: a timer tab driving the
// Pomodoro engine, a logs tab listing and editing a day's sessions, and a
// stats tab charting focus time.
package panel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/focuslog/internal/config"
	"github.com/Tiliavir/focuslog/internal/logging"
	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/stats"
	"github.com/Tiliavir/focuslog/internal/timer"
	"github.com/Tiliavir/focuslog/internal/watch"
)

type tab int

const (
	tabTimer tab = iota
	tabLogs
	tabStats
	tabCount
)

var tabNames = [tabCount]string{"Timer", "Logs", "Stats"}

const toastTTL = 4 * time.Second

// tickMsg carries the engine generation it was scheduled under.
type tickMsg struct{ gen uint64 }

// logChangedMsg reports a day log edited on disk.
type logChangedMsg struct{ path string }

type clearToastMsg struct{ seq int }

// Diary is the part of the log store the panel reads and edits.
type Diary interface {
	stats.Loader
	UpdateNotes(t time.Time, start, end, tag, notes string) error
}

// Deps wires the panel to the rest of the application. Watcher and WatchDir
// are optional; without them the panel only refreshes after its own writes.
type Deps struct {
	Engine   *timer.Engine
	Diary    Diary
	Settings *config.Settings
	Toasts   *Toasts
	Watcher  *watch.Watcher
	WatchDir func(day time.Time) string
	Now      func() time.Time
}

// Model is the bubbletea model behind the panel.
type Model struct {
	engine   *timer.Engine
	diary    Diary
	stats    *stats.Aggregator
	settings *config.Settings
	toasts   *Toasts
	watcher  *watch.Watcher
	watchDir func(time.Time) string
	now      func() time.Time
	log      *logrus.Entry

	tab      tab
	width    int
	height   int
	help     help.Model
	progress progress.Model

	tagIndex int

	logDay  time.Time
	day     model.DayLog
	table   table.Model
	editing bool
	notes   textinput.Model

	period   stats.Period
	statsDay time.Time
	report   stats.Report

	toast    string
	toastSeq int
}

// New builds the panel and loads today's log and stats.
func New(d Deps) *Model {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Toasts == nil {
		d.Toasts = NewToasts()
	}

	notes := textinput.New()
	notes.Prompt = "备注: "
	notes.Placeholder = "what did you work on?"
	notes.CharLimit = 0 // unlimited, so saved notes are never cut short
	notes.Width = 40

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "开始时间", Width: 10},
			{Title: "结束时间", Width: 10},
			{Title: "标签", Width: 8},
			{Title: "备注", Width: 30},
			{Title: "时长", Width: 8},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	today := d.Now()
	m := &Model{
		engine:   d.Engine,
		diary:    d.Diary,
		stats:    stats.New(d.Diary, d.Settings.WeekStartDay()),
		settings: d.Settings,
		toasts:   d.Toasts,
		watcher:  d.Watcher,
		watchDir: d.WatchDir,
		now:      d.Now,
		log:      logging.NewLogger("panel"),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		tagIndex: indexOf(d.Settings.Tags, d.Engine.Tag()),
		logDay:   today,
		table:    t,
		notes:    notes,
		period:   stats.Day,
		statsDay: today,
	}
	m.refresh()
	m.switchWatch()
	return m
}

func indexOf(tags []string, tag string) int {
	for i, t := range tags {
		if t == tag {
			return i
		}
	}
	return -1
}

func tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Init starts listening for file changes and resumes ticking when the
// engine is already running.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.engine.Running() {
		cmds = append(cmds, tickCmd(m.engine.Generation()))
	}
	cmds = append(cmds, m.waitForChange())
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(msg.Width-8, 10)

	case tickMsg:
		cmds = append(cmds, m.onTick(msg))

	case logChangedMsg:
		m.log.WithField("path", msg.path).Debug("log changed on disk")
		m.refresh()
		cmds = append(cmds, m.waitForChange())

	case clearToastMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}

	case tea.KeyMsg:
		cmds = append(cmds, m.onKey(msg))
	}

	cmds = append(cmds, m.flushToasts())
	return m, tea.Batch(cmds...)
}

// onTick advances the engine for a tick of the current generation. Ticks
// left over from an earlier start or a pause are dropped.
func (m *Model) onTick(msg tickMsg) tea.Cmd {
	if msg.gen != m.engine.Generation() || !m.engine.Running() {
		return nil
	}
	if m.engine.Tick() {
		// The first session of a day may have created its folder.
		m.switchWatch()
		m.refresh()
		return nil
	}
	return tickCmd(m.engine.Generation())
}

func (m *Model) onKey(msg tea.KeyMsg) tea.Cmd {
	if m.editing {
		return m.onEditKey(msg)
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, keys.NextTab):
		m.tab = (m.tab + 1) % tabCount
		return nil
	case key.Matches(msg, keys.PrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		return nil
	}

	switch m.tab {
	case tabLogs:
		return m.onLogsKey(msg)
	case tabStats:
		m.onStatsKey(msg)
		return nil
	default:
		return m.onTimerKey(msg)
	}
}

func (m *Model) onTimerKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.StartStop):
		if m.engine.Running() {
			m.engine.Pause()
			return nil
		}
		if err := m.engine.Start(); err != nil {
			m.log.WithError(err).Debug("start refused")
			return nil
		}
		return tickCmd(m.engine.Generation())
	case key.Matches(msg, keys.Skip):
		m.engine.Skip()
	case key.Matches(msg, keys.Reset):
		m.engine.Reset()
	case key.Matches(msg, keys.TagLeft):
		m.cycleTag(-1)
	case key.Matches(msg, keys.TagRight):
		m.cycleTag(1)
	}
	return nil
}

// cycleTag moves the tag selection by delta, wrapping around.
func (m *Model) cycleTag(delta int) {
	tags := m.settings.Tags
	n := len(tags)
	if n == 0 {
		return
	}
	if m.engine.TagLocked() {
		m.toasts.Notify("The tag cannot change during a focus session.")
		return
	}

	i := m.tagIndex + delta
	if m.tagIndex < 0 {
		i = 0
		if delta < 0 {
			i = n - 1
		}
	}
	i = (i%n + n) % n
	if err := m.engine.SelectTag(tags[i]); err != nil {
		m.toasts.Notify(err.Error())
		return
	}
	m.tagIndex = i
}

func (m *Model) onLogsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.PrevDay):
		m.showDay(m.logDay.AddDate(0, 0, -1))
	case key.Matches(msg, keys.NextDay):
		m.showDay(m.logDay.AddDate(0, 0, 1))
	case key.Matches(msg, keys.Today):
		m.showDay(m.now())
	case key.Matches(msg, keys.Edit):
		row := m.table.SelectedRow()
		if row == nil {
			m.toasts.Notify("No session selected.")
			return nil
		}
		m.editing = true
		m.notes.SetValue(row[3])
		m.notes.CursorEnd()
		return m.notes.Focus()
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) onEditKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return tea.Quit
	case key.Matches(msg, keys.Cancel):
		m.editing = false
		m.notes.Blur()
		return nil
	case key.Matches(msg, keys.Save):
		m.saveNotes()
		return nil
	}
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return cmd
}

// saveNotes writes the edited notes back to the selected row.
func (m *Model) saveNotes() {
	m.editing = false
	m.notes.Blur()

	row := m.table.SelectedRow()
	if row == nil {
		return
	}
	err := m.diary.UpdateNotes(m.logDay, row[0], row[1], row[2], m.notes.Value())
	if err != nil {
		m.log.WithError(err).Warn("updating notes failed")
		m.toasts.Notify(fmt.Sprintf("Could not save notes: %v", err))
		return
	}
	m.toasts.Notify("Notes saved.")
	m.reloadLogs()
}

func (m *Model) onStatsKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.DayView):
		m.period = stats.Day
	case key.Matches(msg, keys.WeekView):
		m.period = stats.Week
	case key.Matches(msg, keys.YearView):
		m.period = stats.Year
	case key.Matches(msg, keys.PrevDay):
		m.statsDay = shiftPeriod(m.period, m.statsDay, -1)
	case key.Matches(msg, keys.NextDay):
		m.statsDay = shiftPeriod(m.period, m.statsDay, 1)
	case key.Matches(msg, keys.Today):
		m.statsDay = m.now()
	default:
		return
	}
	m.reloadStats()
}

func shiftPeriod(p stats.Period, day time.Time, n int) time.Time {
	switch p {
	case stats.Week:
		return day.AddDate(0, 0, 7*n)
	case stats.Year:
		return day.AddDate(n, 0, 0)
	default:
		return day.AddDate(0, 0, n)
	}
}

func (m *Model) showDay(day time.Time) {
	m.logDay = day
	m.table.SetCursor(0)
	m.reloadLogs()
	m.switchWatch()
}

func (m *Model) refresh() {
	m.reloadLogs()
	m.reloadStats()
}

func (m *Model) reloadLogs() {
	day, err := m.diary.LoadDay(m.logDay)
	if err != nil {
		m.log.WithError(err).Warn("loading day log failed")
		m.toasts.Notify(fmt.Sprintf("Could not read the log: %v", err))
	}
	m.day = day

	rows := make([]table.Row, 0, len(day.Entries))
	for _, e := range day.Entries {
		rows = append(rows, table.Row{e.StartTime, e.EndTime, e.Tag, e.Notes, logtable.FormatDuration(e.DurationMinutes)})
	}
	m.table.SetRows(rows)
	m.table.SetCursor(m.table.Cursor())
}

func (m *Model) reloadStats() {
	r, err := m.stats.Report(m.period, m.statsDay)
	if err != nil {
		m.log.WithError(err).Warn("building stats failed")
		m.toasts.Notify(fmt.Sprintf("Could not build stats: %v", err))
	}
	m.report = r
}

// switchWatch points the file watcher at the folder of the shown day.
func (m *Model) switchWatch() {
	if m.watcher == nil || m.watchDir == nil {
		return
	}
	dir := m.watchDir(m.logDay)
	if err := m.watcher.Switch(dir); err != nil {
		m.log.WithError(err).WithField("dir", dir).Debug("cannot watch folder yet")
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return logChangedMsg{path: p}
	}
}

// flushToasts moves queued notices into the status line and schedules
// their removal.
func (m *Model) flushToasts() tea.Cmd {
	pending := m.toasts.drain()
	if len(pending) == 0 {
		return nil
	}
	m.toast = strings.Join(pending, "  ")
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return clearToastMsg{seq: seq}
	})
}
