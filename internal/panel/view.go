package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/stats"
	"github.com/Tiliavir/focuslog/internal/timecalc"
	"github.com/Tiliavir/focuslog/internal/timer"
)

const barWidth = 30

var (
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2)
	tabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A0A0A0")).Padding(0, 2)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	toastStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB86C"))
	clockStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	labelStyle = lipgloss.NewStyle().Width(10)
	focusColor = lipgloss.Color("#FF6B6B")
	breakColor = lipgloss.Color("#04B575")
	pauseColor = lipgloss.Color("#F1C40F")
)

// View renders the panel from the current state only.
func (m *Model) View() string {
	var body string
	switch m.tab {
	case tabLogs:
		body = m.logsView()
	case tabStats:
		body = m.statsView()
	default:
		body = m.timerView()
	}

	sections := []string{m.tabsView(), "", body, ""}
	if m.toast != "" {
		sections = append(sections, toastStyle.Render(m.toast))
	}
	sections = append(sections, m.help.View(helpKeys{tab: m.tab, editing: m.editing}))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) tabsView() string {
	parts := make([]string, 0, len(tabNames))
	for i, name := range tabNames {
		if tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) timerView() string {
	e := m.engine

	color := focusColor
	if e.Mode() == timer.Break {
		color = breakColor
	}
	state := "idle"
	switch {
	case e.Running():
		state = "running"
	case e.Paused():
		state = "paused"
		color = pauseColor
	}

	title := strings.ToUpper(e.Mode().String())
	if e.Mode() == timer.Focus && e.Tag() != "" {
		title += " · " + e.Tag()
	}
	header := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	clock := clockStyle.Foreground(color).Render(timecalc.FormatCountdown(e.Remaining()))

	percent := 0.0
	if e.Total() > 0 {
		percent = float64(e.Total()-e.Remaining()) / float64(e.Total())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		clock,
		m.progress.ViewAs(percent),
		"",
		m.tagsView(),
		dimStyle.Render(state),
	)
}

func (m *Model) tagsView() string {
	if len(m.settings.Tags) == 0 {
		return dimStyle.Render("no tags configured")
	}
	parts := make([]string, 0, len(m.settings.Tags))
	for i, tag := range m.settings.Tags {
		style := lipgloss.NewStyle().Padding(0, 1)
		if i == m.tagIndex {
			style = style.Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color(m.settings.TagColor(tag)))
		} else {
			style = style.Foreground(lipgloss.Color(m.settings.TagColor(tag)))
		}
		parts = append(parts, style.Render(tag))
	}
	line := "Tag: " + lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if m.engine.TagLocked() {
		line += dimStyle.Render("  (locked)")
	}
	return line
}

func (m *Model) logsView() string {
	total := 0
	for _, e := range m.day.Entries {
		total += e.DurationMinutes
	}
	day := m.logDay.Format("2006-01-02 Mon")
	if timecalc.SameDay(m.logDay, m.now()) {
		day += " (today)"
	}
	header := fmt.Sprintf("%s  %d sessions  %s", day, len(m.day.Entries), logtable.FormatDuration(total))

	sections := []string{lipgloss.NewStyle().Bold(true).Render(header), dimStyle.Render(m.day.Path), ""}
	if len(m.day.Entries) == 0 {
		sections = append(sections, dimStyle.Render("No sessions recorded."))
	} else {
		sections = append(sections, m.table.View())
	}
	if m.editing {
		sections = append(sections, "", m.notes.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) statsView() string {
	r := m.report

	periods := []stats.Period{stats.Day, stats.Week, stats.Year}
	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		if p == m.period {
			parts = append(parts, activeTabStyle.Render(p.String()))
		} else {
			parts = append(parts, tabStyle.Render(p.String()))
		}
	}

	span := r.From.Format("2006-01-02")
	if m.period != stats.Day {
		span += " – " + r.To.Format("2006-01-02")
	}
	if m.period == stats.Week {
		span = timecalc.ISOWeekLabel(r.From) + "  " + span
	}
	summary := fmt.Sprintf("%s   total %s   sessions %d   average %s",
		span, timecalc.FormatMinutes(r.Total), r.Sessions, timecalc.FormatMinutes(int(r.Average()+0.5)))

	sections := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, parts...),
		"",
		summary,
		"",
	}
	sections = append(sections, m.bucketBars(r)...)
	if len(r.ByTag) > 0 {
		sections = append(sections, "", lipgloss.NewStyle().Bold(true).Render("By tag"))
		sections = append(sections, m.tagBars(r)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// bucketBars draws one bar per bucket. The day view lists only hours with
// recorded time.
func (m *Model) bucketBars(r stats.Report) []string {
	peak := 0
	for _, b := range r.Buckets {
		peak = max(peak, b.Minutes)
	}
	if peak == 0 {
		return []string{dimStyle.Render("No focus time in this period.")}
	}

	color := lipgloss.Color(m.settings.TagColor(""))
	var lines []string
	for _, b := range r.Buckets {
		if r.Period == stats.Day && b.Minutes == 0 {
			continue
		}
		label := b.Label
		if r.Period == stats.Day {
			label += ":00"
		}
		lines = append(lines, labelStyle.Render(label)+bar(b.Minutes, peak, color)+" "+timecalc.FormatMinutes(b.Minutes))
	}
	return lines
}

func (m *Model) tagBars(r stats.Report) []string {
	peak := r.ByTag[0].Minutes
	lines := make([]string, 0, len(r.ByTag))
	for _, t := range r.ByTag {
		color := lipgloss.Color(m.settings.TagColor(t.Tag))
		lines = append(lines, labelStyle.Render(t.Tag)+bar(t.Minutes, peak, color)+
			fmt.Sprintf(" %s (%d)", timecalc.FormatMinutes(t.Minutes), t.Sessions))
	}
	return lines
}

func bar(value, peak int, color lipgloss.Color) string {
	if peak <= 0 || value <= 0 {
		return strings.Repeat(" ", barWidth)
	}
	n := max(value*barWidth/peak, 1)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n)) + strings.Repeat(" ", barWidth-n)
}
