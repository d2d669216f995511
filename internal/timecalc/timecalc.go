package timecalc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ClockLayout is the wall-clock format used in log rows.
const ClockLayout = "15:04:05"

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatMinutes formats whole minutes like FormatDuration, with "0m" for zero.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0m"
	}
	return FormatDuration(int64(minutes) * 60)
}

// FormatCountdown formats a countdown as MM:SS; minutes may exceed 59.
func FormatCountdown(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ParseClock parses "HH:MM:SS" or "HH:MM" into seconds since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	limits := []int{24, 60, 60}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n >= limits[i] {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60
	}
	return total, nil
}

// MinutesBetween returns the rounded number of minutes from start to end.
// An end earlier than start is taken to be on the following day.
func MinutesBetween(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, err
	}
	if e < s {
		e += 24 * 3600
	}
	return int(math.Round(float64(e-s) / 60)), nil
}

// WeekRange returns the first and last day of the week containing t, with
// weeks starting on firstDay.
func WeekRange(t time.Time, firstDay time.Weekday) (time.Time, time.Time) {
	offset := (int(t.Weekday()) - int(firstDay) + 7) % 7
	first := StartOfDay(t.AddDate(0, 0, -offset))
	last := EndOfDay(first.AddDate(0, 0, 6))
	return first, last
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Days lists every calendar day in [from, to], each at 00:00.
func Days(from, to time.Time) []time.Time {
	var days []time.Time
	for d := StartOfDay(from); !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
