// Package stats reduces day logs into totals per hour, day and month.
// It only reads logs.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

// Period selects the span a Report covers.
type Period int

const (
	Day Period = iota
	Week
	Year
)

func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Year:
		return "year"
	default:
		return "day"
	}
}

// ParsePeriod accepts "day", "week" or "year".
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily", "today":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "year", "yearly":
		return Year, nil
	}
	return Day, fmt.Errorf("unknown period %q (want day, week or year)", s)
}

// Loader loads one day's log; a missing log is an empty day.
type Loader interface {
	LoadDay(t time.Time) (model.DayLog, error)
}

// Bucket is the total for one hour, day or month.
type Bucket struct {
	Label    string `json:"label"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// TagTotal is the time spent on one tag.
type TagTotal struct {
	Tag      string `json:"tag"`
	Minutes  int    `json:"minutes"`
	Sessions int    `json:"sessions"`
}

// Report is the reduced view of a period.
type Report struct {
	Period   Period
	From     time.Time
	To       time.Time
	Buckets  []Bucket
	ByTag    []TagTotal
	Total    int
	Sessions int
}

// Average returns the mean minutes over the buckets that have any time.
func (r Report) Average() float64 {
	return Average(r.Buckets)
}

// Average returns the mean minutes of the non-empty buckets, or 0.
func Average(buckets []Bucket) float64 {
	sum, n := 0, 0
	for _, b := range buckets {
		if b.Minutes == 0 {
			continue
		}
		sum += b.Minutes
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// Aggregator builds reports from day logs.
type Aggregator struct {
	loader    Loader
	weekStart time.Weekday
}

// New returns an Aggregator reading through l, with weeks starting on weekStart.
func New(l Loader, weekStart time.Weekday) *Aggregator {
	return &Aggregator{loader: l, weekStart: weekStart}
}

// Report builds the report for the period containing day.
func (a *Aggregator) Report(p Period, day time.Time) (Report, error) {
	switch p {
	case Week:
		return a.Weekly(day)
	case Year:
		return a.Yearly(day)
	default:
		return a.Daily(day)
	}
}

// Daily buckets the sessions of day by the hour they started in.
func (a *Aggregator) Daily(day time.Time) (Report, error) {
	r := Report{Period: Day, From: timecalc.StartOfDay(day), To: timecalc.EndOfDay(day)}
	r.Buckets = make([]Bucket, 24)
	for h := range r.Buckets {
		r.Buckets[h].Label = fmt.Sprintf("%02d", h)
	}

	dl, err := a.loader.LoadDay(day)
	if err != nil {
		return r, err
	}
	tags := newTagCounter()
	for _, e := range dl.Entries {
		secs, err := timecalc.ParseClock(e.StartTime)
		if err != nil {
			continue
		}
		b := &r.Buckets[secs/3600]
		b.Minutes += e.DurationMinutes
		b.Sessions++
		tags.add(e)
	}
	r.finish(tags)
	return r, nil
}

// Weekly buckets the seven days of the week containing day.
func (a *Aggregator) Weekly(day time.Time) (Report, error) {
	from, to := timecalc.WeekRange(day, a.weekStart)
	r := Report{Period: Week, From: from, To: to}

	tags := newTagCounter()
	for _, d := range timecalc.Days(from, to) {
		dl, err := a.loader.LoadDay(d)
		if err != nil {
			return r, err
		}
		b := Bucket{Label: d.Format("Mon 01-02")}
		for _, e := range dl.Entries {
			b.Minutes += e.DurationMinutes
			b.Sessions++
			tags.add(e)
		}
		r.Buckets = append(r.Buckets, b)
	}
	r.finish(tags)
	return r, nil
}

// Yearly buckets every day of day's year by calendar month.
func (a *Aggregator) Yearly(day time.Time) (Report, error) {
	from := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location())
	to := timecalc.EndOfDay(time.Date(day.Year(), time.December, 31, 0, 0, 0, 0, day.Location()))
	r := Report{Period: Year, From: from, To: to}
	r.Buckets = make([]Bucket, 12)
	for m := range r.Buckets {
		r.Buckets[m].Label = time.Month(m + 1).String()[:3]
	}

	tags := newTagCounter()
	for _, d := range timecalc.Days(from, to) {
		dl, err := a.loader.LoadDay(d)
		if err != nil {
			return r, err
		}
		b := &r.Buckets[d.Month()-1]
		for _, e := range dl.Entries {
			b.Minutes += e.DurationMinutes
			b.Sessions++
			tags.add(e)
		}
	}
	r.finish(tags)
	return r, nil
}

func (r *Report) finish(tags *tagCounter) {
	for _, b := range r.Buckets {
		r.Total += b.Minutes
		r.Sessions += b.Sessions
	}
	r.ByTag = tags.totals()
}

type tagCounter struct {
	order []string
	byTag map[string]*TagTotal
}

func newTagCounter() *tagCounter {
	return &tagCounter{byTag: map[string]*TagTotal{}}
}

func (c *tagCounter) add(e model.Entry) {
	t, ok := c.byTag[e.Tag]
	if !ok {
		t = &TagTotal{Tag: e.Tag}
		c.byTag[e.Tag] = t
		c.order = append(c.order, e.Tag)
	}
	t.Minutes += e.DurationMinutes
	t.Sessions++
}

// totals returns tag totals, largest first and by name on ties.
func (c *tagCounter) totals() []TagTotal {
	out := make([]TagTotal, 0, len(c.order))
	for _, tag := range c.order {
		out = append(out, *c.byTag[tag])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
