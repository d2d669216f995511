package model

// Entry is one completed focus session, stored as a row of a day's log table.
// Times are local wall-clock strings in HH:MM:SS form.
type Entry struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Tag             string `json:"tag"`
	Notes           string `json:"notes"`
	DurationMinutes int    `json:"duration_minutes"`
}

// SameSession reports whether e and o describe the same session. Rows are
// keyed by start, end and tag; notes and duration do not take part.
func (e Entry) SameSession(o Entry) bool {
	return e.StartTime == o.StartTime && e.EndTime == o.EndTime && e.Tag == o.Tag
}

// DayLog is the parsed content of one day's log file.
type DayLog struct {
	Date    string  `json:"date"`
	Path    string  `json:"path"`
	Entries []Entry `json:"entries"`
}
