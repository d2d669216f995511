// Package logtable reads and edits the session table embedded in a day's
// markdown log.
//
// Grammar, after the record heading:
//
//	## <heading>
//	<zero or more blank lines>
//	| header row |
//	| separator row |
//	| data row |            zero or more, newest first
//	<first line not starting with "|" ends the table>
//
// A data row has at least five cells: start, end, tag, notes, duration.
package logtable

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/timecalc"
)

const (
	// DefaultHeading is the record heading used when settings name none.
	DefaultHeading = "番茄钟记录"

	HeaderRow    = "| 开始时间 | 结束时间 | 标签 | 备注 | 时长 |"
	SeparatorRow = "|----------|----------|------|------|------|"

	// AutoNotes is written into rows recorded when a focus session completes.
	AutoNotes = "自动记录的完整番茄钟"

	minCells = 5
)

var durationPattern = regexp.MustCompile(`(?i)^(\d+)\s*(?:分钟|minutes?|mins?)$`)

// Codec operates on the table under one record heading.
type Codec struct {
	Heading string
}

// New returns a Codec for heading, falling back to DefaultHeading.
func New(heading string) Codec {
	heading = strings.TrimSpace(heading)
	if heading == "" {
		heading = DefaultHeading
	}
	return Codec{Heading: heading}
}

// layout records where the table parts sit within a document's lines.
// Indexes are -1 when the part is absent.
type layout struct {
	heading   int
	header    int
	separator int
	rowsStart int
	rowsEnd   int // exclusive
}

func isTableLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

func (c Codec) isHeading(line string) bool {
	t := strings.TrimSpace(line)
	if !strings.HasPrefix(t, "## ") {
		return false
	}
	return strings.TrimSpace(t[3:]) == c.Heading
}

func (c Codec) locate(lines []string) layout {
	l := layout{heading: -1, header: -1, separator: -1, rowsStart: -1, rowsEnd: -1}
	for i, line := range lines {
		if c.isHeading(line) {
			l.heading = i
			break
		}
	}
	if l.heading < 0 {
		return l
	}

	j := l.heading + 1
	for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
		j++
	}
	if j+1 >= len(lines) || !isTableLine(lines[j]) || !isTableLine(lines[j+1]) {
		return l
	}
	l.header = j
	l.separator = j + 1
	l.rowsStart = j + 2
	l.rowsEnd = l.rowsStart
	for l.rowsEnd < len(lines) && isTableLine(lines[l.rowsEnd]) {
		l.rowsEnd++
	}
	return l
}

// splitRaw splits a table line into its cells without trimming them. The
// outer pipes are dropped and escaped pipes (\|) stay inside their cell.
func splitRaw(line string) (lead string, cells []string, closed bool) {
	idx := strings.Index(line, "|")
	lead = line[:idx]
	body := strings.TrimRight(line[idx+1:], " \t\r")
	if strings.HasSuffix(body, "|") && !strings.HasSuffix(body, `\|`) {
		body = body[:len(body)-1]
		closed = true
	}

	var cur strings.Builder
	for i := 0; i < len(body); i++ {
		switch {
		case body[i] == '\\' && i+1 < len(body) && body[i+1] == '|':
			cur.WriteString(`\|`)
			i++
		case body[i] == '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(body[i])
		}
	}
	cells = append(cells, cur.String())
	return lead, cells, closed
}

func cellValue(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `\|`, "|")
}

func escapeCell(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
}

// parseRow decodes a data row; ok is false for lines that are not entries.
func parseRow(line string) (model.Entry, bool) {
	_, raw, _ := splitRaw(line)
	if len(raw) < minCells {
		return model.Entry{}, false
	}
	cells := make([]string, len(raw))
	for i, r := range raw {
		cells[i] = cellValue(r)
	}
	if cells[0] == "" || cells[1] == "" {
		return model.Entry{}, false
	}

	e := model.Entry{
		StartTime: cells[0],
		EndTime:   cells[1],
		Tag:       cells[2],
		Notes:     cells[3],
	}
	e.DurationMinutes = -1
	for _, cell := range cells[minCells-1:] {
		if m := durationPattern.FindStringSubmatch(cell); m != nil {
			e.DurationMinutes, _ = strconv.Atoi(m[1])
			break
		}
	}
	if e.DurationMinutes < 0 {
		minutes, err := timecalc.MinutesBetween(e.StartTime, e.EndTime)
		if err != nil {
			minutes = 0
		}
		e.DurationMinutes = minutes
	}
	return e, true
}

// FormatDuration renders minutes the way the duration column stores them.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d分钟", minutes)
}

// FormatRow renders e as a data row.
func FormatRow(e model.Entry) string {
	return fmt.Sprintf("| %s | %s | %s | %s | %s |",
		escapeCell(e.StartTime),
		escapeCell(e.EndTime),
		escapeCell(e.Tag),
		escapeCell(e.Notes),
		FormatDuration(e.DurationMinutes),
	)
}

// Parse returns the entries of the table under the heading, in file order.
// A missing heading or table yields no entries.
func (c Codec) Parse(content string) []model.Entry {
	lines := strings.Split(content, "\n")
	l := c.locate(lines)
	if l.header < 0 {
		return nil
	}
	var entries []model.Entry
	for _, line := range lines[l.rowsStart:l.rowsEnd] {
		if e, ok := parseRow(line); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// Append inserts e as the first data row and returns the new content. When a
// row with the same start, end and tag exists the content is returned
// unchanged and added is false. The heading and table are created if absent.
func (c Codec) Append(content string, e model.Entry) (updated string, added bool) {
	lines := strings.Split(content, "\n")
	l := c.locate(lines)
	row := FormatRow(e)

	switch {
	case l.heading < 0:
		var b strings.Builder
		b.WriteString(content)
		if content != "" {
			if !strings.HasSuffix(content, "\n") {
				b.WriteString("\n")
			}
			if !strings.HasSuffix(content, "\n\n") {
				b.WriteString("\n")
			}
		}
		fmt.Fprintf(&b, "## %s\n\n%s\n%s\n%s\n", c.Heading, HeaderRow, SeparatorRow, row)
		return b.String(), true

	case l.header < 0:
		block := []string{"", HeaderRow, SeparatorRow, row}
		next := l.heading + 1
		if next < len(lines) && strings.TrimSpace(lines[next]) != "" {
			block = append(block, "")
		}
		return strings.Join(insert(lines, next, block...), "\n"), true
	}

	for _, line := range lines[l.rowsStart:l.rowsEnd] {
		if existing, ok := parseRow(line); ok && existing.SameSession(e) {
			return content, false
		}
	}
	return strings.Join(insert(lines, l.separator+1, row), "\n"), true
}

// UpdateNotes rewrites the notes cell of the row keyed by start, end and tag.
// Every other cell is kept byte for byte. It returns a NOT_FOUND error and
// the original content when no row matches.
func (c Codec) UpdateNotes(content, start, end, tag, notes string) (string, error) {
	lines := strings.Split(content, "\n")
	l := c.locate(lines)
	key := model.Entry{StartTime: start, EndTime: end, Tag: tag}

	if l.header >= 0 {
		for i := l.rowsStart; i < l.rowsEnd; i++ {
			existing, ok := parseRow(lines[i])
			if !ok || !existing.SameSession(key) {
				continue
			}
			lead, raw, closed := splitRaw(lines[i])
			raw[3] = " " + escapeCell(notes) + " "
			rebuilt := lead + "|" + strings.Join(raw, "|")
			if closed {
				rebuilt += "|"
			}
			lines[i] = rebuilt
			return strings.Join(lines, "\n"), nil
		}
	}

	return content, apperr.NotFound(fmt.Sprintf("log row %s-%s [%s]", start, end, tag)).
		WithDetail("start", start).
		WithDetail("end", end).
		WithDetail("tag", tag)
}

func insert(lines []string, at int, items ...string) []string {
	out := make([]string, 0, len(lines)+len(items))
	out = append(out, lines[:at]...)
	out = append(out, items...)
	return append(out, lines[at:]...)
}
