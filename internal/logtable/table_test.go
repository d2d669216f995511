package logtable_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
)

var codec = logtable.New("")

const sampleDay = `# 2026-10-18

Morning notes.

## 番茄钟记录

| 开始时间 | 结束时间 | 标签 | 备注 | 时长 |
|----------|----------|------|------|------|
| 10:00:00 | 10:25:00 | 学习 | chapter 3 | 25分钟 |
| 09:00:00 | 09:25:00 | 工作 | 自动记录的完整番茄钟 | 25分钟 |

## Evening
Nothing else.
`

func entry(start, end, tag string) model.Entry {
	return model.Entry{StartTime: start, EndTime: end, Tag: tag, Notes: logtable.AutoNotes, DurationMinutes: 25}
}

func TestParse(t *testing.T) {
	entries := codec.Parse(sampleDay)
	require.Len(t, entries, 2)
	assert.Equal(t, model.Entry{StartTime: "10:00:00", EndTime: "10:25:00", Tag: "学习", Notes: "chapter 3", DurationMinutes: 25}, entries[0])
	assert.Equal(t, "工作", entries[1].Tag)
}

func TestParseMissingHeading(t *testing.T) {
	assert.Empty(t, codec.Parse("# just a diary\n\n| a | b | c | d | e |\n"))
	assert.Empty(t, codec.Parse(""))
}

func TestParseHeaderOnly(t *testing.T) {
	content := "## 番茄钟记录\n\n" + logtable.HeaderRow + "\n" + logtable.SeparatorRow + "\n"
	assert.Empty(t, codec.Parse(content))
}

func TestParseDurationFallback(t *testing.T) {
	content := strings.Join([]string{
		"## 番茄钟记录",
		logtable.HeaderRow,
		logtable.SeparatorRow,
		"| 23:50:00 | 00:15:00 | 工作 | late | ? |",
		"| 08:00:00 | 08:45:00 | 学习 | x | 45 minutes |",
		"| 07:00:00 | 07:10:00 | 学习 | short |",
		"not a row",
		"| 06:00:00 | 06:25:00 | 工作 | after the table | 25分钟 |",
	}, "\n")

	entries := codec.Parse(content)
	require.Len(t, entries, 2)
	assert.Equal(t, 25, entries[0].DurationMinutes, "end before start crosses midnight")
	assert.Equal(t, 45, entries[1].DurationMinutes)
}

func TestParseCustomHeading(t *testing.T) {
	c := logtable.New("Focus log")
	content, added := c.Append("", entry("09:00:00", "09:25:00", "work"))
	require.True(t, added)
	assert.True(t, strings.HasPrefix(content, "## Focus log\n"))
	assert.Len(t, c.Parse(content), 1)
	assert.Empty(t, codec.Parse(content))
}

func TestAppendRoundTrip(t *testing.T) {
	e := entry("09:00:00", "09:25:00", "工作")
	content, added := codec.Append("", e)
	require.True(t, added)

	want := "## 番茄钟记录\n\n" + logtable.HeaderRow + "\n" + logtable.SeparatorRow + "\n" +
		"| 09:00:00 | 09:25:00 | 工作 | 自动记录的完整番茄钟 | 25分钟 |\n"
	assert.Equal(t, want, content)
	assert.Equal(t, []model.Entry{e}, codec.Parse(content))
}

func TestAppendEmptyNotesRoundTrip(t *testing.T) {
	e := model.Entry{StartTime: "09:00:00", EndTime: "09:25:00", Tag: "工作", DurationMinutes: 25}
	content, _ := codec.Append("", e)
	assert.Equal(t, []model.Entry{e}, codec.Parse(content))
}

func TestAppendIsIdempotent(t *testing.T) {
	e := entry("09:00:00", "09:25:00", "工作")
	once, _ := codec.Append("", e)

	e.Notes = "different notes do not make a new session"
	twice, added := codec.Append(once, e)
	assert.False(t, added)
	assert.Equal(t, once, twice)
	assert.Len(t, codec.Parse(twice), 1)
}

func TestAppendPrependsAfterSeparator(t *testing.T) {
	content, _ := codec.Append("", entry("09:00:00", "09:25:00", "工作"))
	content, _ = codec.Append(content, entry("10:00:00", "10:25:00", "工作"))

	entries := codec.Parse(content)
	require.Len(t, entries, 2)
	assert.Equal(t, "10:00:00", entries[0].StartTime)
	assert.Equal(t, "09:00:00", entries[1].StartTime)
}

func TestAppendKeepsSurroundingText(t *testing.T) {
	content, added := codec.Append(sampleDay, entry("11:00:00", "11:25:00", "阅读"))
	require.True(t, added)

	assert.True(t, strings.HasPrefix(content, "# 2026-10-18\n\nMorning notes.\n"))
	assert.True(t, strings.HasSuffix(content, "## Evening\nNothing else.\n"))
	entries := codec.Parse(content)
	require.Len(t, entries, 3)
	assert.Equal(t, "11:00:00", entries[0].StartTime)
}

func TestAppendToExistingDocument(t *testing.T) {
	content, _ := codec.Append("# diary\nsome text", entry("09:00:00", "09:25:00", "工作"))
	assert.True(t, strings.HasPrefix(content, "# diary\nsome text\n\n## 番茄钟记录\n\n"))
	assert.Len(t, codec.Parse(content), 1)
}

func TestAppendUnderBareHeading(t *testing.T) {
	content, added := codec.Append("## 番茄钟记录\nfollowing paragraph\n", entry("09:00:00", "09:25:00", "工作"))
	require.True(t, added)
	assert.Len(t, codec.Parse(content), 1)
	assert.Contains(t, content, "| 09:00:00 | 09:25:00 | 工作 | 自动记录的完整番茄钟 | 25分钟 |\n\nfollowing paragraph\n")
}

func TestUpdateNotes(t *testing.T) {
	content, err := codec.UpdateNotes(sampleDay, "09:00:00", "09:25:00", "工作", "wrote the report")
	require.NoError(t, err)

	assert.Contains(t, content, "| 09:00:00 | 09:25:00 | 工作 | wrote the report | 25分钟 |")
	assert.Contains(t, content, "| 10:00:00 | 10:25:00 | 学习 | chapter 3 | 25分钟 |")
	assert.Equal(t, strings.Count(sampleDay, "\n"), strings.Count(content, "\n"))
}

func TestUpdateNotesPreservesOtherCells(t *testing.T) {
	content := "## 番茄钟记录\n" + logtable.HeaderRow + "\n" + logtable.SeparatorRow + "\n" +
		"|09:00:00|  09:25:00 |工作| old |25 分钟|\n"

	got, err := codec.UpdateNotes(content, "09:00:00", "09:25:00", "工作", "new")
	require.NoError(t, err)
	assert.Contains(t, got, "|09:00:00|  09:25:00 |工作| new |25 分钟|\n")
}

func TestUpdateNotesNotFound(t *testing.T) {
	got, err := codec.UpdateNotes(sampleDay, "09:00:00", "09:25:00", "学习", "x")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrCodeNotFound))
	assert.Equal(t, sampleDay, got)

	got, err = codec.UpdateNotes("no table here", "09:00:00", "09:25:00", "工作", "x")
	assert.Error(t, err)
	assert.Equal(t, "no table here", got)
}

func TestPipesInNotes(t *testing.T) {
	e := model.Entry{StartTime: "09:00:00", EndTime: "09:25:00", Tag: "工作", Notes: "a | b\nc", DurationMinutes: 25}
	content, _ := codec.Append("", e)
	assert.Contains(t, content, `| a \| b c |`)

	entries := codec.Parse(content)
	require.Len(t, entries, 1)
	assert.Equal(t, "a | b c", entries[0].Notes)

	content, err := codec.UpdateNotes(content, "09:00:00", "09:25:00", "工作", "x|y")
	require.NoError(t, err)
	assert.Equal(t, "x|y", codec.Parse(content)[0].Notes)
}
