package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
)

func decode(t *testing.T, doc string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(doc), &raw))
	return raw
}

func TestMergeEmptyUsesDefaults(t *testing.T) {
	s, warnings := Merge(map[string]any{})
	assert.Empty(t, warnings)
	assert.Equal(t, Default(), s)
}

func TestMergeValidValues(t *testing.T) {
	s, warnings := Merge(decode(t, `
workMinutes: 50
breakMinutes: 10.0
tags: [deep work, email, deep work]
tagColors:
  deep work: "#123456"
diaryPath: 'Journal\Pomodoro/'
dateFormat: YYYY/MM/DD
recordHeading: Focus log
weekStart: Sunday
vaultPath: ~/notes
`))
	assert.Empty(t, warnings)
	assert.Equal(t, 50, s.WorkMinutes)
	assert.Equal(t, 10, s.BreakMinutes)
	assert.Equal(t, []string{"deep work", "email"}, s.Tags)
	assert.Equal(t, "#123456", s.TagColor("deep work"))
	assert.Equal(t, Default().TagColors[DefaultColorKey], s.TagColor("email"))
	assert.Equal(t, "Journal/Pomodoro", s.DiaryPath)
	assert.Equal(t, "2006/01/02", s.DateLayout())
	assert.Equal(t, "Focus log", s.RecordHeading)
	assert.Equal(t, time.Sunday, s.WeekStartDay())
	assert.Equal(t, "~/notes", s.VaultPath)
}

func TestMergeInvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		doc   string
		check func(t *testing.T, s Settings)
	}{
		{"minutes as text", "workMinutes: lots", func(t *testing.T, s Settings) {
			assert.Equal(t, DefaultWorkMinutes, s.WorkMinutes)
		}},
		{"minutes below one are clamped", "breakMinutes: 0", func(t *testing.T, s Settings) {
			assert.Equal(t, 1, s.BreakMinutes)
		}},
		{"fractional minutes", "workMinutes: 2.5", func(t *testing.T, s Settings) {
			assert.Equal(t, DefaultWorkMinutes, s.WorkMinutes)
		}},
		{"tags not a list", "tags: work", func(t *testing.T, s Settings) {
			assert.Equal(t, Default().Tags, s.Tags)
		}},
		{"tags with junk", "tags: [1, work, '']", func(t *testing.T, s Settings) {
			assert.Equal(t, []string{"work"}, s.Tags)
		}},
		{"colors not a map", "tagColors: red", func(t *testing.T, s Settings) {
			assert.Equal(t, Default().TagColors, s.TagColors)
		}},
		{"colors without default", "tagColors: {work: 3}", func(t *testing.T, s Settings) {
			assert.Equal(t, map[string]string{DefaultColorKey: "#874BFD"}, s.TagColors)
		}},
		{"diary path not text", "diaryPath: [a]", func(t *testing.T, s Settings) {
			assert.Equal(t, DefaultDiaryPath, s.DiaryPath)
		}},
		{"unknown date format", "dateFormat: DD.MM.YYYY", func(t *testing.T, s Settings) {
			assert.Equal(t, DefaultDateFormat, s.DateFormat)
		}},
		{"empty heading", "recordHeading: ''", func(t *testing.T, s Settings) {
			assert.Equal(t, DefaultRecordHeading, s.RecordHeading)
		}},
		{"unknown week start", "weekStart: friday", func(t *testing.T, s Settings) {
			assert.Equal(t, time.Monday, s.WeekStartDay())
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, warnings := Merge(decode(t, tc.doc))
			assert.NotEmpty(t, warnings)
			tc.check(t, s)
		})
	}
}

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "focuslog", "settings.yml")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# focuslog settings"))

	// The template itself must load back to the defaults.
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), again)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")

	s := Default()
	require.NoError(t, s.Set("workMinutes", "45"))
	require.NoError(t, s.AddTag("写作", "#FFFFFF"))
	require.NoError(t, Save(path, s))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestLoadCorruptYAMLFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte("workMinutes: [unclosed"), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
}

func TestSet(t *testing.T) {
	s := Default()

	require.NoError(t, s.Set("breakMinutes", "7"))
	assert.Equal(t, 7, s.BreakMinutes)

	require.NoError(t, s.Set("tags", "a, b ,a,"))
	assert.Equal(t, []string{"a", "b"}, s.Tags)

	require.NoError(t, s.Set("weekStart", "SUNDAY"))
	assert.Equal(t, "sunday", s.WeekStart)

	for _, bad := range [][2]string{
		{"workMinutes", "0"},
		{"workMinutes", "x"},
		{"tags", " , "},
		{"dateFormat", "MM/DD"},
		{"recordHeading", ""},
		{"weekStart", "tuesday"},
		{"colour", "red"},
	} {
		err := s.Set(bad[0], bad[1])
		assert.True(t, apperr.Is(err, apperr.ErrCodeInvalidSettings), "Set(%q, %q)", bad[0], bad[1])
	}
}

func TestRemoveTag(t *testing.T) {
	s := Default()
	require.NoError(t, s.RemoveTag("学习"))
	assert.Equal(t, []string{"工作", "阅读"}, s.Tags)
	_, hasColor := s.TagColors["学习"]
	assert.False(t, hasColor)

	assert.True(t, apperr.Is(s.RemoveTag("missing"), apperr.ErrCodeNotFound))

	require.NoError(t, s.RemoveTag("工作"))
	assert.True(t, apperr.Is(s.RemoveTag("阅读"), apperr.ErrCodeInvalidSettings))
}
