package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logging"
)

// Settings holds every user-configurable value. It is stored in
// ~/.focuslog/settings.yml.
type Settings struct {
	WorkMinutes   int               `yaml:"workMinutes"`
	BreakMinutes  int               `yaml:"breakMinutes"`
	Tags          []string          `yaml:"tags"`
	TagColors     map[string]string `yaml:"tagColors"`
	DiaryPath     string            `yaml:"diaryPath"`
	DateFormat    string            `yaml:"dateFormat"`
	RecordHeading string            `yaml:"recordHeading"`
	WeekStart     string            `yaml:"weekStart"`
	// VaultPath is the root of the document store; empty means the working directory.
	VaultPath string `yaml:"vaultPath"`
}

const (
	DefaultWorkMinutes   = 25
	DefaultBreakMinutes  = 5
	DefaultDiaryPath     = "diary"
	DefaultDateFormat    = "YYYY-MM-DD"
	DefaultRecordHeading = "番茄钟记录"
	DefaultWeekStart     = "monday"

	// DefaultColorKey is the tagColors entry used for tags without a color.
	DefaultColorKey = "default"
)

// dateLayouts maps the supported date formats to Go layouts.
var dateLayouts = map[string]string{
	"YYYY-MM-DD": "2006-01-02",
	"YYYY/MM/DD": "2006/01/02",
}

var weekStarts = map[string]time.Weekday{
	"monday": time.Monday,
	"sunday": time.Sunday,
}

// Default returns a Settings pre-filled with the built-in defaults.
func Default() Settings {
	return Settings{
		WorkMinutes:  DefaultWorkMinutes,
		BreakMinutes: DefaultBreakMinutes,
		Tags:         []string{"工作", "学习", "阅读"},
		TagColors: map[string]string{
			"工作":            "#FF6B6B",
			"学习":            "#4A90E2",
			"阅读":            "#04B575",
			DefaultColorKey: "#874BFD",
		},
		DiaryPath:     DefaultDiaryPath,
		DateFormat:    DefaultDateFormat,
		RecordHeading: DefaultRecordHeading,
		WeekStart:     DefaultWeekStart,
	}
}

// DateLayout returns the Go time layout for the configured date format.
func (s Settings) DateLayout() string {
	if layout, ok := dateLayouts[s.DateFormat]; ok {
		return layout
	}
	return dateLayouts[DefaultDateFormat]
}

// WeekStartDay returns the first day of a statistics week.
func (s Settings) WeekStartDay() time.Weekday {
	if d, ok := weekStarts[s.WeekStart]; ok {
		return d
	}
	return time.Monday
}

// TagColor returns the color for tag, or the default color.
func (s Settings) TagColor(tag string) string {
	if c, ok := s.TagColors[tag]; ok && c != "" {
		return c
	}
	return s.TagColors[DefaultColorKey]
}

// WorkSeconds and BreakSeconds are the countdown lengths for each mode.
func (s Settings) WorkSeconds() int  { return s.WorkMinutes * 60 }
func (s Settings) BreakSeconds() int { return s.BreakMinutes * 60 }

// HasTag reports whether tag is in the configured tag list.
func (s Settings) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// VaultDir resolves VaultPath, expanding a leading ~.
func (s Settings) VaultDir() (string, error) {
	p := s.VaultPath
	if p == "" {
		return os.Getwd()
	}
	if strings.HasPrefix(p, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	return p, nil
}

const settingsTemplate = `# focuslog settings – ~/.focuslog/settings.yml
#
# Invalid values are replaced by their defaults when the file is loaded.

# Length of a focus session and of a break, in minutes (at least 1).
workMinutes: 25
breakMinutes: 5

# Tags offered when starting a focus session, in display order.
tags:
  - 工作
  - 学习
  - 阅读

# Chart colors per tag. "default" is used for tags not listed here.
tagColors:
  工作: "#FF6B6B"
  学习: "#4A90E2"
  阅读: "#04B575"
  default: "#874BFD"

# Folder inside the vault holding the day logs:
#   <diaryPath>/<year>/<month>/<date>.md
diaryPath: diary

# Date format of log file names: YYYY-MM-DD or YYYY/MM/DD.
dateFormat: YYYY-MM-DD

# Heading above the session table in each day log.
recordHeading: 番茄钟记录

# First day of a statistics week: monday or sunday.
weekStart: monday

# Root folder of the note vault. Empty means the current directory.
vaultPath: ""
`

// DefaultPath returns ~/.focuslog/settings.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".focuslog", "settings.yml"), nil
}

// Load reads the settings file at path (DefaultPath when empty), writing the
// annotated template on first run. Each field is validated on its own; bad
// values fall back to defaults with a logged warning.
func Load(path string) (Settings, error) {
	log := logging.NewLogger("config")

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeFile(path, []byte(settingsTemplate)); writeErr != nil {
			log.WithError(writeErr).Warnf("could not create settings file %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("reading settings file %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.WithError(err).Warnf("settings file %s is not valid YAML, using defaults", path)
		return Default(), nil
	}

	s, warnings := Merge(raw)
	for _, w := range warnings {
		log.WithField("path", path).Warn(w)
	}
	return s, nil
}

// Save writes s to path (DefaultPath when empty).
func Save(path string, s Settings) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	var buf bytes.Buffer
	buf.WriteString("# focuslog settings – invalid values are replaced by their defaults on load.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInvalidSettings, "encoding settings")
	}
	if err := enc.Close(); err != nil {
		return apperr.Wrap(err, apperr.ErrCodeInvalidSettings, "encoding settings")
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}
