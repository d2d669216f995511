package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
)

// Merge builds Settings from a decoded settings document. Loaded values are
// never trusted: each one is type-checked and validated, and anything
// unusable is replaced by its default. The returned warnings describe every
// substitution.
func Merge(raw map[string]any) (Settings, []string) {
	s := Default()
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if v, ok := raw["workMinutes"]; ok {
		s.WorkMinutes = minutesValue("workMinutes", v, DefaultWorkMinutes, warn)
	}
	if v, ok := raw["breakMinutes"]; ok {
		s.BreakMinutes = minutesValue("breakMinutes", v, DefaultBreakMinutes, warn)
	}

	if v, ok := raw["tags"]; ok {
		list, isList := v.([]any)
		if !isList {
			warn("tags: expected a list, got %T; using defaults", v)
		} else {
			var tags []string
			for _, item := range list {
				str, isStr := item.(string)
				if !isStr {
					warn("tags: ignoring non-text entry %v", item)
					continue
				}
				tags = appendTag(tags, str)
			}
			if len(tags) == 0 {
				warn("tags: list is empty; using defaults")
			} else {
				s.Tags = tags
			}
		}
	}

	if v, ok := raw["tagColors"]; ok {
		colors, valid := stringMap(v)
		if !valid {
			warn("tagColors: expected a mapping, got %T; using defaults", v)
		} else {
			s.TagColors = map[string]string{}
			for tag, c := range colors {
				str, isStr := c.(string)
				if !isStr || strings.TrimSpace(str) == "" {
					warn("tagColors.%s: expected a color string, got %v", tag, c)
					continue
				}
				s.TagColors[tag] = strings.TrimSpace(str)
			}
		}
	}
	if _, ok := s.TagColors[DefaultColorKey]; !ok {
		s.TagColors[DefaultColorKey] = Default().TagColors[DefaultColorKey]
	}

	if v, ok := raw["diaryPath"]; ok {
		if str, isStr := v.(string); isStr {
			s.DiaryPath = normalizeDir(str)
		} else {
			warn("diaryPath: expected text, got %T; using %q", v, DefaultDiaryPath)
		}
	}

	if v, ok := raw["dateFormat"]; ok {
		str, _ := v.(string)
		if _, known := dateLayouts[str]; known {
			s.DateFormat = str
		} else {
			warn("dateFormat: unsupported value %v; using %s", v, DefaultDateFormat)
		}
	}

	if v, ok := raw["recordHeading"]; ok {
		str, _ := v.(string)
		if strings.TrimSpace(str) != "" {
			s.RecordHeading = strings.TrimSpace(str)
		} else {
			warn("recordHeading: expected non-empty text, got %v; using %q", v, DefaultRecordHeading)
		}
	}

	if v, ok := raw["weekStart"]; ok {
		str, _ := v.(string)
		if _, known := weekStarts[strings.ToLower(str)]; known {
			s.WeekStart = strings.ToLower(str)
		} else {
			warn("weekStart: unsupported value %v; using %s", v, DefaultWeekStart)
		}
	}

	if v, ok := raw["vaultPath"]; ok && v != nil {
		if str, isStr := v.(string); isStr {
			s.VaultPath = strings.TrimSpace(str)
		} else {
			warn("vaultPath: expected text, got %T; using the working directory", v)
		}
	}

	return s, warnings
}

func minutesValue(key string, v any, def int, warn func(string, ...any)) int {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case float64:
		if x != math.Trunc(x) {
			warn("%s: %v is not a whole number; using %d", key, x, def)
			return def
		}
		n = int(x)
	default:
		warn("%s: expected a number, got %T; using %d", key, v, def)
		return def
	}
	if n < 1 {
		warn("%s: %d is below 1; clamped to 1", key, n)
		return 1
	}
	return n
}

func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func appendTag(tags []string, tag string) []string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tags
	}
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

func normalizeDir(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	return strings.Trim(p, "/")
}

// Keys lists the settings that Set accepts.
var Keys = []string{
	"workMinutes", "breakMinutes", "tags", "diaryPath", "dateFormat",
	"recordHeading", "weekStart", "vaultPath",
}

// Set parses value for key and applies it to s. Unlike Merge it rejects
// invalid input instead of substituting a default.
func (s *Settings) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "workMinutes", "breakMinutes":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return apperr.InvalidSettings(key, "expected a whole number of minutes, at least 1")
		}
		if key == "workMinutes" {
			s.WorkMinutes = n
		} else {
			s.BreakMinutes = n
		}
	case "tags":
		var tags []string
		for _, t := range strings.Split(value, ",") {
			tags = appendTag(tags, t)
		}
		if len(tags) == 0 {
			return apperr.InvalidSettings(key, "at least one tag is required")
		}
		s.Tags = tags
	case "diaryPath":
		s.DiaryPath = normalizeDir(value)
	case "dateFormat":
		if _, ok := dateLayouts[value]; !ok {
			return apperr.InvalidSettings(key, "expected YYYY-MM-DD or YYYY/MM/DD")
		}
		s.DateFormat = value
	case "recordHeading":
		if value == "" {
			return apperr.InvalidSettings(key, "heading cannot be empty")
		}
		s.RecordHeading = value
	case "weekStart":
		v := strings.ToLower(value)
		if _, ok := weekStarts[v]; !ok {
			return apperr.InvalidSettings(key, "expected monday or sunday")
		}
		s.WeekStart = v
	case "vaultPath":
		s.VaultPath = value
	default:
		return apperr.InvalidSettings(key, "unknown setting")
	}
	return nil
}

// AddTag appends tag to the tag list and, when color is non-empty, sets its color.
func (s *Settings) AddTag(tag, color string) error {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return apperr.InvalidSettings("tags", "tag cannot be empty")
	}
	s.Tags = appendTag(s.Tags, tag)
	if color = strings.TrimSpace(color); color != "" {
		if s.TagColors == nil {
			s.TagColors = map[string]string{}
		}
		s.TagColors[tag] = color
	}
	return nil
}

// RemoveTag drops tag and its color. The last tag cannot be removed.
func (s *Settings) RemoveTag(tag string) error {
	if !s.HasTag(tag) {
		return apperr.NotFound(fmt.Sprintf("tag %q", tag))
	}
	if len(s.Tags) == 1 {
		return apperr.InvalidSettings("tags", "at least one tag is required")
	}
	kept := s.Tags[:0:0]
	for _, t := range s.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.Tags = kept
	delete(s.TagColors, tag)
	return nil
}
