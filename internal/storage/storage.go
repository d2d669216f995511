package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Tiliavir/focuslog/internal/config"
	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/logging"
	"github.com/Tiliavir/focuslog/internal/logtable"
	"github.com/Tiliavir/focuslog/internal/model"
	"github.com/Tiliavir/focuslog/internal/vault"
)

// Diary reads and writes the per-day markdown logs inside a vault.
type Diary struct {
	store      vault.Store
	codec      logtable.Codec
	diaryPath  string
	dateLayout string
	log        *logrus.Entry
}

// New returns a Diary over store laid out according to s.
func New(store vault.Store, s config.Settings) *Diary {
	return &Diary{
		store:      store,
		codec:      logtable.New(s.RecordHeading),
		diaryPath:  s.DiaryPath,
		dateLayout: s.DateLayout(),
		log:        logging.NewLogger("storage"),
	}
}

// DayFilePath returns <diaryPath>/<yyyy>/<mm>/<date>.md for t, with forward
// slashes whatever separators diaryPath was written with.
func DayFilePath(diaryPath, dateLayout string, t time.Time) string {
	return vault.NormalizePath(path.Join(
		vault.NormalizePath(diaryPath),
		t.Format("2006"),
		t.Format("01"),
		t.Format(dateLayout)+".md",
	))
}

// Path returns the vault path of the log for t.
func (d *Diary) Path(t time.Time) string {
	return DayFilePath(d.diaryPath, d.dateLayout, t)
}

// LoadDay loads the log for the given date. A missing file is an empty day.
func (d *Diary) LoadDay(t time.Time) (model.DayLog, error) {
	p := d.Path(t)
	day := model.DayLog{Date: t.Format("2006-01-02"), Path: p, Entries: []model.Entry{}}

	content, err := d.read(p)
	if err != nil {
		return day, err
	}
	if entries := d.codec.Parse(content); entries != nil {
		day.Entries = entries
	}
	return day, nil
}

// Record appends e to the log for t, creating the folders and file when
// needed. It reports false when the session was already recorded.
func (d *Diary) Record(t time.Time, e model.Entry) (bool, error) {
	p := d.Path(t)
	if err := vault.EnsureDir(d.store, path.Dir(p)); err != nil {
		return false, err
	}

	content, err := d.read(p)
	if err != nil {
		return false, err
	}
	updated, added := d.codec.Append(content, e)
	if !added {
		d.log.WithFields(logrus.Fields{"path": p, "start": e.StartTime, "tag": e.Tag}).Debug("session already recorded")
		return false, nil
	}
	if err := d.store.Write(p, updated); err != nil {
		return false, apperr.FileSystem("write", p, err)
	}
	d.log.WithFields(logrus.Fields{"path": p, "start": e.StartTime, "end": e.EndTime, "tag": e.Tag}).Info("session recorded")
	return true, nil
}

// UpdateNotes replaces the notes of the session keyed by start, end and tag
// in the log for t.
func (d *Diary) UpdateNotes(t time.Time, start, end, tag, notes string) error {
	p := d.Path(t)
	if !d.store.Exists(p) {
		return apperr.NotFound(fmt.Sprintf("log file %s", p))
	}
	content, err := d.read(p)
	if err != nil {
		return err
	}
	updated, err := d.codec.UpdateNotes(content, start, end, tag, notes)
	if err != nil {
		return err
	}
	if err := d.store.Write(p, updated); err != nil {
		return apperr.FileSystem("write", p, err)
	}
	return nil
}

// LoadRange loads every day in [from, to] inclusive.
func (d *Diary) LoadRange(from, to time.Time) ([]model.DayLog, error) {
	var days []model.DayLog
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		dl, err := d.LoadDay(day)
		if err != nil {
			return nil, err
		}
		days = append(days, dl)
	}
	return days, nil
}

// read returns the content at p, or "" when the file does not exist.
func (d *Diary) read(p string) (string, error) {
	content, err := d.store.Read(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", apperr.FileSystem("read", p, err)
	}
	return content, nil
}
