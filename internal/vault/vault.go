// Package vault is the document store the diary lives in: a tree of markdown
// files addressed by forward-slash paths relative to the vault root.
package vault

import (
	"path"
	"strings"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
)

// Store is the narrow file API the timer and log writer depend on.
// Read on a missing file returns an error matching fs.ErrNotExist.
type Store interface {
	Read(p string) (string, error)
	Write(p, content string) error
	Exists(p string) bool
	IsDir(p string) bool
	CreateFolder(p string) error
}

// NormalizePath converts p to a clean vault-relative path using forward
// slashes, whatever separators the caller used.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// EnsureDir creates dir and every missing parent, one segment at a time.
// Existing folders are left alone; a segment that exists as a file is an error.
func EnsureDir(s Store, dir string) error {
	dir = NormalizePath(dir)
	if dir == "" {
		return nil
	}

	current := ""
	for _, seg := range strings.Split(dir, "/") {
		current = path.Join(current, seg)
		if s.Exists(current) {
			if !s.IsDir(current) {
				return apperr.NotDirectory(current)
			}
			continue
		}
		if err := s.CreateFolder(current); err != nil {
			return apperr.FileSystem("create folder", current, err)
		}
	}
	return nil
}
