package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS is a Store backed by a directory on disk.
type FS struct {
	Root string
}

// NewFS returns a Store rooted at dir.
func NewFS(dir string) *FS {
	return &FS{Root: dir}
}

// abs maps a vault path onto disk. NormalizePath anchors the path at the
// root, so ".." can never climb out of the vault.
func (f *FS) abs(p string) string {
	return filepath.Join(f.Root, filepath.FromSlash(NormalizePath(p)))
}

func (f *FS) Read(p string) (string, error) {
	data, err := os.ReadFile(f.abs(p))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Write replaces the file atomically: write to a temp file, then rename.
func (f *FS) Write(p, content string) error {
	full := f.abs(p)
	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (f *FS) Exists(p string) bool {
	_, err := os.Stat(f.abs(p))
	return err == nil
}

func (f *FS) IsDir(p string) bool {
	info, err := os.Stat(f.abs(p))
	return err == nil && info.IsDir()
}

func (f *FS) CreateFolder(p string) error {
	return os.Mkdir(f.abs(p), 0o755)
}
