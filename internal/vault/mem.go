package vault

import (
	"fmt"
	"io/fs"
	"path"
	"sync"
)

// MemStore is an in-memory Store. Like a real file system it refuses to write
// into or create under a folder that does not exist.
type MemStore struct {
	mu    sync.Mutex
	files map[string]string
	dirs  map[string]bool
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		files: make(map[string]string),
		dirs:  map[string]bool{"": true},
	}
}

func parent(p string) string {
	dir := path.Dir(p)
	if dir == "." {
		return ""
	}
	return dir
}

func (m *MemStore) Read(p string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = NormalizePath(p)
	content, ok := m.files[p]
	if !ok {
		return "", &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	return content, nil
}

func (m *MemStore) Write(p, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = NormalizePath(p)
	if m.dirs[p] {
		return fmt.Errorf("write %s: is a folder", p)
	}
	if !m.dirs[parent(p)] {
		return &fs.PathError{Op: "write", Path: p, Err: fs.ErrNotExist}
	}
	m.files[p] = content
	return nil
}

func (m *MemStore) Exists(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = NormalizePath(p)
	_, isFile := m.files[p]
	return isFile || m.dirs[p]
}

func (m *MemStore) IsDir(p string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dirs[NormalizePath(p)]
}

func (m *MemStore) CreateFolder(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = NormalizePath(p)
	if _, isFile := m.files[p]; isFile || m.dirs[p] {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrExist}
	}
	if !m.dirs[parent(p)] {
		return &fs.PathError{Op: "mkdir", Path: p, Err: fs.ErrNotExist}
	}
	m.dirs[p] = true
	return nil
}

// Files returns a snapshot of every file path and its content.
func (m *MemStore) Files() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.files))
	for k, v := range m.files {
		out[k] = v
	}
	return out
}
