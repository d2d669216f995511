package vault_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/Tiliavir/focuslog/internal/errors"
	"github.com/Tiliavir/focuslog/internal/vault"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"diary/2026/10/2026-10-18.md", "diary/2026/10/2026-10-18.md"},
		{`diary\2026\10\2026-10-18.md`, "diary/2026/10/2026-10-18.md"},
		{"/diary//2026/", "diary/2026"},
		{"./diary/./x.md", "diary/x.md"},
		{"", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		got := vault.NormalizePath(tt.in)
		if got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnsureDirCreatesEachSegment(t *testing.T) {
	s := vault.NewMemStore()

	require.NoError(t, vault.EnsureDir(s, "diary/2026/10"))
	assert.True(t, s.IsDir("diary"))
	assert.True(t, s.IsDir("diary/2026"))
	assert.True(t, s.IsDir("diary/2026/10"))

	// Idempotent.
	require.NoError(t, vault.EnsureDir(s, `diary\2026\10`))
}

func TestEnsureDirSegmentIsFile(t *testing.T) {
	s := vault.NewMemStore()
	require.NoError(t, s.CreateFolder("diary"))
	require.NoError(t, s.Write("diary/2026", "not a folder"))

	err := vault.EnsureDir(s, "diary/2026/10")
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.ErrCodeNotDirectory))
}

func TestMemStoreReadMissing(t *testing.T) {
	s := vault.NewMemStore()
	_, err := s.Read("nope.md")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	err = s.Write("missing/dir.md", "x")
	assert.Error(t, err)
}

func TestFSStore(t *testing.T) {
	root := t.TempDir()
	s := vault.NewFS(root)

	require.NoError(t, vault.EnsureDir(s, "diary/2026/10"))
	require.NoError(t, s.Write("diary/2026/10/2026-10-18.md", "hello"))

	data, err := os.ReadFile(filepath.Join(root, "diary", "2026", "10", "2026-10-18.md"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	got, err := s.Read(`diary\2026\10\2026-10-18.md`)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	assert.True(t, s.Exists("diary/2026/10/2026-10-18.md"))
	assert.False(t, s.IsDir("diary/2026/10/2026-10-18.md"))
	assert.True(t, s.IsDir("diary/2026"))

	_, err = s.Read("diary/2026/10/missing.md")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = s.Read("../outside.md")
	assert.Error(t, err)
}
