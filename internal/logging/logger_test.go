package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FOCUSLOG_LOG_DIR", dir)

	log := NewLogger("logdir-test")
	log.Info("hello")

	name := fmt.Sprintf("logdir-test-%s.log", time.Now().Format("2006-01-02"))
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "component=logdir-test")
}

func TestLogDirDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("FOCUSLOG_LOG_DIR", "")

	dir, err := logDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".focuslog", "logs"), dir)
}

func TestNewLoggerIsCached(t *testing.T) {
	t.Setenv("FOCUSLOG_LOG_DIR", t.TempDir())
	assert.Same(t, NewLogger("cache-test"), NewLogger("cache-test"))
}
