package timer_test

import (
	"os"
	"testing"
)

// TestMain keeps component log files out of the home directory.
func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "focuslog-logs")
	if err != nil {
		panic(err)
	}
	os.Setenv("FOCUSLOG_LOG_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}
