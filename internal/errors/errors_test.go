package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrCodeNotFound, "row not found")
	assert.Equal(t, "NOT_FOUND: row not found", err.Error())

	cause := stderrors.New("disk full")
	wrapped := Wrap(cause, ErrCodeFileSystem, "write failed")
	assert.Equal(t, "FILESYSTEM: write failed (caused by: disk full)", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("recording entry: %w", NotDirectory("diary/2026"))

	assert.True(t, Is(err, ErrCodeNotDirectory))
	assert.False(t, Is(err, ErrCodeNotFound))
	assert.Equal(t, ErrCodeNotDirectory, GetCode(err))
	assert.Equal(t, ErrorCode(""), GetCode(stderrors.New("plain")))
	assert.False(t, Is(nil, ErrCodeNotFound))
}

func TestConstructorsDetails(t *testing.T) {
	err := FileSystem("write", "diary/a.md", stderrors.New("denied"))
	assert.Equal(t, "write", err.Details["op"])
	assert.Equal(t, "diary/a.md", err.Details["path"])

	assert.Equal(t, "workMinutes", InvalidSettings("workMinutes", "not a number").Details["key"])
	assert.Equal(t, ErrCodeTagRequired, TagRequired().Code)
}
