package errors

import "fmt"

// NotFound reports a missing log row or file.
func NotFound(what string) *Error {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", what))
}

// FileSystem wraps a failed document store operation.
func FileSystem(op, path string, err error) *Error {
	return Wrap(err, ErrCodeFileSystem, fmt.Sprintf("%s %s failed", op, path)).
		WithDetail("op", op).
		WithDetail("path", path)
}

// NotDirectory reports a path segment that exists but is not a folder.
func NotDirectory(path string) *Error {
	return New(ErrCodeNotDirectory, fmt.Sprintf("%s exists and is not a folder", path)).
		WithDetail("path", path)
}

// TagRequired reports a focus session started without a tag.
func TagRequired() *Error {
	return New(ErrCodeTagRequired, "select a tag before starting a focus session")
}

// InvalidSettings reports a settings value that cannot be applied.
func InvalidSettings(key, reason string) *Error {
	return New(ErrCodeInvalidSettings, fmt.Sprintf("invalid value for %s: %s", key, reason)).
		WithDetail("key", key)
}

// InvalidInput reports a malformed user argument.
func InvalidInput(reason string) *Error {
	return New(ErrCodeInvalidInput, reason)
}
