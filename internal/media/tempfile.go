package media

import (
	"errors"
	"io"
	"log/slog"
	"os"
)

// withTempFile copies r into a new file in dir and runs fn with its path.
// The file is closed and removed on every return path, panics included.
// A failed removal is logged and otherwise ignored.
func withTempFile(dir, suffix string, r io.Reader, fn func(path string) error) (err error) {
	f, err := os.CreateTemp(dir, "upload-*"+suffix)
	if err != nil {
		return &UploadError{Op: "create temp file", Err: err}
	}
	path := f.Name()
	closed := false
	defer func() {
		if !closed {
			_ = f.Close()
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			slog.Warn("Failed to remove temp upload", "path", path, "error", rmErr)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return &UploadError{Op: "write temp file", Err: err}
	}
	closed = true
	if err := f.Close(); err != nil {
		return &UploadError{Op: "close temp file", Err: err}
	}

	return fn(path)
}
