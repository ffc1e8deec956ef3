package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// FileAppender writes entries as JSON lines. Files ending in .zst are
// zstd-compressed on the fly.
type FileAppender struct {
	file *os.File
	zw   *zstd.Encoder
	w    io.Writer
	enc  *json.Encoder
}

// NewFileAppender opens (or creates) the audit file, creating parent
// directories as needed. Appends to an existing plain file; a compressed
// file is opened as a fresh zstd stream.
func NewFileAppender(path string) (*FileAppender, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	compressed := strings.HasSuffix(path, ".zst")

	mode := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if compressed {
		// A zstd stream cannot be appended to; start over.
		mode = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}

	file, err := os.OpenFile(path, mode, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}

	fa := &FileAppender{file: file, w: file}
	if compressed {
		zw, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		fa.zw = zw
		fa.w = zw
	}
	fa.enc = json.NewEncoder(fa.w)

	return fa, nil
}

// Append writes one JSON line.
func (fa *FileAppender) Append(e *Entry) error {
	if err := fa.enc.Encode(e); err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}
	if fa.zw != nil {
		return fa.zw.Flush()
	}
	return nil
}

// Close flushes and closes the file.
func (fa *FileAppender) Close() error {
	if fa.zw != nil {
		if err := fa.zw.Close(); err != nil {
			fa.file.Close()
			return err
		}
	}
	return fa.file.Close()
}
