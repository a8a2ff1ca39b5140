package chat

import (
	"fmt"
	"os"

	"github.com/ChrisBushman/tiger-claude/internal/constants"
)

// FileErrorKind classifies a file load failure.
type FileErrorKind int

const (
	// FileNotFound means the path does not exist
	FileNotFound FileErrorKind = iota
	// FileNotReadable means the path exists but could not be read
	FileNotReadable
	// FileTooLarge means the file exceeds the configured size limit
	FileTooLarge
)

// FileError reports why a context file could not be loaded. File load
// failures are user-visible and never terminate the session.
type FileError struct {
	Kind  FileErrorKind
	Path  string
	Size  int64
	Limit int64
	Err   error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case FileNotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case FileTooLarge:
		return fmt.Sprintf("file too large: %s is %d bytes (limit %d)", e.Path, e.Size, e.Limit)
	default:
		return fmt.Sprintf("cannot read file %s: %v", e.Path, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// FileContent is the loaded text of one context file. Transient: consumed
// immediately when building a turn, never retained.
type FileContent struct {
	Path string
	Text string
	Size int64
}

// FileLoader reads context files with a size cap.
type FileLoader struct {
	maxBytes int64
}

// NewFileLoader creates a loader with the given size limit.
// A non-positive limit falls back to the default.
func NewFileLoader(maxBytes int64) *FileLoader {
	if maxBytes <= 0 {
		maxBytes = constants.DefaultMaxFileBytes
	}
	return &FileLoader{maxBytes: maxBytes}
}

// Load reads the file at path. The size limit is checked before reading so
// a multi-megabyte binary is rejected without being pulled into memory.
func (l *FileLoader) Load(path string) (*FileContent, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileError{Kind: FileNotFound, Path: path, Err: err}
		}
		return nil, &FileError{Kind: FileNotReadable, Path: path, Err: err}
	}

	if info.IsDir() {
		return nil, &FileError{Kind: FileNotReadable, Path: path, Err: fmt.Errorf("%s is a directory", path)}
	}

	if info.Size() > l.maxBytes {
		return nil, &FileError{Kind: FileTooLarge, Path: path, Size: info.Size(), Limit: l.maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Kind: FileNotReadable, Path: path, Err: err}
	}

	return &FileContent{Path: path, Text: string(data), Size: info.Size()}, nil
}
