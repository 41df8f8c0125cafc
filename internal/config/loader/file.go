package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
)

// decodeFunc turns raw file content into a configuration map. Errors it
// returns are *ParseError without a path.
type decodeFunc func(data []byte) (map[string]any, error)

// fileLoader carries the file handling shared by the format loaders.
type fileLoader struct {
	fs     FileSystem
	path   string
	decode decodeFunc
}

// Load reads the loader's configured path.
func (l *fileLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads path. A missing file yields nil, nil.
func (l *fileLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.parse(data, path)
}

// LoadFromReader reads the whole of r.
func (l *fileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse(data, "<reader>")
}

func (l *fileLoader) parse(data []byte, path string) (map[string]any, error) {
	m, err := l.decode(data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	if m == nil {
		m = make(map[string]any)
	}
	return m, nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
