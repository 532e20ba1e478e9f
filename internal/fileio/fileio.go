// Package fileio provides the file access error shared by the counter and matrix packages.
package fileio

import (
	"bufio"
	"fmt"
	"os"
)

// AccessError reports a path that could not be read or written.
type AccessError struct {
	Op   string
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Open opens path for reading, wrapping failures in an AccessError.
func Open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &AccessError{Op: "read", Path: path, Err: err}
	}
	info, err := file.Stat()
	if err == nil && info.IsDir() {
		_ = file.Close()
		return nil, &AccessError{Op: "read", Path: path, Err: fmt.Errorf("is a directory")}
	}
	return file, nil
}

// WriteText creates or truncates path and writes text to it.
// A failure partway through leaves whatever was already written.
func WriteText(path, text string) error {
	file, err := os.Create(path)
	if err != nil {
		return &AccessError{Op: "write", Path: path, Err: err}
	}
	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(text); err != nil {
		_ = file.Close()
		return &AccessError{Op: "write", Path: path, Err: err}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return &AccessError{Op: "write", Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &AccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}
