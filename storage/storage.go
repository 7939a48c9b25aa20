// Package storage provides the text storage collaborator the processor
// reads and writes documents through. The core never inspects the path
// itself; existence and permission failures surface only through the
// provider's typed errors.
package storage

import (
	"fmt"
	"os"
)

// Storage loads and stores a document's full text under a path. Load fails
// with a *ReadError when the path cannot be read (a missing file keeps its
// not-found condition reachable through errors.Is); Store fails with a
// *WriteError and is expected to replace the destination in one call.
type Storage interface {
	Load(path string) (string, error)
	Store(path, text string) error
}

// ReadError is returned when a document's backing text cannot be loaded.
type ReadError struct {
	Path       string
	Underlying error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("cannot read %s: %v", e.Path, e.Underlying)
}

func (e *ReadError) Unwrap() error {
	return e.Underlying
}

// WriteError is returned when a document's text cannot be stored.
type WriteError struct {
	Path       string
	Underlying error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("cannot write %s: %v", e.Path, e.Underlying)
}

func (e *WriteError) Unwrap() error {
	return e.Underlying
}

// File is the filesystem-backed storage provider. Store overwrites the
// destination with a direct truncate-and-write; callers that need stronger
// write semantics substitute their own provider.
type File struct{}

var _ Storage = File{}

// Load reads the full text under path.
func (File) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Underlying: err}
	}
	return string(data), nil
}

// Store overwrites path with text.
func (File) Store(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return &WriteError{Path: path, Underlying: err}
	}
	return nil
}
