package storage

import "os"

// Memory is a map-backed storage provider for tests. It counts loads and
// stores so callers can assert that an operation touched storage exactly as
// often as promised.
type Memory struct {
	Texts  map[string]string
	Loads  int
	Stores int
}

var _ Storage = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{Texts: make(map[string]string)}
}

// Load returns the stored text, or a *ReadError wrapping os.ErrNotExist for
// unknown paths, matching the filesystem provider's not-found condition.
func (m *Memory) Load(path string) (string, error) {
	m.Loads++
	text, ok := m.Texts[path]
	if !ok {
		return "", &ReadError{Path: path, Underlying: os.ErrNotExist}
	}
	return text, nil
}

// Store replaces the text under path.
func (m *Memory) Store(path, text string) error {
	m.Stores++
	m.Texts[path] = text
	return nil
}
