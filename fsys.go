// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sync"
)

// FS is the filesystem capability used by extraction targets.
// It is selected once at the extraction boundary; extraction logic never
// branches on the host environment.
type FS interface {
	// Exists reports whether name refers to an existing file or directory.
	Exists(name string) (bool, error)
	// MkdirAll creates a directory path together with missing parents.
	MkdirAll(name string) error
	// WriteFile writes data to name, replacing existing content.
	WriteFile(name string, data []byte) error
	// ReadFile reads the full content of name.
	ReadFile(name string) ([]byte, error)
}

// OSFS implements FS on the native filesystem.
type OSFS struct{}

// Exists reports whether name exists on the native filesystem.
func (OSFS) Exists(name string) (bool, error) {
	_, err := os.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// MkdirAll creates name together with missing parents.
func (OSFS) MkdirAll(name string) error {
	return os.MkdirAll(name, 0o750)
}

// WriteFile writes data to name, replacing existing content.
func (OSFS) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0o600)
}

// ReadFile reads the full content of name.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MemFS implements FS on an in-memory map for sandboxed hosts and tests.
// It is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]struct{}
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]struct{}),
	}
}

// Exists reports whether name was written or created as a directory.
func (m *MemFS) Exists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key := memPathKey(name)
	if _, ok := m.files[key]; ok {
		return true, nil
	}
	if _, ok := m.dirs[key]; ok {
		return true, nil
	}

	return false, nil
}

// MkdirAll records name and all parent directories.
func (m *MemFS) MkdirAll(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := memPathKey(name)
	for key != "" && key != "." {
		m.dirs[key] = struct{}{}

		parent := path.Dir(key)
		if parent == key {
			break
		}
		key = parent
	}

	return nil
}

// WriteFile stores a copy of data under name, replacing existing content.
func (m *MemFS) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[memPathKey(name)] = append([]byte(nil), data...)
	return nil
}

// ReadFile returns a copy of the content stored under name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[memPathKey(name)]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}

	return append([]byte(nil), data...), nil
}

// memPathKey normalizes stored paths to slash-separated form so that native
// and slash-joined lookups address the same content.
func memPathKey(name string) string {
	return NormalizePath(name)
}
