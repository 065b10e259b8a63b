// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ReadMetadata opens an archive and returns only the metadata dictionary
// without parsing the file index or payload content.
func ReadMetadata(path string) (map[string]string, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ReadMetadataFromReaderAt(f, size)
}

// ReadMetadataFromReaderAt reads only the metadata dictionary from a
// random-access source.
func ReadMetadataFromReaderAt(ra io.ReaderAt, size int64) (map[string]string, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	cur := newCursor(io.NewSectionReader(ra, 0, size))
	if _, _, err := parseHeader(cur); err != nil {
		return nil, err
	}

	return parseMetadata(cur, slog.New(slog.DiscardHandler))
}

// ListEntries opens an archive and returns file-index records in encounter
// order without payload reads.
func ListEntries(path string) ([]PayloadInfo, error) {
	f, size, err := openFileWithSize(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return ListEntriesFromReaderAt(f, size)
}

// ListEntriesFromReaderAt parses file-index records from a random-access source.
func ListEntriesFromReaderAt(ra io.ReaderAt, size int64) ([]PayloadInfo, error) {
	if ra == nil {
		return nil, ErrNilReader
	}

	discard := slog.New(slog.DiscardHandler)
	cur := newCursor(io.NewSectionReader(ra, 0, size))
	if _, _, err := parseHeader(cur); err != nil {
		return nil, err
	}

	// The metadata section has no fixed width, so it must be walked to reach
	// the file index.
	if _, err := parseMetadata(cur, discard); err != nil {
		return nil, err
	}

	return parseFileIndex(cur, discard)
}

// openFileWithSize opens a file and returns a handle plus current size.
func openFileWithSize(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open SNG: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("stat: %w", err)
	}

	return f, fi.Size(), nil
}
