// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"fmt"
	"io"
	"math"
)

// nopCloser wraps a reader and provides a no-op close.
type nopCloser struct {
	io.Reader
}

// Close closes nopCloser (no-op).
func (nopCloser) Close() error {
	return nil
}

// findEntry resolves the named payload's index record.
// Duplicate names keep the later record, so the scan runs backward.
func (r *Reader) findEntry(name string) *PayloadInfo {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Name == name {
			return &r.entries[i]
		}
	}

	return nil
}

// openPayloadByInfo opens a payload stream for already resolved index metadata.
func (r *Reader) openPayloadByInfo(info *PayloadInfo, name string) (io.ReadCloser, error) {
	if info == nil {
		return nil, fmt.Errorf("%w: %s", ErrPayloadNotFound, name)
	}

	offset, err := checkedUint64ToInt64(info.Offset)
	if err != nil {
		return nil, fmt.Errorf("payload %s offset: %w", name, err)
	}

	length, err := checkedUint64ToInt64(info.Size)
	if err != nil {
		return nil, fmt.Errorf("payload %s size: %w", name, err)
	}

	if offset > r.size || length > r.size-offset {
		return nil, fmt.Errorf("%w: payload %s needs %d bytes at offset %d, archive has %d",
			ErrTruncated, name, length, offset, r.size)
	}

	sr := io.NewSectionReader(r.ra, offset, length)
	return nopCloser{Reader: &maskedReader{src: sr, lut: r.lut, want: length}}, nil
}

// OpenPayload opens the named payload for reading.
// The returned stream yields de-obfuscated content.
func (r *Reader) OpenPayload(name string) (io.ReadCloser, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	return r.openPayloadByInfo(r.findEntry(name), name)
}

// OpenPayloadInfo opens a payload stream by already resolved index metadata.
// The returned stream yields de-obfuscated content.
func (r *Reader) OpenPayloadInfo(info PayloadInfo) (io.ReadCloser, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	name := info.Name
	if name == "" {
		name = "<unknown>"
	}

	return r.openPayloadByInfo(&info, name)
}

// ReadPayload reads the full de-obfuscated content of the named payload.
func (r *Reader) ReadPayload(name string) ([]byte, error) {
	rc, err := r.OpenPayload(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

// readPayloadByInfo reads the full de-obfuscated content of one index record.
func (r *Reader) readPayloadByInfo(info *PayloadInfo) ([]byte, error) {
	rc, err := r.openPayloadByInfo(info, info.Name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read payload %s: %w", info.Name, err)
	}

	return data, nil
}

// checkedUint64ToInt64 converts uint64 to int64 with overflow check.
func checkedUint64ToInt64(v uint64) (int64, error) {
	if v > uint64(math.MaxInt64) {
		return 0, ErrSizeOverflow
	}

	return int64(v), nil
}
