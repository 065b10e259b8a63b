// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// cursor is a sequential position-aware reader over an archive byte source.
// Reads advance the position; seekTo repositions it absolutely.
type cursor struct {
	r   io.ReadSeeker
	pos int64
}

// newCursor wraps a byte source positioned at offset zero.
func newCursor(r io.ReadSeeker) *cursor {
	return &cursor{r: r}
}

// readInto fills buf completely or fails with ErrTruncated.
func (c *cursor) readInto(buf []byte) error {
	start := c.pos
	n, err := io.ReadFull(c.r, buf)
	c.pos += int64(n)
	if err == nil {
		return nil
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %d bytes at offset %d", ErrTruncated, len(buf), start)
	}

	return fmt.Errorf("read at offset %d: %w", start, err)
}

// readExact returns exactly n bytes or fails with ErrTruncated.
func (c *cursor) readExact(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if err := c.readInto(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// readU8 reads one unsigned byte.
func (c *cursor) readU8() (uint8, error) {
	var buf [1]byte
	if err := c.readInto(buf[:]); err != nil {
		return 0, err
	}

	return buf[0], nil
}

// readU32 reads a little-endian unsigned 32-bit integer.
func (c *cursor) readU32() (uint32, error) {
	var buf [4]byte
	if err := c.readInto(buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readU64 reads a little-endian unsigned 64-bit integer.
func (c *cursor) readU64() (uint64, error) {
	var buf [8]byte
	if err := c.readInto(buf[:]); err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readI32 reads a little-endian signed 32-bit integer in two's-complement form.
func (c *cursor) readI32() (int32, error) {
	v, err := c.readU32()
	return int32(v), err
}

// readString returns n raw bytes as a string; n == 0 consumes nothing.
// Bytes are treated as opaque, no text validation is applied.
func (c *cursor) readString(n int) (string, error) {
	if n == 0 {
		return "", nil
	}

	buf, err := c.readExact(n)
	if err != nil {
		return "", err
	}

	return string(buf), nil
}

// seekTo repositions the cursor to an absolute byte offset, forward or backward.
func (c *cursor) seekTo(offset int64) error {
	pos, err := c.r.Seek(offset, io.SeekStart)
	if err != nil {
		return fmt.Errorf("seek to offset %d: %w", offset, err)
	}

	c.pos = pos
	return nil
}

// position reports the current absolute byte offset.
func (c *cursor) position() int64 {
	return c.pos
}
