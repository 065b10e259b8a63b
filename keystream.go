// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"fmt"
	"io"
)

// maskLookup is the 256-entry expansion of a 16-byte obfuscation mask.
// Entry j holds mask[j mod 16] XOR j; the schedule repeats every 256 bytes
// because the position term is truncated to its low 8 bits.
type maskLookup [256]byte

// expandMask builds the keystream lookup table for one mask.
func expandMask(mask [maskSize]byte) *maskLookup {
	var lut maskLookup
	for j := range lut {
		lut[j] = byte(j) ^ mask[j&0x0F]
	}

	return &lut
}

// apply XORs data in place with the keystream starting at local position base.
func (l *maskLookup) apply(data []byte, base int64) {
	for i := range data {
		data[i] ^= l[(base+int64(i))&0xFF]
	}
}

// Unmask applies the position-keyed XOR schedule to data and returns a new
// slice, leaving data untouched. base is the local position of data[0] within
// the payload being decoded; whole payloads start at base 0. Positions are
// local to each payload, never archive-absolute. The schedule is an
// involution, so the same call turns plaintext back into obfuscated form.
func Unmask(data []byte, mask [maskSize]byte, base int64) []byte {
	lut := expandMask(mask)
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ lut[(base+int64(i))&0xFF]
	}

	return out
}

// maskedReader de-obfuscates a payload stream on the fly and verifies the
// declared payload length when the source ends.
type maskedReader struct {
	src io.Reader
	lut *maskLookup
	// pos is the local payload position of the next byte.
	pos int64
	// want is the declared payload length in bytes.
	want int64
}

// Read implements io.Reader.
func (m *maskedReader) Read(p []byte) (int, error) {
	n, err := m.src.Read(p)
	if n > 0 {
		m.lut.apply(p[:n], m.pos)
		m.pos += int64(n)
	}

	if err == io.EOF && m.pos < m.want {
		return n, fmt.Errorf("%w: %d of %d payload bytes available", ErrTruncated, m.pos, m.want)
	}

	return n, err
}
