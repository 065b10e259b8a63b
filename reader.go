// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Reader provides read-only access to a parsed SNG archive.
//
// The header, metadata dictionary, and file index are parsed at open time;
// payload content is read and de-obfuscated on demand.
type Reader struct {
	// ra is the underlying random-access source used for payload reads.
	ra io.ReaderAt
	// file is set when Reader owns an *os.File opened via Open.
	file *os.File
	// logger receives decode traces and advisory warnings.
	logger *slog.Logger
	// lut is the expanded keystream table for mask.
	lut *maskLookup
	// metadata holds the decoded key-value dictionary.
	metadata map[string]string
	// entries stores parsed file-index records in encounter order.
	entries []PayloadInfo
	// size is total source size in bytes.
	size int64
	// version is the container format version.
	version uint32
	// mask is the 16-byte obfuscation mask.
	mask [maskSize]byte
	// mu guards closed state and close operation.
	mu sync.Mutex
	// closed reports whether Close was already called.
	closed bool
}

// Open opens an SNG archive by path and parses header, metadata, and file index.
func Open(path string) (*Reader, error) {
	return OpenWithOptions(path, ReaderOptions{})
}

// OpenWithOptions opens an SNG archive by path using explicit reader options.
func OpenWithOptions(path string, opts ReaderOptions) (*Reader, error) {
	opts.applyDefaults()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open SNG: %w", err)
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	r, err := NewReaderFromReaderAtWithOptions(f, fi.Size(), opts)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	r.file = f
	return r, nil
}

// NewReaderFromReaderAt parses an SNG archive from an existing ReaderAt and known size.
func NewReaderFromReaderAt(ra io.ReaderAt, size int64) (*Reader, error) {
	return NewReaderFromReaderAtWithOptions(ra, size, ReaderOptions{})
}

// NewReaderFromReaderAtWithOptions parses an SNG archive from an existing
// ReaderAt and known size using explicit reader options.
func NewReaderFromReaderAtWithOptions(ra io.ReaderAt, size int64, opts ReaderOptions) (*Reader, error) {
	opts.applyDefaults()

	if ra == nil {
		return nil, ErrNilReader
	}

	r := &Reader{ra: ra, size: size, logger: opts.Logger}
	if err := r.parse(); err != nil {
		return nil, err
	}

	return r, nil
}

// Version returns the container format version.
func (r *Reader) Version() uint32 {
	if r == nil {
		return 0
	}

	return r.version
}

// Mask returns the 16-byte obfuscation mask.
func (r *Reader) Mask() [maskSize]byte {
	if r == nil {
		return [maskSize]byte{}
	}

	return r.mask
}

// Metadata returns a copy of the decoded metadata dictionary.
func (r *Reader) Metadata() map[string]string {
	if r == nil {
		return nil
	}

	out := make(map[string]string, len(r.metadata))
	for key, value := range r.metadata {
		out[key] = value
	}

	return out
}

// Entries returns a copy of parsed file-index records in encounter order.
func (r *Reader) Entries() []PayloadInfo {
	if r == nil {
		return nil
	}

	entries := make([]PayloadInfo, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Close closes the underlying file if the reader owns one.
func (r *Reader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}

	r.closed = true
	if r.file != nil {
		return r.file.Close()
	}

	return nil
}

// Decode materializes the full archive model.
//
// Decoding is all-or-nothing: any truncation or read failure aborts with no
// partial result. Duplicate payload names keep the later index entry only.
func (r *Reader) Decode() (*Archive, error) {
	if r == nil || r.ra == nil {
		return nil, ErrNilReader
	}

	r.mu.Lock()
	closed := r.closed
	r.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	payloads := make(map[string][]byte, len(r.entries))
	for i := range r.entries {
		info := &r.entries[i]
		data, err := r.readPayloadByInfo(info)
		if err != nil {
			return nil, err
		}

		if warn := signatureWarning(info.Name, data); warn != "" {
			r.logger.Warn("payload signature mismatch", "name", info.Name, "detail", warn)
		}

		payloads[info.Name] = data
	}

	return &Archive{
		Version:  r.version,
		Metadata: r.Metadata(),
		Payloads: payloads,
	}, nil
}

// parse reads header, metadata dictionary, and file index sections.
func (r *Reader) parse() error {
	cur := newCursor(io.NewSectionReader(r.ra, 0, r.size))

	version, mask, err := parseHeader(cur)
	if err != nil {
		return err
	}

	r.version = version
	r.mask = mask
	r.lut = expandMask(mask)
	r.logger.Debug("parsed header", "version", version)

	r.metadata, err = parseMetadata(cur, r.logger)
	if err != nil {
		return err
	}

	r.entries, err = parseFileIndex(cur, r.logger)
	if err != nil {
		return err
	}

	// The file-data section length is informational, but the field itself must
	// be consumed to keep the cursor aligned with the wire layout.
	dataLen, err := cur.readU64()
	if err != nil {
		return fmt.Errorf("read file data section length: %w", err)
	}

	r.logger.Debug("parsed archive",
		"version", r.version,
		"metadata_entries", len(r.metadata),
		"payloads", len(r.entries),
		"declared_data_size", dataLen)
	return nil
}

// parseHeader reads and validates the fixed 26-byte archive header.
func parseHeader(cur *cursor) (uint32, [maskSize]byte, error) {
	var mask [maskSize]byte

	ident, err := cur.readExact(identifierSize)
	if err != nil {
		return 0, mask, fmt.Errorf("read identifier: %w", err)
	}
	if string(ident) != FileIdentifier {
		return 0, mask, fmt.Errorf("%w: got %q", ErrInvalidHeader, ident)
	}

	version, err := cur.readU32()
	if err != nil {
		return 0, mask, fmt.Errorf("read version: %w", err)
	}

	if err := cur.readInto(mask[:]); err != nil {
		return 0, mask, fmt.Errorf("read mask: %w", err)
	}

	return version, mask, nil
}

// parseMetadata reads the metadata dictionary section.
// The declared section length is informational and never bounds parsing.
func parseMetadata(cur *cursor, logger *slog.Logger) (map[string]string, error) {
	sectionLen, err := cur.readU64()
	if err != nil {
		return nil, fmt.Errorf("read metadata section length: %w", err)
	}

	count, err := cur.readU64()
	if err != nil {
		return nil, fmt.Errorf("read metadata entry count: %w", err)
	}

	sectionStart := cur.position()
	metadata := make(map[string]string, capacityHint(count))
	for i := uint64(0); i < count; i++ {
		key, err := readLengthPrefixed(cur, "metadata key")
		if err != nil {
			return nil, err
		}

		value, err := readLengthPrefixed(cur, "metadata value")
		if err != nil {
			return nil, err
		}

		metadata[key] = value
	}

	consumed := uint64(cur.position() - sectionStart)
	logger.Debug("parsed metadata section", "declared_size", sectionLen, "entries", count, "consumed", consumed)
	return metadata, nil
}

// readLengthPrefixed reads one i32-length-prefixed string field.
// Negative declared lengths abort without consuming further input.
func readLengthPrefixed(cur *cursor, field string) (string, error) {
	length, err := cur.readI32()
	if err != nil {
		return "", fmt.Errorf("read %s length: %w", field, err)
	}
	if length < 0 {
		return "", fmt.Errorf("%w: %s length %d", ErrNegativeLength, field, length)
	}

	value, err := cur.readString(int(length))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", field, err)
	}

	return value, nil
}

// parseFileIndex reads the file-index section preserving encounter order.
// The declared section length is informational and never bounds parsing.
func parseFileIndex(cur *cursor, logger *slog.Logger) ([]PayloadInfo, error) {
	sectionLen, err := cur.readU64()
	if err != nil {
		return nil, fmt.Errorf("read file index section length: %w", err)
	}

	count, err := cur.readU64()
	if err != nil {
		return nil, fmt.Errorf("read file count: %w", err)
	}

	sectionStart := cur.position()
	entries := make([]PayloadInfo, 0, capacityHint(count))
	for i := uint64(0); i < count; i++ {
		nameLen, err := cur.readU8()
		if err != nil {
			return nil, fmt.Errorf("read file name length: %w", err)
		}

		name, err := cur.readString(int(nameLen))
		if err != nil {
			return nil, fmt.Errorf("read file name: %w", err)
		}

		size, err := cur.readU64()
		if err != nil {
			return nil, fmt.Errorf("read content length for %s: %w", name, err)
		}

		offset, err := cur.readU64()
		if err != nil {
			return nil, fmt.Errorf("read content offset for %s: %w", name, err)
		}

		entries = append(entries, PayloadInfo{Name: name, Size: size, Offset: offset})
	}

	consumed := uint64(cur.position() - sectionStart)
	logger.Debug("parsed file index section", "declared_size", sectionLen, "files", count, "consumed", consumed)
	return entries, nil
}

// capacityHint clamps a wire-declared count to a safe allocation hint.
func capacityHint(declared uint64) int {
	const maxHint = 4096
	if declared > maxHint {
		return maxHint
	}

	return int(declared)
}

// DecodeFile decodes an entire SNG archive from a file path.
func DecodeFile(path string) (*Archive, error) {
	return DecodeFileWithOptions(path, ReaderOptions{})
}

// DecodeFileWithOptions decodes an entire SNG archive from a file path using
// explicit reader options. The file is released on every exit path.
func DecodeFileWithOptions(path string, opts ReaderOptions) (*Archive, error) {
	r, err := OpenWithOptions(path, opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.Decode()
}

// DecodeBytes decodes an entire SNG archive from an in-memory buffer.
func DecodeBytes(data []byte) (*Archive, error) {
	return DecodeBytesWithOptions(data, ReaderOptions{})
}

// DecodeBytesWithOptions decodes an entire SNG archive from an in-memory
// buffer using explicit reader options.
func DecodeBytesWithOptions(data []byte, opts ReaderOptions) (*Archive, error) {
	r, err := NewReaderFromReaderAtWithOptions(bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		return nil, err
	}

	return r.Decode()
}

// ValidateHeader reports whether the source starts with the SNG identifier.
// Only the first 6 bytes are read.
func ValidateHeader(ra io.ReaderAt) bool {
	if ra == nil {
		return false
	}

	var ident [identifierSize]byte
	if _, err := ra.ReadAt(ident[:], 0); err != nil {
		return false
	}

	return string(ident[:]) == FileIdentifier
}

// ValidateFile reports whether the file at path starts with the SNG identifier.
func ValidateFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	return ValidateHeader(f)
}
