// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import "errors"

// Sentinel errors for SNG operations. Use errors.Is in callers.
var (
	// ErrInvalidHeader means the file does not start with the SNG identifier.
	ErrInvalidHeader = errors.New("invalid SNG file: missing or bad identifier")
	// ErrTruncated means the stream ended before a declared field or payload.
	ErrTruncated = errors.New("truncated SNG file: unexpected end of data")
	// ErrNegativeLength means a metadata key or value declares a negative length.
	ErrNegativeLength = errors.New("malformed length: negative field length")
	// ErrPayloadNotFound means the requested payload name is absent.
	ErrPayloadNotFound = errors.New("payload not found")
	// ErrNilReader means the reader or its byte source is nil.
	ErrNilReader = errors.New("reader is nil")
	// ErrNilArchive means the archive is nil.
	ErrNilArchive = errors.New("archive is nil")
	// ErrClosed means the reader or resource is already closed.
	ErrClosed = errors.New("reader or resource already closed")
	// ErrSizeOverflow means a declared size exceeds the addressable range.
	ErrSizeOverflow = errors.New("declared size exceeds addressable range")
	// ErrInvalidPayloadPath means a payload name is invalid as an extraction path.
	ErrInvalidPayloadPath = errors.New("invalid payload path")
	// ErrInvalidSelectPattern means one or more payload selection rules are invalid.
	ErrInvalidSelectPattern = errors.New("invalid select rules")
	// ErrExtractFailed means one or more payload writes failed during extraction.
	ErrExtractFailed = errors.New("extract completed with failures")
)
