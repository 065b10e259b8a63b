// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"bytes"
	"fmt"
	"strings"
)

// payloadSignature describes one advisory magic-byte check.
type payloadSignature struct {
	suffix string
	magic  []byte
}

// payloadSignatures lists advisory signature checks keyed by name suffix.
// A failed check only produces a warning, never a decode error.
var payloadSignatures = []payloadSignature{
	{suffix: ".jpg", magic: []byte{0xFF, 0xD8}},
	{suffix: ".jpeg", magic: []byte{0xFF, 0xD8}},
	{suffix: ".png", magic: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
	{suffix: ".gif", magic: []byte("GIF8")},
	{suffix: ".ogg", magic: []byte("OggS")},
	{suffix: ".opus", magic: []byte("OggS")},
	{suffix: ".wav", magic: []byte("RIFF")},
	{suffix: ".mid", magic: []byte{'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06}},
	{suffix: ".midi", magic: []byte{'M', 'T', 'h', 'd', 0x00, 0x00, 0x00, 0x06}},
}

// signatureWarning checks decoded payload content against the advisory
// signature table. It returns an empty string when no check applies or the
// content matches its expected signature.
func signatureWarning(name string, data []byte) string {
	lower := strings.ToLower(name)
	for _, sig := range payloadSignatures {
		if !strings.HasSuffix(lower, sig.suffix) {
			continue
		}

		if len(data) < len(sig.magic) {
			return fmt.Sprintf("content shorter than the %d-byte %s signature", len(sig.magic), sig.suffix)
		}

		if !bytes.Equal(data[:len(sig.magic)], sig.magic) {
			return fmt.Sprintf("content does not start with the %s signature", sig.suffix)
		}

		return ""
	}

	return ""
}
