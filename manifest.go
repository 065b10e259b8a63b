// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"bytes"
	"sort"
)

// manifestSection is the section header line of the generated manifest.
const manifestSection = "[song]"

// Manifest renders the archive metadata as song.ini content.
// Keys are emitted sorted so output is deterministic.
func (a *Archive) Manifest() []byte {
	if a == nil {
		return nil
	}

	return renderManifest(a.Metadata)
}

// renderManifest builds the [song] key-value manifest block.
func renderManifest(metadata map[string]string) []byte {
	keys := make([]string, 0, len(metadata))
	for key := range metadata {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString(manifestSection)
	buf.WriteByte('\n')
	for _, key := range keys {
		buf.WriteString(key)
		buf.WriteString(" = ")
		buf.WriteString(metadata[key])
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
