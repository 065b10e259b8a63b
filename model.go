// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/woozymasta/pathrules"
)

// FileIdentifier is the 6-byte magic at the start of every SNG archive.
const FileIdentifier = "SNGPKG"

// ManifestFileName is the metadata manifest written during extraction.
const ManifestFileName = "song.ini"

// Internal binary layout and format limits.
const (
	identifierSize = 6   // fixed identifier length in bytes
	maskSize       = 16  // obfuscation mask length in bytes
	headerSize     = 26  // identifier + version + mask
	maxNameLen     = 255 // name length is a single byte on the wire
)

// Archive is the fully decoded in-memory form of one SNG container.
// It is owned exclusively by the caller once decoding returns.
type Archive struct {
	// Metadata holds the decoded key-value dictionary.
	Metadata map[string]string `json:"metadata" yaml:"metadata"`
	// Payloads maps payload names to de-obfuscated content.
	Payloads map[string][]byte `json:"payloads" yaml:"payloads"`
	// Version is the container format version, stored as parsed.
	Version uint32 `json:"version" yaml:"version"`
}

// PayloadNames returns payload names sorted for deterministic iteration.
func (a *Archive) PayloadNames() []string {
	if a == nil {
		return nil
	}

	names := make([]string, 0, len(a.Payloads))
	for name := range a.Payloads {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Payload returns the de-obfuscated content of the named payload.
func (a *Archive) Payload(name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilArchive
	}

	data, ok := a.Payloads[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPayloadNotFound, name)
	}

	return data, nil
}

// PayloadInfo describes a single parsed file-index record.
type PayloadInfo struct {
	// Name is the payload name as stored in the file index.
	Name string `json:"name" yaml:"name"`
	// Size is payload content length in bytes.
	Size uint64 `json:"size" yaml:"size"`
	// Offset is the absolute byte offset of the obfuscated content.
	Offset uint64 `json:"offset" yaml:"offset"`
}

// String returns a short human-readable record description.
func (e PayloadInfo) String() string {
	return fmt.Sprintf("%s (%s @ %d)", e.Name, humanize.Bytes(e.Size), e.Offset)
}

// ReaderOptions configures decode diagnostics.
type ReaderOptions struct {
	// Logger receives per-section decode traces at debug level and advisory
	// payload signature warnings. Nil keeps decoding silent.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// ExtractFileMode controls output file behavior during extraction.
type ExtractFileMode string

// Output file policies for extraction.
const (
	// ExtractFileModeOverwrite replaces existing output files silently.
	ExtractFileModeOverwrite ExtractFileMode = "overwrite"
	// ExtractFileModeCreateOnly fails payload writes when output already exists.
	ExtractFileModeCreateOnly ExtractFileMode = "create_only"
)

// ExtractOptions configures Extract behavior.
type ExtractOptions struct {
	// OnPayloadDone is called after one payload is fully written.
	OnPayloadDone func(name string, written int64, outputPath string) `json:"-" yaml:"-"`
	// FS is the destination filesystem capability. Nil means the native filesystem.
	FS FS `json:"-" yaml:"-"`
	// FileMode controls output file behavior for payload writes.
	FileMode ExtractFileMode `json:"file_mode,omitempty" yaml:"file_mode,omitempty"`
	// Select defines ordered path rules limiting which payloads are written.
	// Nil or empty selects all payloads.
	Select []pathrules.Rule `json:"select,omitempty" yaml:"select,omitempty"`
	// SelectMatcherOptions control payload selection rule matching.
	SelectMatcherOptions pathrules.MatcherOptions `json:"select_matcher_options,omitzero" yaml:"select_matcher_options,omitzero"`
	// RawNames disables default payload path normalization during extract.
	// When false (default), unsafe names are rejected per payload.
	RawNames bool `json:"raw_names,omitempty" yaml:"raw_names,omitempty"`
	// NoManifest skips writing the song.ini manifest.
	NoManifest bool `json:"no_manifest,omitempty" yaml:"no_manifest,omitempty"`
}

// ExtractResult contains extraction output statistics.
type ExtractResult struct {
	// ManifestPath is the path of the written manifest, empty when skipped.
	ManifestPath string `json:"manifest_path,omitempty" yaml:"manifest_path,omitempty"`
	// Payloads is the number of payloads written to the destination.
	Payloads int `json:"payloads" yaml:"payloads"`
	// Skipped is the number of payloads excluded by selection rules.
	Skipped int `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// WrittenBytes is total payload bytes written.
	WrittenBytes int64 `json:"written_bytes" yaml:"written_bytes"`
	// Duration is end-to-end extraction duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// String returns a short human-readable extraction summary.
func (r ExtractResult) String() string {
	return fmt.Sprintf("%d payloads, %s written in %s",
		r.Payloads, humanize.Bytes(uint64(r.WrittenBytes)), r.Duration.Round(time.Millisecond))
}

// ArchiveProgress reports one finished batch item.
type ArchiveProgress struct {
	// Err is the decode or extract failure for this archive, nil on success.
	Err error `json:"-" yaml:"-"`
	// Path is the source archive path.
	Path string `json:"path" yaml:"path"`
	// Dest is the destination directory used for this archive.
	Dest string `json:"dest" yaml:"dest"`
	// Result carries extraction statistics when extraction ran.
	Result ExtractResult `json:"result,omitzero" yaml:"result,omitzero"`
}

// BatchOptions configures batch extraction behavior.
type BatchOptions struct {
	// OnArchiveDone is called after one archive finishes, successful or not.
	// It may be called concurrently when MaxWorkers is greater than one.
	OnArchiveDone func(progress ArchiveProgress) `json:"-" yaml:"-"`
	// DestName maps an archive path to its destination directory name under
	// the batch root. Default strips the directory and extension.
	DestName func(archivePath string) string `json:"-" yaml:"-"`
	// Reader options are applied to each archive decode.
	Reader ReaderOptions `json:"reader,omitzero" yaml:"reader,omitzero"`
	// Extract options are applied to each archive extraction.
	Extract ExtractOptions `json:"extract,omitzero" yaml:"extract,omitzero"`
	// MaxWorkers bounds concurrent archive processing (0 and 1 mean sequential).
	MaxWorkers int `json:"max_workers,omitempty" yaml:"max_workers,omitempty"`
}

// BatchResult contains batch extraction statistics.
type BatchResult struct {
	// Archives is the number of archives processed successfully.
	Archives int `json:"archives" yaml:"archives"`
	// Failed is the number of archives that failed to decode or extract.
	Failed int `json:"failed,omitempty" yaml:"failed,omitempty"`
	// WrittenBytes is total payload bytes written across the batch.
	WrittenBytes int64 `json:"written_bytes" yaml:"written_bytes"`
	// Duration is end-to-end batch duration.
	Duration time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// String returns a short human-readable batch summary.
func (r BatchResult) String() string {
	return fmt.Sprintf("%d archives (%d failed), %s written in %s",
		r.Archives, r.Failed, humanize.Bytes(uint64(r.WrittenBytes)), r.Duration.Round(time.Millisecond))
}

// applyDefaults fills zero-valued reader options with defaults.
func (opts *ReaderOptions) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
}

// applyDefaults fills zero-valued extract options with defaults.
func (opts *ExtractOptions) applyDefaults() {
	if opts.FS == nil {
		opts.FS = OSFS{}
	}

	if opts.FileMode == "" {
		opts.FileMode = ExtractFileModeOverwrite
	}

	if opts.SelectMatcherOptions == (pathrules.MatcherOptions{}) {
		opts.SelectMatcherOptions = pathrules.MatcherOptions{
			CaseInsensitive: true,
			DefaultAction:   pathrules.ActionExclude,
		}
	}

	if opts.SelectMatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.SelectMatcherOptions.DefaultAction = pathrules.ActionExclude
	}
}

// applyDefaults fills zero-valued batch options with defaults.
func (opts *BatchOptions) applyDefaults() {
	if opts.DestName == nil {
		opts.DestName = archiveStem
	}

	if opts.MaxWorkers < 1 {
		opts.MaxWorkers = 1
	}
}
