// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"
)

// Extract writes the archive manifest and payloads under destRoot, recreating
// subdirectories implied by "/"-separated payload names.
//
// Extraction is best-effort: a failure writing one payload does not stop the
// remaining payloads, and all failures are reported in aggregate. Existing
// files are replaced silently unless ExtractFileModeCreateOnly is selected.
func (a *Archive) Extract(destRoot string, opts ExtractOptions) (ExtractResult, error) {
	var res ExtractResult
	if a == nil {
		return res, ErrNilArchive
	}

	opts.applyDefaults()
	start := time.Now()

	matcher, err := newSelectMatcher(opts.Select, opts.SelectMatcherOptions)
	if err != nil {
		return res, err
	}

	if err := opts.FS.MkdirAll(destRoot); err != nil {
		return res, fmt.Errorf("create destination root: %w", err)
	}

	var errs []error
	if !opts.NoManifest {
		manifestPath := filepath.Join(destRoot, ManifestFileName)
		if err := opts.FS.WriteFile(manifestPath, renderManifest(a.Metadata)); err != nil {
			errs = append(errs, fmt.Errorf("write manifest: %w", err))
		} else {
			res.ManifestPath = manifestPath
		}
	}

	dirSeen := make(map[string]struct{})
	for _, name := range a.PayloadNames() {
		if !shouldExtract(matcher, name) {
			res.Skipped++
			continue
		}

		outPath, err := payloadOutputPath(destRoot, name, opts.RawNames)
		if err != nil {
			errs = append(errs, fmt.Errorf("payload %s: %w", name, err))
			continue
		}

		if err := ensurePayloadDir(opts.FS, outPath, dirSeen); err != nil {
			errs = append(errs, fmt.Errorf("payload %s: %w", name, err))
			continue
		}

		written, err := writePayloadFile(opts.FS, outPath, a.Payloads[name], opts.FileMode)
		if err != nil {
			errs = append(errs, fmt.Errorf("payload %s: %w", name, err))
			continue
		}

		res.Payloads++
		res.WrittenBytes += written
		if opts.OnPayloadDone != nil {
			opts.OnPayloadDone(name, written, outPath)
		}
	}

	res.Duration = time.Since(start)
	if len(errs) > 0 {
		return res, fmt.Errorf("%w: %w", ErrExtractFailed, errors.Join(errs...))
	}

	return res, nil
}

// payloadOutputPath resolves one payload's output path under destRoot.
func payloadOutputPath(destRoot, name string, rawName bool) (string, error) {
	rel := name
	if !rawName {
		normalized, err := normalizePayloadPath(name)
		if err != nil {
			return "", err
		}

		rel = normalized
	}

	return filepath.Join(destRoot, filepath.FromSlash(rel)), nil
}

// ensurePayloadDir creates the parent directory of outPath once per extraction.
func ensurePayloadDir(fsys FS, outPath string, dirSeen map[string]struct{}) error {
	dir := filepath.Dir(outPath)
	if dir == "." || dir == "" {
		return nil
	}

	if _, ok := dirSeen[dir]; ok {
		return nil
	}

	dirSeen[dir] = struct{}{}
	if err := fsys.MkdirAll(dir); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	return nil
}

// writePayloadFile writes one payload according to the output file mode.
func writePayloadFile(fsys FS, outPath string, data []byte, mode ExtractFileMode) (int64, error) {
	switch mode {
	case ExtractFileModeOverwrite:
	case ExtractFileModeCreateOnly:
		exists, err := fsys.Exists(outPath)
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", outPath, err)
		}
		if exists {
			return 0, fmt.Errorf("%s: %w", outPath, fs.ErrExist)
		}
	default:
		return 0, fmt.Errorf("unknown extract file mode %q", mode)
	}

	if err := fsys.WriteFile(outPath, data); err != nil {
		return 0, fmt.Errorf("write %s: %w", outPath, err)
	}

	return int64(len(data)), nil
}
