// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExtractBatch decodes and extracts each listed archive into its own
// directory under destRoot.
//
// Per-item failures are reported through BatchOptions.OnArchiveDone and
// counted in the result; they never abort the batch. Context cancellation
// stops scheduling new items and surfaces the context error; each archive's
// decode and extraction stay synchronous and run to completion once started.
func ExtractBatch(ctx context.Context, archives []string, destRoot string, opts BatchOptions) (BatchResult, error) {
	opts.applyDefaults()

	var res BatchResult
	start := time.Now()
	if len(archives) == 0 {
		return res, nil
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.MaxWorkers)
	for _, archive := range archives {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			progress := processArchive(archive, destRoot, opts)

			mu.Lock()
			if progress.Err != nil {
				res.Failed++
			} else {
				res.Archives++
				res.WrittenBytes += progress.Result.WrittenBytes
			}
			mu.Unlock()

			if opts.OnArchiveDone != nil {
				opts.OnArchiveDone(progress)
			}

			return nil
		})
	}

	err := g.Wait()
	res.Duration = time.Since(start)
	return res, err
}

// processArchive decodes and extracts one batch item.
func processArchive(archivePath, destRoot string, opts BatchOptions) ArchiveProgress {
	progress := ArchiveProgress{
		Path: archivePath,
		Dest: filepath.Join(destRoot, opts.DestName(archivePath)),
	}

	archive, err := DecodeFileWithOptions(archivePath, opts.Reader)
	if err != nil {
		progress.Err = fmt.Errorf("decode %s: %w", archivePath, err)
		return progress
	}

	result, err := archive.Extract(progress.Dest, opts.Extract)
	progress.Result = result
	if err != nil {
		progress.Err = fmt.Errorf("extract %s: %w", archivePath, err)
	}

	return progress
}

// archiveStem returns the archive filename without directory and extension.
func archiveStem(archivePath string) string {
	base := filepath.Base(archivePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
