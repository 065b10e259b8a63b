// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

/*
Package sng provides read, decode, and extract operations for SNG song
container archives. An archive bundles a metadata dictionary and a set of
named, byte-obfuscated payloads (album art, audio stems, note charts) into a
single file; this package parses the container, removes the position-keyed
XOR obfuscation, and writes the content back onto a filesystem target.

The package decodes only. Writing archives, verifying payload integrity, and
interpreting payload content are out of scope; the obfuscation is a format
property, not a security mechanism.

# Reading

Open an archive and inspect it without materializing payload content:

	r, err := sng.Open("song.sng")
	if err != nil {
	    return err
	}
	defer r.Close()
	for _, e := range r.Entries() {
	    data, _ := r.ReadPayload(e.Name)
	    // use data
	}

For metadata-only scans, use fast helpers without creating a full reader:

	metadata, err := sng.ReadMetadata("song.sng")
	if err != nil {
	    return err
	}
	entries, err := sng.ListEntries("song.sng")
	if err != nil {
	    return err
	}
	_, _ = metadata, entries

To cheaply test whether a file is an SNG archive at all:

	if !sng.ValidateFile("maybe.sng") {
	    return nil
	}

# Decoding

Decode materializes the whole archive into memory in one call. Decoding is
all-or-nothing: a truncated or malformed archive yields an error and no
partial model.

	archive, err := sng.DecodeFile("song.sng")
	if err != nil {
	    return err
	}
	art, err := archive.Payload("album.png")
	if err != nil {
	    return err
	}
	_ = art

Decode diagnostics are silent by default. Inject a logger to receive
per-section traces and advisory payload signature warnings:

	archive, err := sng.DecodeFileWithOptions("song.sng", sng.ReaderOptions{
	    Logger: slog.Default(),
	})

# Extracting

Extract writes the metadata manifest (song.ini) and all payloads under a
destination root, recreating subdirectories implied by "/" in payload names.
Failures are collected per payload and reported in aggregate:

	res, err := archive.Extract("out/", sng.ExtractOptions{})
	if err != nil {
	    return err
	}
	fmt.Println(res) // e.g. "12 payloads, 34 MB written in 180ms"

Payload selection rules limit extraction, using
github.com/woozymasta/pathrules patterns:

	res, err := archive.Extract("out/", sng.ExtractOptions{
	    Select: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "*.opus"},
	        {Action: pathrules.ActionInclude, Pattern: "art/**"},
	    },
	})

Extraction targets a small filesystem capability interface. The default is
the native filesystem; sandboxed hosts and tests can substitute an in-memory
implementation:

	mem := sng.NewMemFS()
	res, err := archive.Extract("out", sng.ExtractOptions{FS: mem})

# Batch processing

ExtractBatch processes a list of archives into per-archive directories,
reporting each item through a callback. Item failures never abort the batch:

	res, err := sng.ExtractBatch(ctx, paths, "library/", sng.BatchOptions{
	    MaxWorkers: 4,
	    OnArchiveDone: func(p sng.ArchiveProgress) {
	        if p.Err != nil {
	            log.Printf("%s: %v", p.Path, p.Err)
	        }
	    },
	})
	if err != nil {
	    return err
	}
	fmt.Println(res)
*/
package sng
