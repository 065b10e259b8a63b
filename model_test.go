package sng

import (
	"testing"
	"time"

	"github.com/woozymasta/pathrules"
)

func TestArchive_PayloadNamesSorted(t *testing.T) {
	t.Parallel()

	archive := &Archive{Payloads: map[string][]byte{
		"z.bin":   []byte("z"),
		"a.bin":   []byte("a"),
		"m/x.bin": []byte("m"),
	}}

	names := archive.PayloadNames()
	want := []string{"a.bin", "m/x.bin", "z.bin"}
	if len(names) != len(want) {
		t.Fatalf("len(names)=%d, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names=%v, want %v", names, want)
		}
	}
}

func TestPayloadInfo_String(t *testing.T) {
	t.Parallel()

	info := PayloadInfo{Name: "track.ogg", Size: 2048, Offset: 88}
	if got := info.String(); got != "track.ogg (2.0 kB @ 88)" {
		t.Fatalf("String()=%q", got)
	}
}

func TestExtractResult_String(t *testing.T) {
	t.Parallel()

	res := ExtractResult{Payloads: 3, WrittenBytes: 2048, Duration: 1500 * time.Millisecond}
	if got := res.String(); got != "3 payloads, 2.0 kB written in 1.5s" {
		t.Fatalf("String()=%q", got)
	}
}

func TestBatchResult_String(t *testing.T) {
	t.Parallel()

	res := BatchResult{Archives: 4, Failed: 1, WrittenBytes: 500, Duration: 2 * time.Second}
	if got := res.String(); got != "4 archives (1 failed), 500 B written in 2s" {
		t.Fatalf("String()=%q", got)
	}
}

func TestReaderOptions_ApplyDefaults(t *testing.T) {
	t.Parallel()

	var opts ReaderOptions
	opts.applyDefaults()
	if opts.Logger == nil {
		t.Fatal("Logger default not applied")
	}
}

func TestExtractOptions_ApplyDefaults(t *testing.T) {
	t.Parallel()

	var opts ExtractOptions
	opts.applyDefaults()

	if opts.FS == nil {
		t.Fatal("FS default not applied")
	}
	if opts.FileMode != ExtractFileModeOverwrite {
		t.Fatalf("FileMode=%q, want %q", opts.FileMode, ExtractFileModeOverwrite)
	}

	want := pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	}
	if opts.SelectMatcherOptions != want {
		t.Fatalf("SelectMatcherOptions=%+v, want %+v", opts.SelectMatcherOptions, want)
	}

	custom := ExtractOptions{
		FileMode: ExtractFileModeCreateOnly,
		SelectMatcherOptions: pathrules.MatcherOptions{
			DefaultAction: pathrules.ActionInclude,
		},
	}
	custom.applyDefaults()
	if custom.FileMode != ExtractFileModeCreateOnly {
		t.Fatalf("FileMode=%q, custom value lost", custom.FileMode)
	}
	if custom.SelectMatcherOptions.DefaultAction != pathrules.ActionInclude {
		t.Fatalf("DefaultAction=%v, custom value lost", custom.SelectMatcherOptions.DefaultAction)
	}
}

func TestBatchOptions_ApplyDefaults(t *testing.T) {
	t.Parallel()

	var opts BatchOptions
	opts.applyDefaults()

	if opts.MaxWorkers != 1 {
		t.Fatalf("MaxWorkers=%d, want 1", opts.MaxWorkers)
	}
	if opts.DestName == nil {
		t.Fatal("DestName default not applied")
	}
	if got := opts.DestName("songs/track.sng"); got != "track" {
		t.Fatalf("DestName=%q, want %q", got, "track")
	}

	keep := BatchOptions{MaxWorkers: 8}
	keep.applyDefaults()
	if keep.MaxWorkers != 8 {
		t.Fatalf("MaxWorkers=%d, custom value lost", keep.MaxWorkers)
	}
}
