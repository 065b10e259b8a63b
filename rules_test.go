package sng

import (
	"errors"
	"strings"
	"testing"

	"github.com/woozymasta/pathrules"
)

// includeRules builds include rules from raw patterns for concise test setup.
func includeRules(patterns ...string) []pathrules.Rule {
	rules := make([]pathrules.Rule, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		rules = append(rules, pathrules.Rule{
			Action:  pathrules.ActionInclude,
			Pattern: pattern,
		})
	}

	return rules
}

func TestSelectMatcherMatch(t *testing.T) {
	t.Parallel()

	matcher, err := newSelectMatcher(includeRules(
		"*.ogg",
		"charts/",
		"/audio/stems/**/*.opus",
	), pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	cases := []struct {
		name string
		path string
		want bool
	}{
		{name: "extension rule", path: `foo\bar\a.ogg`, want: true},
		{name: "dir-only rule", path: "songs/charts/expert.bin", want: true},
		{name: "anchored root match", path: "audio/stems/mix/a.opus", want: true},
		{name: "anchored root miss", path: "x/audio/stems/mix/a.opus", want: false},
		{name: "no match", path: "songs/video/intro.mp4", want: false},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := matcher.Match(tc.path)
			if got != tc.want {
				t.Fatalf("Match(%q) = %v, want %v", tc.path, got, tc.want)
			}
		})
	}
}

func TestSelectMatcherIncludeExcludeRules(t *testing.T) {
	t.Parallel()

	matcher, err := newSelectMatcher([]pathrules.Rule{
		{Action: pathrules.ActionInclude, Pattern: "stems/**"},
		{Action: pathrules.ActionExclude, Pattern: "stems/raw/**"},
		{Action: pathrules.ActionInclude, Pattern: "stems/raw/keep/**"},
	}, pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	if !matcher.Match("stems/guitar.ogg") {
		t.Fatal("stems/guitar.ogg must be included by rules")
	}

	if matcher.Match("stems/raw/take1.wav") {
		t.Fatal("stems/raw/take1.wav must be excluded by rules")
	}

	if !matcher.Match("STEMS/RAW/keep/take2.wav") {
		t.Fatal("STEMS/RAW/keep/take2.wav must be re-included by rules")
	}
}

func TestNewSelectMatcherInvalidRule(t *testing.T) {
	t.Parallel()

	_, err := newSelectMatcher([]pathrules.Rule{
		{
			Action:  pathrules.ActionUnknown,
			Pattern: "*.ogg",
		},
	}, pathrules.MatcherOptions{
		DefaultAction: pathrules.ActionExclude,
	})
	if !errors.Is(err, ErrInvalidSelectPattern) {
		t.Fatalf("expected ErrInvalidSelectPattern, got %v", err)
	}
}

func TestNewSelectMatcherEmptyRules(t *testing.T) {
	t.Parallel()

	matcher, err := newSelectMatcher(nil, pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}
	if matcher != nil {
		t.Fatal("expected nil matcher for empty rules")
	}

	blank, err := newSelectMatcher([]pathrules.Rule{
		{Action: pathrules.ActionInclude, Pattern: "   "},
	}, pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}
	if blank != nil {
		t.Fatal("expected nil matcher for blank-only patterns")
	}
}

func TestShouldExtractPolicy(t *testing.T) {
	t.Parallel()

	matcher, err := newSelectMatcher(includeRules("*.txt"), pathrules.MatcherOptions{
		CaseInsensitive: true,
		DefaultAction:   pathrules.ActionExclude,
	})
	if err != nil {
		t.Fatalf("new matcher: %v", err)
	}

	if !shouldExtract(matcher, "notes.txt") {
		t.Fatal("expected true for matched payload")
	}

	if shouldExtract(matcher, "notes.bin") {
		t.Fatal("expected false for unmatched payload")
	}

	if !shouldExtract(nil, "anything.bin") {
		t.Fatal("expected true when no matcher is configured")
	}
}
