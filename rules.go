// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/sng

package sng

import (
	"fmt"

	"github.com/woozymasta/pathrules"
)

// selectMatcher holds compiled payload selection rules for extraction.
type selectMatcher struct {
	matcher *pathrules.Matcher
}

// newSelectMatcher compiles payload selection path rules.
func newSelectMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*selectMatcher, error) {
	rules = normalizeSelectRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidSelectPattern, err)
	}

	return &selectMatcher{matcher: matcher}, nil
}

// normalizeSelectRules normalizes rule patterns and drops empty patterns.
func normalizeSelectRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := normalizePathForMatching(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether name is included by at least one select rule.
func (m *selectMatcher) Match(name string) bool {
	if m == nil || m.matcher == nil {
		return false
	}

	candidate := NormalizePath(name)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// shouldExtract reports whether a payload passes selection policy.
// A nil matcher selects every payload.
func shouldExtract(matcher *selectMatcher, name string) bool {
	if matcher == nil {
		return true
	}

	return matcher.Match(name)
}
