// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package specifier resolves plugin package specifiers for a matrix entry.
//
// A specifier is a string naming a plugin: either an installable npm package
// name (eslint-plugin-react, @typescript-eslint/eslint-plugin) or a local
// filesystem reference (./rules/my-plugin.js). Specifiers are collected from
// the lint configuration files a target repository's command line points at,
// then filtered down to the subset that is safe to install.
//
// Pipeline:
//
//	ConfigPaths + ParseConfig -> Collect -> FilterInstallable
//
// The filter is the first of two independent allowlist checks; the installer
// re-validates the batch with pkg/validation immediately before spawning the
// install tool.
package specifier

import (
	"sort"
	"strings"
)

// Set is a collection of unique specifiers gathered during one resolution
// pass.
//
// Specifiers are trimmed on insert and compared after trimming; case is
// preserved because npm package names are case-sensitive. Insertion order
// is not retained; use Sorted for deterministic iteration.
//
// A Set is created fresh per invocation and is not safe for concurrent use.
type Set struct {
	items map[string]struct{}
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{items: make(map[string]struct{})}
}

// Add inserts a specifier, trimming surrounding whitespace first.
// Empty (or all-whitespace) specifiers are ignored.
func (s *Set) Add(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}
	s.items[trimmed] = struct{}{}
}

// AddAll inserts every specifier in the slice.
func (s *Set) AddAll(raw []string) {
	for _, r := range raw {
		s.Add(r)
	}
}

// Has reports whether the trimmed form of raw is in the set.
func (s *Set) Has(raw string) bool {
	_, ok := s.items[strings.TrimSpace(raw)]
	return ok
}

// Len returns the number of unique specifiers.
func (s *Set) Len() int {
	return len(s.items)
}

// Sorted returns the specifiers in lexical order.
func (s *Set) Sorted() []string {
	out := make([]string, 0, len(s.items))
	for item := range s.items {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// isLocalPath reports whether a specifier is a relative in-repository
// reference rather than a registry package name.
func isLocalPath(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../")
}
