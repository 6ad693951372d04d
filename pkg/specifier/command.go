// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package specifier

import (
	"regexp"
	"strings"
)

// configFlagPattern matches -c/--config followed by a single-quoted,
// double-quoted, or bare (whitespace-delimited) argument.
//
// Quoted arguments may contain spaces; the quotes themselves are not part
// of the captured path.
var configFlagPattern = regexp.MustCompile(`(?:^|\s)(?:--config|-c)(?:\s+|=)(?:'([^']*)'|"([^"]*)"|(\S+))`)

// IsSkipped reports whether the command string marks a disabled entry.
//
// Matrix entries are deliberately disabled by putting the standalone word
// "skip" in their command (e.g. `echo "skip"`); such an entry must be
// ignored without any file access. Substrings like --skip-unused do not
// count: the word has to stand on its own, possibly quoted.
func IsSkipped(command string) bool {
	for _, field := range strings.Fields(command) {
		if strings.Trim(field, `"'`) == "skip" {
			return true
		}
	}
	return false
}

// ConfigPaths extracts every -c/--config flag argument from a shell-style
// command string, in order of appearance.
//
// The paths are returned verbatim (spaces inside quotes preserved) and are
// not resolved or checked for existence.
//
// Examples:
//
//	ConfigPaths(`oxlint -c .oxlintrc.json`)          -> [".oxlintrc.json"]
//	ConfigPaths(`oxlint --config "my config.json"`)  -> ["my config.json"]
//	ConfigPaths(`oxlint --config='cfg.json' -c a.json`) -> ["cfg.json", "a.json"]
func ConfigPaths(command string) []string {
	var paths []string
	for _, m := range configFlagPattern.FindAllStringSubmatch(command, -1) {
		// Exactly one of the three alternatives captured.
		for _, group := range m[1:] {
			if group != "" {
				paths = append(paths, group)
				break
			}
		}
	}
	return paths
}
