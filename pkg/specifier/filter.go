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
	"unicode"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/validation"
)

// Allowlist patterns for installable plugin packages.
//
// These are written independently from pkg/validation's pattern on
// purpose: the installer re-checks its batch with that package right
// before spawning, and two separately-authored checks have to both be
// wrong to let a bad name through.
var (
	// eslint-plugin-<name>, name restricted to word chars and dashes.
	unscopedPluginPattern = regexp.MustCompile(`^eslint-plugin-[A-Za-z0-9_-]+$`)

	// @<scope>/eslint-plugin or @<scope>/eslint-plugin-<name>.
	scopedPluginPattern = regexp.MustCompile(`^@[A-Za-z0-9_-]+/eslint-plugin(?:-[A-Za-z0-9_-]+)?$`)
)

// FilterInstallable reduces a raw specifier collection to the ordered,
// deduplicated subset that is safe and meaningful to install as packages.
//
// Description:
//
//	Rejects entries containing whitespace, filesystem paths (./, ../, or
//	absolute), and anything that is not plugin-shaped. This allowlist is
//	the security boundary before specifiers reach an installer capable of
//	arbitrary network fetches; rejection reasons are logged per entry.
//
//	The function is idempotent: running it on its own output returns the
//	identical list.
//
// Inputs:
//
//	raw - Specifiers in collection order (duplicates allowed)
//	log - Destination for per-entry discard decisions
//
// Outputs:
//
//	[]string - Validated package names, first-occurrence order, deduplicated
func FilterInstallable(raw []string, log *logging.Logger) []string {
	var plan []string
	seen := make(map[string]struct{}, len(raw))

	for _, r := range raw {
		spec := strings.TrimSpace(r)
		if spec == "" {
			continue
		}
		if _, dup := seen[spec]; dup {
			continue
		}
		seen[spec] = struct{}{}

		if !installable(spec, log) {
			continue
		}
		plan = append(plan, spec)
	}
	return plan
}

// installable applies the allowlist to a single trimmed specifier.
func installable(spec string, log *logging.Logger) bool {
	if strings.ContainsFunc(spec, unicode.IsSpace) {
		log.Info("discarding specifier with whitespace", "specifier", spec)
		return false
	}
	if isLocalPath(spec) || strings.HasPrefix(spec, "/") {
		log.Info("discarding filesystem path specifier", "specifier", spec)
		return false
	}
	if spec == validation.AuxiliaryPackage {
		return true
	}
	if unscopedPluginPattern.MatchString(spec) || scopedPluginPattern.MatchString(spec) {
		return true
	}
	log.Info("discarding non-plugin specifier", "specifier", spec)
	return false
}
