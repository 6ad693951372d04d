// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package matrix drives the ecosystem test matrix: a YAML suite of pinned
// repositories, each with a shell command to run against the binary under
// test.
//
// Entries are processed strictly one at a time, in suite order. A plugin
// installation failure for one entry is logged and recorded but does not
// abort the remaining entries; the aggregate result is reported at the
// end.
package matrix

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// suiteValidate is the validator instance for suite files.
var suiteValidate = validator.New()

func init() {
	_ = suiteValidate.RegisterValidation("reposlug", validateRepoSlug)
}

// repoSlugPattern matches "org/repo" GitHub slugs.
var repoSlugPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)

// validateRepoSlug validates that a field is an org/repo slug.
//
// The slug is later interpolated into a clone URL, so it must not smuggle
// path separators beyond the single "/", and neither segment may be a
// dot-only traversal component.
func validateRepoSlug(fl validator.FieldLevel) bool {
	slug := fl.Field().String()
	if !repoSlugPattern.MatchString(slug) {
		return false
	}
	for _, segment := range strings.Split(slug, "/") {
		if strings.Trim(segment, ".") == "" {
			return false
		}
	}
	return true
}

// Entry is one target repository in the test matrix.
//
// Entries are read-only input: the runner never mutates them.
type Entry struct {
	// Name identifies the entry in logs and checkout paths.
	Name string `yaml:"name" validate:"required"`

	// Repository is the GitHub "org/repo" slug to clone.
	Repository string `yaml:"repository" validate:"required,reposlug"`

	// Ref is the pinned branch or tag cloned for reproducible runs.
	Ref string `yaml:"ref" validate:"required"`

	// Command is the shell command executed inside the checkout. The
	// standalone word "skip" disables the entry.
	Command string `yaml:"command" validate:"required"`

	// Options carries optional formatter configuration interpolated into
	// the command template as {options}.
	Options string `yaml:"options"`
}

// Suite is a parsed matrix file.
type Suite struct {
	// Entries are processed in order.
	Entries []Entry `yaml:"entries" validate:"required,min=1,dive"`
}

// Load reads and validates a YAML suite file.
//
// Description:
//
//	Unlike lint configs from cloned repositories, the suite file is this
//	repository's own input; a malformed suite is a hard error, not a
//	warning.
//
// Inputs:
//
//	path - Path to the suite YAML
//
// Outputs:
//
//	*Suite - The validated suite
//	error - Non-nil on read, parse, or validation failure
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite %s: %w", path, err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}

	if err := suiteValidate.Struct(&suite); err != nil {
		return nil, fmt.Errorf("invalid suite %s: %w", path, err)
	}
	return &suite, nil
}
