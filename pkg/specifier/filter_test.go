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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/validation"
)

func TestFilterInstallable_Accepts(t *testing.T) {
	raw := []string{
		"eslint-plugin-react",
		"eslint-plugin-import-x",
		"@typescript-eslint/eslint-plugin",
		"@stylistic/eslint-plugin-ts",
		validation.AuxiliaryPackage,
	}

	got := FilterInstallable(raw, logging.Discard())
	assert.Equal(t, raw, got, "all plugin-shaped names pass through in order")
}

func TestFilterInstallable_Rejects(t *testing.T) {
	raw := []string{
		"./local/myplugin",
		"../outside/plugin",
		"/abs/path/plugin",
		"react",
		"lodash",
		"eslint-plugin-",
		"@scope/other-package",
		"eslint plugin react",
		"eslint-plugin-react extra",
	}

	got := FilterInstallable(raw, logging.Discard())
	assert.Empty(t, got)
}

func TestFilterInstallable_DeduplicatesTrimVariants(t *testing.T) {
	raw := []string{
		"eslint-plugin-react",
		" eslint-plugin-react",
		"eslint-plugin-react ",
		"\teslint-plugin-react\t",
	}

	got := FilterInstallable(raw, logging.Discard())
	assert.Equal(t, []string{"eslint-plugin-react"}, got)
}

func TestFilterInstallable_PreservesFirstOccurrenceOrder(t *testing.T) {
	raw := []string{
		"eslint-plugin-b",
		"eslint-plugin-a",
		"eslint-plugin-b",
		"eslint-plugin-c",
	}

	got := FilterInstallable(raw, logging.Discard())
	assert.Equal(t, []string{"eslint-plugin-b", "eslint-plugin-a", "eslint-plugin-c"}, got)
}

func TestFilterInstallable_Idempotent(t *testing.T) {
	raw := []string{
		"eslint-plugin-react",
		"./local/plugin",
		"@typescript-eslint/eslint-plugin",
		"eslint-plugin-react",
		validation.AuxiliaryPackage,
	}

	once := FilterInstallable(raw, logging.Discard())
	twice := FilterInstallable(once, logging.Discard())
	assert.Equal(t, once, twice)
}

func TestFilterInstallable_Scenario(t *testing.T) {
	// End-to-end shape: raw set from a config with one real plugin and one
	// local path, after the collector added the auxiliary package for the
	// local plugin.
	raw := []string{
		"eslint-plugin-foo",
		"./local/myplugin",
		validation.AuxiliaryPackage,
	}

	got := FilterInstallable(raw, logging.Discard())
	assert.Equal(t, []string{"eslint-plugin-foo", validation.AuxiliaryPackage}, got)
}

func TestFilterInstallable_Empty(t *testing.T) {
	assert.Empty(t, FilterInstallable(nil, logging.Discard()))
	assert.Empty(t, FilterInstallable([]string{"", "  "}, logging.Discard()))
}
