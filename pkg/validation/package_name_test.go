// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePackageName_Valid(t *testing.T) {
	valid := []string{
		"eslint-plugin-react",
		"eslint-plugin-import-x",
		"eslint-plugin-n",
		"eslint-plugin-unicorn2",
		"@typescript-eslint/eslint-plugin",
		"@stylistic/eslint-plugin-ts",
		"@eslint-community/eslint-plugin-eslint-comments",
		"@scope123/eslint-plugin",
		AuxiliaryPackage,
	}

	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, ValidatePackageName(name))
		})
	}
}

func TestValidatePackageName_Invalid(t *testing.T) {
	invalid := []string{
		"",
		"react",
		"eslint-plugin-",
		"eslint-plugin",
		"eslint-plugin react",
		" eslint-plugin-react",
		"eslint-plugin-react ",
		"./local/plugin",
		"../outside/plugin",
		"/abs/plugin",
		"@scope/other-package",
		"@/eslint-plugin",
		"@scope/eslint-plugin-",
		"eslint-plugin-react@1.0.0",
		"eslint-plugin-react;rm -rf /",
		"@scope/eslint-plugin/../escape",
	}

	for _, name := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, ValidatePackageName(name))
		})
	}
}

func TestValidatePackageNames_RejectsWholeBatch(t *testing.T) {
	err := ValidatePackageNames([]string{
		"eslint-plugin-react",
		"./local/plugin",
		"not-a-plugin",
	})
	require.Error(t, err)

	// Every offender is listed, not just the first.
	assert.Contains(t, err.Error(), "./local/plugin")
	assert.Contains(t, err.Error(), "not-a-plugin")
	assert.NotContains(t, err.Error(), "eslint-plugin-react,")
}

func TestValidatePackageNames_AllValid(t *testing.T) {
	assert.NoError(t, ValidatePackageNames([]string{
		"eslint-plugin-react",
		"@typescript-eslint/eslint-plugin",
		AuxiliaryPackage,
	}))
}

func TestValidatePackageNames_Empty(t *testing.T) {
	assert.NoError(t, ValidatePackageNames(nil))
	assert.NoError(t, ValidatePackageNames([]string{}))
}
