// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package matrix

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSuite(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidSuite(t *testing.T) {
	path := writeSuite(t, `
entries:
  - name: vue-core
    repository: vuejs/core
    ref: v3.5.13
    command: oxlint -c .oxlintrc.json {options} .
    options: --deny-warnings
  - name: vite
    repository: vitejs/vite
    ref: main
    command: oxlint .
`)

	suite, err := Load(path)
	require.NoError(t, err)
	require.Len(t, suite.Entries, 2)

	assert.Equal(t, "vue-core", suite.Entries[0].Name)
	assert.Equal(t, "vuejs/core", suite.Entries[0].Repository)
	assert.Equal(t, "v3.5.13", suite.Entries[0].Ref)
	assert.Equal(t, "--deny-warnings", suite.Entries[0].Options)
	assert.Empty(t, suite.Entries[1].Options)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeSuite(t, "entries: [not: {closed")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EmptySuiteRejected(t *testing.T) {
	path := writeSuite(t, "entries: []")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	path := writeSuite(t, `
entries:
  - name: incomplete
    repository: org/repo
    ref: main
`)
	_, err := Load(path)
	require.Error(t, err, "command is required")
}

func TestLoad_RejectsBadRepositorySlug(t *testing.T) {
	tests := []struct {
		name string
		slug string
	}{
		{"no slash", "justaname"},
		{"extra segment", "org/repo/extra"},
		{"url instead of slug", "https://github.com/org/repo"},
		{"parent traversal", "../escape"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, `
entries:
  - name: bad
    repository: "`+tt.slug+`"
    ref: main
    command: oxlint .
`)
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestRenderCommand(t *testing.T) {
	tests := []struct {
		name    string
		command string
		options string
		want    string
	}{
		{"placeholder replaced", "oxlint {options} .", "--deny-warnings", "oxlint --deny-warnings ."},
		{"empty options trimmed", "oxlint {options}", "", "oxlint"},
		{"no placeholder untouched", "oxlint -c cfg.json .", "--quiet", "oxlint -c cfg.json ."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderCommand(Entry{Command: tt.command, Options: tt.options})
			assert.Equal(t, tt.want, got)
		})
	}
}
