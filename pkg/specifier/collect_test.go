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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/validation"
)

func TestCollect_FromFlagConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "configs", "custom.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-foo", "./local/myplugin"]}`),
		0644,
	))

	set := Collect(`oxlint -c ./configs/custom.json`, dir, logging.Discard())

	assert.True(t, set.Has("eslint-plugin-foo"))
	assert.True(t, set.Has("./local/myplugin"))
	// Local plugin implies the runtime support package.
	assert.True(t, set.Has(validation.AuxiliaryPackage))
	assert.Equal(t, 3, set.Len())
}

func TestCollect_SkipDoesNoFileAccess(t *testing.T) {
	// Working directory that does not exist: a skip entry must return
	// before touching the filesystem.
	set := Collect(`echo "skip"`, "/nonexistent/dir", logging.Discard())
	assert.Equal(t, 0, set.Len())
}

func TestCollect_SkipWinsOverFlags(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "cfg.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-react"]}`),
		0644,
	))

	set := Collect(`skip -c cfg.json`, dir, logging.Discard())
	assert.Equal(t, 0, set.Len())
}

func TestCollect_DefaultConfigFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-react"]}`),
		0644,
	))

	set := Collect(`oxlint .`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-react"))
	assert.Equal(t, 1, set.Len())
}

func TestCollect_DefaultConfigOrder(t *testing.T) {
	dir := t.TempDir()
	// Both default names exist; only the first listed is read.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-first"]}`),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "oxlint.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-second"]}`),
		0644,
	))

	set := Collect(`oxlint .`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-first"))
	assert.False(t, set.Has("eslint-plugin-second"))
}

func TestCollect_CollectedFlagSpecifiersSuppressFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "custom.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-flagged"]}`),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-default"]}`),
		0644,
	))

	set := Collect(`oxlint -c custom.json`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-flagged"))
	assert.False(t, set.Has("eslint-plugin-default"))
	assert.Equal(t, 1, set.Len())
}

func TestCollect_MissingFlagConfigFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	// The flagged path does not exist; the conventional filename still
	// applies because the flag yielded nothing.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-default"]}`),
		0644,
	))

	set := Collect(`oxlint -c absent.json`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-default"))
	assert.Equal(t, 1, set.Len())
}

func TestCollect_EmptyFlagConfigFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "empty.json"),
		[]byte(`{"jsPlugins": []}`),
		0644,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-default"]}`),
		0644,
	))

	set := Collect(`oxlint -c empty.json`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-default"))
	assert.Equal(t, 1, set.Len())
}

func TestCollect_QuotedPathWithSpace(t *testing.T) {
	dir := t.TempDir()

	// File absent: extraction must still resolve the path verbatim and
	// parsing must fail softly.
	set := Collect(`oxlint --config "my config.json"`, dir, logging.Discard())
	assert.Equal(t, 0, set.Len())

	// Now create it and collect again.
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "my config.json"),
		[]byte(`{"jsPlugins": ["eslint-plugin-react"]}`),
		0644,
	))
	set = Collect(`oxlint --config "my config.json"`, dir, logging.Discard())
	assert.True(t, set.Has("eslint-plugin-react"))
}

func TestCollect_AbsoluteConfigPath(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "abs.json")
	require.NoError(t, os.WriteFile(
		cfgPath,
		[]byte(`{"jsPlugins": ["eslint-plugin-react"]}`),
		0644,
	))

	set := Collect(`oxlint -c `+cfgPath, "/somewhere/else", logging.Discard())
	assert.True(t, set.Has("eslint-plugin-react"))
}

func TestCollect_NoConfigAnywhere(t *testing.T) {
	set := Collect(`oxlint .`, t.TempDir(), logging.Discard())
	assert.Equal(t, 0, set.Len())
}

func TestCollect_AuxiliaryAddedOnce(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".oxlintrc.json"),
		[]byte(`{"jsPlugins": ["./a.js", "../b.js", "./c.js"]}`),
		0644,
	))

	set := Collect(`oxlint .`, dir, logging.Discard())
	assert.True(t, set.Has(validation.AuxiliaryPackage))
	// 3 locals + 1 auxiliary.
	assert.Equal(t, 4, set.Len())
}

func TestSet_TrimAndDedupe(t *testing.T) {
	set := NewSet()
	set.Add(" eslint-plugin-react ")
	set.Add("eslint-plugin-react")
	set.Add("eslint-plugin-react\t")
	set.Add("   ")
	set.Add("")

	assert.Equal(t, 1, set.Len())
	assert.Equal(t, []string{"eslint-plugin-react"}, set.Sorted())
}

func TestSet_CasePreserved(t *testing.T) {
	set := NewSet()
	set.Add("eslint-plugin-React")
	set.Add("eslint-plugin-react")

	// npm names are case-sensitive: both survive.
	assert.Equal(t, 2, set.Len())
}
