// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package artifact

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

func TestInstall_CopiesFromFirstCandidate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, withExeSuffix("oxlint")), []byte("#!binary"), 0755))

	installed, err := Install(dir, logging.Discard())
	require.NoError(t, err)
	assert.True(t, installed)

	dst := filepath.Join(dir, "node_modules", ".bin", binaryFileName())
	info, err := os.Stat(dst)
	require.NoError(t, err)
	if runtime.GOOS != "windows" {
		assert.NotZero(t, info.Mode().Perm()&0111, "executable bit must be set")
	}

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "#!binary", string(data))
}

func TestInstall_TargetReleaseLocation(t *testing.T) {
	dir := t.TempDir()
	release := filepath.Join(dir, "target", "release")
	require.NoError(t, os.MkdirAll(release, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(release, withExeSuffix("oxlint")), []byte("bin"), 0755))

	installed, err := Install(dir, logging.Discard())
	require.NoError(t, err)
	assert.True(t, installed)
	assert.FileExists(t, filepath.Join(dir, "node_modules", ".bin", binaryFileName()))
}

func TestInstall_MissingArtifactIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	installed, err := Install(dir, logging.Discard())
	require.NoError(t, err)
	assert.False(t, installed, "missing artifact is reported, not installed")
	assert.NoFileExists(t, filepath.Join(dir, "node_modules", ".bin", binaryFileName()))
}

func TestInstall_NeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, withExeSuffix("oxlint")), []byte("new"), 0755))

	binDir := filepath.Join(dir, "node_modules", ".bin")
	require.NoError(t, os.MkdirAll(binDir, 0755))
	dst := filepath.Join(binDir, binaryFileName())
	require.NoError(t, os.WriteFile(dst, []byte("existing"), 0755))

	installed, err := Install(dir, logging.Discard())
	require.NoError(t, err)
	assert.True(t, installed, "an existing binary still counts as available")

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestLocate_IgnoresDirectories(t *testing.T) {
	dir := t.TempDir()
	// A directory named like the binary is not an artifact.
	require.NoError(t, os.MkdirAll(filepath.Join(dir, withExeSuffix("oxlint")), 0755))
	assert.Empty(t, locate(dir))
}
