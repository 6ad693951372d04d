// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package artifact materializes a prebuilt oxlint binary into a target
// checkout's node_modules.
//
// CI builds the binary once; each matrix entry then gets a copy at
// node_modules/.bin/oxlint so the entry's command can invoke it as if it
// had been installed from the registry.
package artifact

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

// BinaryName is the installed artifact name.
const BinaryName = "oxlint"

// candidateLocations are conventional relative locations of the prebuilt
// binary, probed in order.
var candidateLocations = []string{
	"oxlint",
	filepath.Join("target", "release", "oxlint"),
	filepath.Join("..", "oxc", "target", "release", "oxlint"),
}

// Install copies the prebuilt binary into workDir/node_modules/.bin.
//
// Description:
//
//	Probes the candidate locations (relative to workDir) and copies the
//	first hit, preserving the executable bit. An already-present
//	destination is never overwritten. A missing artifact is not an
//	error: artifact installation is a best-effort convenience, and some
//	matrix commands bring their own binary.
//
// Inputs:
//
//	workDir - Target repository checkout
//	log - Destination for probe and copy decisions
//
// Outputs:
//
//	bool - Whether the binary is available at the destination (freshly
//	       copied or already present); false when no artifact was found
//	error - Non-nil only when a found artifact could not be copied
func Install(workDir string, log *logging.Logger) (bool, error) {
	src := locate(workDir)
	if src == "" {
		log.Warn("prebuilt binary not found, skipping artifact install",
			"binary", BinaryName,
			"dir", workDir)
		return false, nil
	}

	binDir := filepath.Join(workDir, "node_modules", ".bin")
	dst := filepath.Join(binDir, binaryFileName())

	if _, err := os.Lstat(dst); err == nil {
		log.Info("artifact already present, not overwriting", "path", dst)
		return true, nil
	}

	if err := os.MkdirAll(binDir, 0755); err != nil {
		return false, fmt.Errorf("creating %s: %w", binDir, err)
	}
	if err := copyExecutable(src, dst); err != nil {
		return false, fmt.Errorf("installing artifact %s: %w", src, err)
	}

	log.Info("artifact installed", "src", src, "dst", dst)
	return true, nil
}

// locate returns the first existing candidate path, or "".
func locate(workDir string) string {
	for _, rel := range candidateLocations {
		candidate := filepath.Join(workDir, withExeSuffix(rel))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// binaryFileName returns the destination file name for this platform.
func binaryFileName() string {
	return withExeSuffix(BinaryName)
}

// withExeSuffix appends .exe on Windows.
func withExeSuffix(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// copyExecutable copies src to dst with the executable bit set.
func copyExecutable(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
