// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

// nodeModulesDir is the package-metadata subtree of a checkout.
const nodeModulesDir = "node_modules"

// mergeSkipEntries are npm bookkeeping entries never copied during merge.
var mergeSkipEntries = map[string]bool{
	".bin":               true,
	".package-lock.json": true,
}

// fallbackInstall installs the plan in a fresh temp directory and merges
// the result into dir.
//
// A workspace checkout's own manifest is what broke the primary install,
// so the temp directory is deliberately uncontaminated by it: a minimal
// private package.json, the requested packages, and every peer dependency
// the registry declares for them (an isolated install has no host project
// to satisfy peers).
//
// The temp directory is uniquely named per invocation and removed
// regardless of merge outcome; removal failure is logged, not surfaced.
func (i *Installer) fallbackInstall(ctx context.Context, packages []string, dir string) error {
	withPeers := i.discoverPeers(ctx, packages)

	tempDir := filepath.Join(i.tempRoot, "oxlint-plugins-"+uuid.NewString())
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("%w: creating temp dir: %v", ErrFallbackFailed, err)
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			i.log.Warn("could not remove temp install dir", "dir", tempDir, "error", err.Error())
		}
	}()

	if err := writeMinimalManifest(tempDir); err != nil {
		return fmt.Errorf("%w: %v", ErrFallbackFailed, err)
	}

	i.log.Info("isolated install in temp directory",
		"dir", tempDir,
		"packages", withPeers)

	args := append([]string{"install", "--ignore-scripts"}, withPeers...)
	result, err := i.runner(ctx, tempDir, installTool, args...)
	if err != nil {
		return newInstallError(ErrFallbackFailed, withPeers, tempDir, -1, err.Error())
	}
	i.echo(result)
	if result.ExitCode != 0 {
		return newInstallError(ErrFallbackFailed, withPeers, tempDir, result.ExitCode, result.Combined())
	}

	if err := mergeNodeModules(filepath.Join(tempDir, nodeModulesDir), filepath.Join(dir, nodeModulesDir), i.log); err != nil {
		return fmt.Errorf("%w: merging into %s: %v", ErrFallbackFailed, dir, err)
	}

	i.log.Info("fallback install merged", "packages", packages, "dir", dir)
	return nil
}

// discoverPeers returns packages plus every peer dependency the registry
// declares for them, deduplicated, in discovery order.
//
// A lookup failure for one package is logged and skipped; the fallback
// proceeds with whatever was found.
func (i *Installer) discoverPeers(ctx context.Context, packages []string) []string {
	merged := make([]string, 0, len(packages))
	seen := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		if !seen[pkg] {
			seen[pkg] = true
			merged = append(merged, pkg)
		}
	}

	for _, pkg := range packages {
		peers, err := i.registry.PeerDependencies(ctx, pkg)
		if err != nil {
			i.log.Warn("peer dependency lookup failed",
				"package", pkg,
				"error", err.Error())
			continue
		}
		for _, peer := range peers {
			if !seen[peer] {
				seen[peer] = true
				merged = append(merged, peer)
				i.log.Info("discovered peer dependency", "package", pkg, "peer", peer)
			}
		}
	}
	return merged
}

// writeMinimalManifest writes a private package.json so the install tool
// does not walk up and find a host project manifest.
func writeMinimalManifest(dir string) error {
	manifest := map[string]any{
		"name":    "oxlint-plugin-install",
		"version": "0.0.0",
		"private": true,
	}
	data, err := json.Marshal(manifest)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), data, 0644)
}

// mergeNodeModules copies package entries from src into dst without
// overwriting any pre-existing entry (first-writer-wins, so packages
// already installed in the target are never clobbered).
//
// Scoped directories (@scope/...) are merged one level deeper so that an
// existing @scope/a does not block a new @scope/b.
func mergeNodeModules(src, dst string, log *logging.Logger) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if mergeSkipEntries[name] {
			continue
		}

		srcPath := filepath.Join(src, name)
		dstPath := filepath.Join(dst, name)

		if strings.HasPrefix(name, "@") && entry.IsDir() {
			scoped, err := os.ReadDir(srcPath)
			if err != nil {
				return fmt.Errorf("reading %s: %w", srcPath, err)
			}
			if err := os.MkdirAll(dstPath, 0755); err != nil {
				return fmt.Errorf("creating %s: %w", dstPath, err)
			}
			for _, pkg := range scoped {
				if err := copyIfAbsent(filepath.Join(srcPath, pkg.Name()), filepath.Join(dstPath, pkg.Name()), log); err != nil {
					return err
				}
			}
			continue
		}

		if err := copyIfAbsent(srcPath, dstPath, log); err != nil {
			return err
		}
	}
	return nil
}

// copyIfAbsent copies src to dst unless dst already exists.
func copyIfAbsent(src, dst string, log *logging.Logger) error {
	if _, err := os.Lstat(dst); err == nil {
		log.Debug("merge keeping pre-existing entry", "path", dst)
		return nil
	}
	return copyTree(src, dst)
}

// copyTree recursively copies a file tree, preserving permissions and
// recreating symlinks.
func copyTree(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)

	case info.IsDir():
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		entries, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := copyTree(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
				return err
			}
		}
		return nil

	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

// copyFile copies a regular file with the given permissions.
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
