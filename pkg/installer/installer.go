// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package installer installs validated plugin packages into a target
// repository's node_modules.
//
// The primary path is a plain `npm install` with lifecycle scripts
// disabled. Monorepo checkouts whose package.json uses the workspace:
// link protocol make that fail, because the protocol only resolves inside
// its origin workspace; for those, the installer falls back to an
// isolated install in a fresh temp directory (augmented with each
// package's registry-declared peer dependencies) and merges the resulting
// tree into the target without overwriting anything already present.
//
// State machine:
//
//	validate batch -> primary install
//	                    |-- ok ............................ done
//	                    |-- workspace-protocol failure .... fallback
//	                    |       discover peers
//	                    |       isolated temp install
//	                    |       merge (first-writer-wins)
//	                    |       cleanup temp dir
//	                    '-- any other failure ............. fatal
package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/npm"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/validation"
)

// installTool is the package-installation executable.
const installTool = "npm"

// workspaceProtocolSignatures identify install failures caused by the
// workspace: link protocol. Only these trigger the fallback; every other
// failure is fatal.
var workspaceProtocolSignatures = []string{
	`Unsupported URL Type "workspace:"`,
	"EUNSUPPORTEDPROTOCOL",
	"workspace: protocol",
}

// Registry looks up registry metadata for the fallback path.
//
// *npm.Client satisfies this; tests substitute a stub.
type Registry interface {
	PeerDependencies(ctx context.Context, pkg string) ([]string, error)
}

// Installer installs plugin packages into a target directory.
//
// Create with New; the zero value is not usable. An Installer is
// stateless across Install calls and safe for sequential reuse. It
// assumes exclusive access to the target directory for the duration of a
// call; no coordination is provided for concurrent installs into the same
// directory.
type Installer struct {
	runner   Runner
	registry Registry
	tempRoot string
	log      *logging.Logger

	// stdout/stderr receive the echoed subprocess output.
	stdout io.Writer
	stderr io.Writer
}

// InstallerOption configures an Installer.
type InstallerOption func(*Installer)

// WithRunner substitutes the subprocess runner (tests).
func WithRunner(r Runner) InstallerOption {
	return func(i *Installer) {
		i.runner = r
	}
}

// WithRegistry substitutes the registry client.
func WithRegistry(r Registry) InstallerOption {
	return func(i *Installer) {
		i.registry = r
	}
}

// WithTempRoot places fallback temp directories under root instead of
// the system temp directory.
func WithTempRoot(root string) InstallerOption {
	return func(i *Installer) {
		i.tempRoot = root
	}
}

// WithLogger substitutes the logger.
func WithLogger(log *logging.Logger) InstallerOption {
	return func(i *Installer) {
		i.log = log
	}
}

// WithOutput redirects the echoed subprocess output (tests).
func WithOutput(stdout, stderr io.Writer) InstallerOption {
	return func(i *Installer) {
		i.stdout = stdout
		i.stderr = stderr
	}
}

// New creates an Installer with production defaults: a real subprocess
// runner, the public npm registry, and the system temp directory.
func New(opts ...InstallerOption) *Installer {
	inst := &Installer{
		runner:   execRunner,
		registry: npm.New(),
		tempRoot: os.TempDir(),
		log:      logging.Default(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(inst)
	}
	return inst
}

// Install installs the validated package plan into dir's node_modules.
//
// Description:
//
//	Re-validates the batch against the package-name allowlist (the filter
//	upstream already checked once; a mismatch here aborts everything),
//	then runs the primary install with lifecycle scripts disabled. A
//	workspace-protocol failure triggers the temp-directory fallback; any
//	other failure is returned as an *InstallError carrying the exit code.
//
// Inputs:
//
//	ctx - Context for cancellation (no timeout is imposed here)
//	packages - Ordered, deduplicated plan of validated package names
//	dir - Target repository checkout
//
// Outputs:
//
//	error - nil on success or when there was nothing to install
func (i *Installer) Install(ctx context.Context, packages []string, dir string) error {
	if len(packages) == 0 {
		i.log.Info("No plugin packages to install.")
		return nil
	}

	// Defense in depth: nothing unvalidated may reach the install tool.
	if err := validation.ValidatePackageNames(packages); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSpecifier, err)
	}

	i.log.Info("installing plugin packages",
		"packages", packages,
		"dir", dir,
		"tool", installTool)

	args := append([]string{"install", "--no-save", "--ignore-scripts"}, packages...)
	result, err := i.runner(ctx, dir, installTool, args...)
	if err != nil {
		// The tool never started. A workspace-protocol message in the
		// launch error still routes to fallback; anything else is fatal.
		if isWorkspaceProtocolFailure(err.Error()) {
			i.log.Warn("primary install could not start, workspace protocol suspected",
				"error", err.Error())
			return i.fallbackInstall(ctx, packages, dir)
		}
		return newInstallError(ErrInstallFailed, packages, dir, -1, err.Error())
	}

	i.echo(result)

	if result.ExitCode == 0 {
		i.log.Info("plugin packages installed", "packages", packages, "dir", dir)
		return nil
	}

	if isWorkspaceProtocolFailure(result.Combined()) {
		i.log.Warn("primary install hit workspace protocol, falling back to isolated install",
			"exit_code", result.ExitCode,
			"dir", dir)
		return i.fallbackInstall(ctx, packages, dir)
	}

	i.log.Error("primary install failed",
		"packages", packages,
		"dir", dir,
		"exit_code", result.ExitCode)
	return newInstallError(ErrInstallFailed, packages, dir, result.ExitCode, result.Combined())
}

// echo forwards captured subprocess output to the console so CI logs show
// exactly what the tool printed.
func (i *Installer) echo(result *CommandResult) {
	if result.Stdout != "" {
		fmt.Fprint(i.stdout, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(i.stderr, result.Stderr)
	}
}

// isWorkspaceProtocolFailure reports whether output matches a known
// workspace-protocol-unsupported signature.
func isWorkspaceProtocolFailure(output string) bool {
	for _, sig := range workspaceProtocolSignatures {
		if strings.Contains(output, sig) {
			return true
		}
	}
	return false
}
