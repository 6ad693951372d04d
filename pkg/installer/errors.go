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
	"errors"
	"fmt"
)

// Sentinel errors for the installer package.
var (
	// ErrInvalidSpecifier indicates a package name reached the installer
	// without matching the allowlist. This is a defense-in-depth violation:
	// the batch is aborted, nothing is installed.
	ErrInvalidSpecifier = errors.New("invalid specifier reached installer")

	// ErrInstallFailed indicates the install tool exited non-zero for a
	// reason other than the workspace-protocol pattern.
	ErrInstallFailed = errors.New("package install failed")

	// ErrFallbackFailed indicates the isolated temp-directory install
	// failed. There is no further fallback.
	ErrFallbackFailed = errors.New("fallback install failed")
)

// InstallError wraps an installation failure with enough context to
// diagnose it from CI logs alone.
//
// Thread Safety: Immutable after creation.
type InstallError struct {
	// Packages is the install plan that failed.
	Packages []string

	// Dir is the directory the install targeted.
	Dir string

	// ExitCode is the subprocess exit code, or -1 when the process never
	// started.
	ExitCode int

	// Output is the captured stdout/stderr of the failing subprocess.
	Output string

	// Err is the underlying sentinel error.
	Err error
}

// Error implements the error interface.
func (e *InstallError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("%v: packages %v in %s (exit code %d)", e.Err, e.Packages, e.Dir, e.ExitCode)
	}
	return fmt.Sprintf("%v: packages %v in %s", e.Err, e.Packages, e.Dir)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *InstallError) Unwrap() error {
	return e.Err
}

// newInstallError creates an InstallError for the given plan and directory.
func newInstallError(err error, packages []string, dir string, exitCode int, output string) *InstallError {
	return &InstallError{
		Packages: packages,
		Dir:      dir,
		ExitCode: exitCode,
		Output:   output,
		Err:      err,
	}
}
