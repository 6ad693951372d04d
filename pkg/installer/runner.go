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
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// CommandResult is the captured outcome of a completed subprocess.
//
// Output is captured rather than streamed so it can be inspected for
// failure signatures before being echoed to the console.
type CommandResult struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the process exit code; 0 on success.
	ExitCode int
}

// Combined returns stdout and stderr concatenated, for signature matching.
func (r *CommandResult) Combined() string {
	return r.Stdout + r.Stderr
}

// Runner executes an external command in a directory and captures its
// output.
//
// A nil error with a non-zero ExitCode means the process ran and failed;
// a non-nil error means the process could not be started at all. Tests
// substitute a fake via WithRunner.
type Runner func(ctx context.Context, dir, name string, args ...string) (*CommandResult, error)

// execRunner is the production Runner backed by os/exec.
//
// No timeout is applied here; the caller's context governs.
func execRunner(ctx context.Context, dir, name string, args ...string) (*CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		// Launch failure: the tool never ran.
		return nil, err
	}
	return result, nil
}
