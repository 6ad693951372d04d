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
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/artifact"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/console"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/installer"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/specifier"
)

// optionsPlaceholder is replaced in entry commands with Entry.Options.
const optionsPlaceholder = "{options}"

// PluginInstaller installs plugin packages into a checkout.
type PluginInstaller interface {
	Install(ctx context.Context, packages []string, dir string) error
}

// ShellRunner executes an entry command inside its checkout. Production
// uses sh -c with node_modules/.bin prepended to PATH; tests substitute
// a fake.
type ShellRunner func(ctx context.Context, dir, command string, stdout, stderr io.Writer) error

// execShell runs command through the shell with the checkout's local
// binaries taking precedence.
func execShell(ctx context.Context, dir, command string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	binDir := filepath.Join(dir, "node_modules", ".bin")
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("PATH=%s%c%s", binDir, os.PathListSeparator, os.Getenv("PATH")))

	return cmd.Run()
}

// EntryResult records the outcome of one matrix entry.
type EntryResult struct {
	Entry   Entry
	Skipped bool
	Err     error
}

// Runner drives a suite end to end.
type Runner struct {
	root      string
	cloner    *Cloner
	installer PluginInstaller
	shell     ShellRunner
	log       *logging.Logger
	stdout    io.Writer
	stderr    io.Writer
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithCloner substitutes the cloner.
func WithCloner(c *Cloner) RunnerOption {
	return func(r *Runner) {
		r.cloner = c
	}
}

// WithInstaller substitutes the plugin installer.
func WithInstaller(inst PluginInstaller) RunnerOption {
	return func(r *Runner) {
		r.installer = inst
	}
}

// WithShellRunner substitutes the entry command executor (tests).
func WithShellRunner(s ShellRunner) RunnerOption {
	return func(r *Runner) {
		r.shell = s
	}
}

// WithLogger substitutes the logger.
func WithLogger(log *logging.Logger) RunnerOption {
	return func(r *Runner) {
		r.log = log
	}
}

// WithRunnerOutput redirects entry command output (tests).
func WithRunnerOutput(stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// NewRunner creates a Runner whose checkouts live under root.
func NewRunner(root string, opts ...RunnerOption) *Runner {
	r := &Runner{
		root:   root,
		shell:  execShell,
		log:    logging.Default(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.cloner == nil {
		r.cloner = NewCloner(WithCloneLogger(r.log))
	}
	if r.installer == nil {
		r.installer = installer.New(installer.WithLogger(r.log))
	}
	return r
}

// Run processes every suite entry in order.
//
// Description:
//
//	Entries run strictly sequentially. For each entry: clone, resolve
//	plugin specifiers from the entry command, filter to installable
//	package names, install plugins, install the prebuilt binary, then
//	execute the command. A failing entry is recorded and the run moves
//	on; the aggregate error at the end names every failed entry.
//
// Inputs:
//
//	ctx - Context for cancellation
//	suite - The validated suite
//
// Outputs:
//
//	[]EntryResult - One result per entry, in suite order
//	error - Non-nil when at least one entry failed
func (r *Runner) Run(ctx context.Context, suite *Suite) ([]EntryResult, error) {
	results := make([]EntryResult, 0, len(suite.Entries))

	for _, entry := range suite.Entries {
		console.Heading(entry.Name)

		res := r.runEntry(ctx, entry)
		results = append(results, res)

		switch {
		case res.Skipped:
			console.Step("%s skipped", entry.Name)
		case res.Err != nil:
			console.Error("%s failed: %v", entry.Name, res.Err)
			r.log.Error("matrix entry failed", "entry", entry.Name, "error", res.Err)
		default:
			console.Success("%s passed", entry.Name)
		}

		if ctx.Err() != nil {
			return results, ctx.Err()
		}
	}

	var failed []string
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res.Entry.Name)
		}
	}
	if len(failed) > 0 {
		return results, fmt.Errorf("%d of %d entries failed: %s",
			len(failed), len(suite.Entries), strings.Join(failed, ", "))
	}
	return results, nil
}

// runEntry executes one entry end to end.
func (r *Runner) runEntry(ctx context.Context, entry Entry) EntryResult {
	command := RenderCommand(entry)

	if specifier.IsSkipped(command) {
		r.log.Info("entry disabled, skipping", "entry", entry.Name)
		return EntryResult{Entry: entry, Skipped: true}
	}

	dir, err := r.cloner.Clone(ctx, entry, r.root)
	if err != nil {
		return EntryResult{Entry: entry, Err: err}
	}

	raw := specifier.Collect(command, dir, r.log).Sorted()
	plan := specifier.FilterInstallable(raw, r.log)

	if err := r.installer.Install(ctx, plan, dir); err != nil {
		return EntryResult{Entry: entry, Err: fmt.Errorf("installing plugins: %w", err)}
	}

	installed, err := artifact.Install(dir, r.log)
	if err != nil {
		return EntryResult{Entry: entry, Err: err}
	}
	if !installed {
		console.Warn("no prebuilt %s binary for %s, command relies on PATH", artifact.BinaryName, entry.Name)
	}

	r.log.Info("running entry command", "entry", entry.Name, "command", command)
	if err := r.shell(ctx, dir, command, r.stdout, r.stderr); err != nil {
		return EntryResult{Entry: entry, Err: fmt.Errorf("command %q: %w", command, err)}
	}
	return EntryResult{Entry: entry}
}

// RenderCommand interpolates the entry's options into its command
// template. A template without the placeholder is returned unchanged.
func RenderCommand(entry Entry) string {
	command := strings.ReplaceAll(entry.Command, optionsPlaceholder, entry.Options)
	return strings.TrimSpace(command)
}
