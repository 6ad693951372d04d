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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

// gitHubBase is the clone URL prefix.
const gitHubBase = "https://github.com"

// GitRunner executes a git command in a directory. Tests substitute a
// fake; production uses execGit.
type GitRunner func(ctx context.Context, dir string, args ...string) (string, error)

// execGit runs git with combined output capture.
func execGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("git %v: %w", args, err)
	}
	return out.String(), nil
}

// Cloner shallow-clones matrix entries into a root directory.
type Cloner struct {
	git GitRunner
	log *logging.Logger
}

// ClonerOption configures a Cloner.
type ClonerOption func(*Cloner)

// WithGitRunner substitutes the git executor (tests).
func WithGitRunner(g GitRunner) ClonerOption {
	return func(c *Cloner) {
		c.git = g
	}
}

// WithCloneLogger substitutes the logger.
func WithCloneLogger(log *logging.Logger) ClonerOption {
	return func(c *Cloner) {
		c.log = log
	}
}

// NewCloner creates a Cloner with production defaults.
func NewCloner(opts ...ClonerOption) *Cloner {
	c := &Cloner{
		git: execGit,
		log: logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clone shallow-clones one entry into root/<name>.
//
// An existing checkout is reused as-is: matrix runs are pinned to a ref,
// so a re-clone would only waste CI minutes.
func (c *Cloner) Clone(ctx context.Context, entry Entry, root string) (string, error) {
	dest := filepath.Join(root, entry.Name)

	if _, err := os.Stat(dest); err == nil {
		c.log.Info("checkout already exists, reusing", "entry", entry.Name, "dir", dest)
		return dest, nil
	}

	// git runs with root as its working directory, so root must exist
	// before the first clone.
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", fmt.Errorf("creating clone root %s: %w", root, err)
	}

	url := fmt.Sprintf("%s/%s.git", gitHubBase, entry.Repository)
	c.log.Info("cloning", "entry", entry.Name, "url", url, "ref", entry.Ref)

	out, err := c.git(ctx, root,
		"clone", "--depth", "1", "--branch", entry.Ref, "--single-branch", url, dest)
	if err != nil {
		return "", fmt.Errorf("cloning %s: %w (output: %s)", entry.Repository, err, out)
	}
	return dest, nil
}

// CloneAll clones every entry in the suite, in order.
func (c *Cloner) CloneAll(ctx context.Context, suite *Suite, root string) error {
	for _, entry := range suite.Entries {
		if _, err := c.Clone(ctx, entry, root); err != nil {
			return err
		}
	}
	return nil
}
