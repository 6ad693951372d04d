// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package npm queries the npm registry for package metadata.
//
// The installer's fallback path needs to know each plugin's declared peer
// dependencies, because an isolated temp-directory install has no host
// project to satisfy them. This package asks the registry directly rather
// than shelling out to `npm view`, so a single lookup failure stays an
// ordinary error the caller can log and skip.
package npm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// defaultTimeout bounds a single metadata request.
const defaultTimeout = 30 * time.Second

// Client fetches package metadata from an npm-compatible registry.
//
// The zero value is not usable; create one with New. Safe for concurrent
// use.
type Client struct {
	// baseURL is the registry root, without trailing slash.
	baseURL string

	// httpClient performs the requests.
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different registry (mirrors, tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a registry client for the public npm registry unless
// overridden by options.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// packumentVersion is the slice of registry metadata we care about.
type packumentVersion struct {
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// PeerDependencies returns the peer dependency package names declared by
// the latest published version of pkg, sorted for deterministic logging.
//
// Description:
//
//	GETs <registry>/<name>/latest. Scoped names are path-escaped
//	(@scope/name -> %40scope%2Fname) as the registry requires.
//
// Inputs:
//
//	ctx - Context for cancellation and timeout
//	pkg - Package name (validated upstream; this client does not enforce
//	      the plugin allowlist)
//
// Outputs:
//
//	[]string - Peer dependency names; nil when the package declares none
//	error - Non-nil on network failure, non-200 status, or bad JSON
func (c *Client) PeerDependencies(ctx context.Context, pkg string) ([]string, error) {
	if pkg == "" {
		return nil, fmt.Errorf("package name cannot be empty")
	}

	endpoint := fmt.Sprintf("%s/%s/latest", c.baseURL, url.PathEscape(pkg))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building registry request for %s: %w", pkg, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying registry for %s: %w", pkg, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("registry returned %d for %s", resp.StatusCode, pkg)
	}

	var version packumentVersion
	if err := json.NewDecoder(resp.Body).Decode(&version); err != nil {
		return nil, fmt.Errorf("decoding registry metadata for %s: %w", pkg, err)
	}

	if len(version.PeerDependencies) == 0 {
		return nil, nil
	}

	peers := make([]string, 0, len(version.PeerDependencies))
	for name := range version.PeerDependencies {
		peers = append(peers, name)
	}
	sort.Strings(peers)
	return peers, nil
}
