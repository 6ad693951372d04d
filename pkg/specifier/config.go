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
	"encoding/json"
	"os"
	"strings"

	"github.com/oxc-project/oxc-ecosystem-ci/pkg/jsonc"
	"github.com/oxc-project/oxc-ecosystem-ci/pkg/logging"
)

// entryKind tags the decoded shape of one jsPlugins element.
type entryKind int

const (
	// entryUnknown is any shape the parser does not recognize; ignored.
	entryUnknown entryKind = iota

	// entryString is a plain string specifier: "eslint-plugin-react".
	entryString

	// entrySpecifier is an object carrying a "specifier" field.
	entrySpecifier

	// entryName is an object carrying only a "name" field.
	entryName
)

// pluginEntry is the tagged decoding of one jsPlugins element.
//
// The config format allows three shapes per entry:
//
//	"eslint-plugin-react"
//	{"specifier": "eslint-plugin-react"}
//	{"name": "eslint-plugin-react"}
//
// When both fields are present, "specifier" wins. Anything else decodes to
// entryUnknown and is dropped; a malformed entry in a semi-trusted config
// must not fail the whole file.
type pluginEntry struct {
	kind  entryKind
	value string
}

// UnmarshalJSON decodes an entry into its tagged variant.
//
// Never returns an error for shape mismatches: unrecognized shapes become
// entryUnknown.
func (e *pluginEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.kind = entryString
		e.value = s
		return nil
	}

	var obj struct {
		Specifier string `json:"specifier"`
		Name      string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		switch {
		case obj.Specifier != "":
			e.kind = entrySpecifier
			e.value = obj.Specifier
		case obj.Name != "":
			e.kind = entryName
			e.value = obj.Name
		default:
			e.kind = entryUnknown
		}
		return nil
	}

	e.kind = entryUnknown
	return nil
}

// configFile is the recognized top-level shape of a lint configuration.
type configFile struct {
	JSPlugins []pluginEntry `json:"jsPlugins"`
}

// ParseConfig reads a JSONC lint configuration file and returns the plugin
// specifiers declared under its jsPlugins key, trimmed.
//
// Parse failures are non-fatal by contract: a missing file, invalid JSON,
// or an unrecognized top-level shape logs a warning and returns an empty
// list. The configs come from arbitrary cloned repositories and a broken
// one must not abort the matrix entry.
//
// Inputs:
//
//	path - Path to the configuration file
//	log - Destination for parse warnings
//
// Outputs:
//
//	[]string - Declared specifiers, trimmed; nil when none
func ParseConfig(path string, log *logging.Logger) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("could not read lint config", "path", path, "error", err.Error())
		return nil
	}

	var cfg configFile
	if err := json.Unmarshal(jsonc.Strip(data), &cfg); err != nil {
		log.Warn("could not parse lint config", "path", path, "error", err.Error())
		return nil
	}

	var specs []string
	for _, entry := range cfg.JSPlugins {
		if entry.kind == entryUnknown {
			log.Warn("ignoring unrecognized jsPlugins entry", "path", path)
			continue
		}
		if trimmed := strings.TrimSpace(entry.value); trimmed != "" {
			specs = append(specs, trimmed)
		}
	}
	return specs
}
