// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package jsonc strips comments from JSON-with-comments documents.
//
// Lint configuration files cloned from arbitrary repositories are commonly
// JSONC: standard JSON augmented with // line comments and /* block */
// comments. The standard library decoder rejects those, so they must be
// stripped first.
//
// Stripping is done by a small hand-written scanner rather than regex
// substitution: a regex cannot distinguish a comment from a "//" or "/*"
// sequence inside a string literal, and corrupting a string value in a
// semi-trusted config file is exactly the kind of bug that turns into a
// bogus install later in the pipeline.
package jsonc

// scanner states for Strip.
const (
	stateNormal = iota
	stateString
	stateEscape
	stateLineComment
	stateBlockComment
)

// Strip returns src with all // line comments and /* block */ comments
// replaced by spaces.
//
// Replacing rather than removing keeps byte offsets and line numbers
// stable, so decoder error positions still point at the original file.
// Newlines inside comments are preserved for the same reason. Content of
// string literals is never modified, including "//" and "/*" sequences.
//
// Strip does not validate the JSON; an unterminated block comment or
// string simply runs to end of input and is left for the decoder to
// reject.
func Strip(src []byte) []byte {
	out := make([]byte, len(src))
	state := stateNormal

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateNormal:
			switch {
			case c == '"':
				state = stateString
				out[i] = c
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
				// Consume the '*' so "/*/" does not self-terminate.
				i++
				out[i] = ' '
			default:
				out[i] = c
			}

		case stateString:
			switch c {
			case '\\':
				state = stateEscape
			case '"':
				state = stateNormal
			}
			out[i] = c

		case stateEscape:
			// The escaped character is copied verbatim; a \" must not
			// terminate the string.
			state = stateString
			out[i] = c

		case stateLineComment:
			if c == '\n' {
				state = stateNormal
				out[i] = c
			} else if c == '\r' {
				out[i] = c
			} else {
				out[i] = ' '
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateNormal
				out[i] = ' '
				i++
				out[i] = ' '
			} else if c == '\n' || c == '\r' {
				out[i] = c
			} else {
				out[i] = ' '
			}
		}
	}

	return out
}
