// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package console provides styled terminal output for the ecosystem CI CLI.
package console

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Semantic colors (standard conventions).
var (
	ColorHeading = lipgloss.Color("#7C8CF8")
	ColorSuccess = lipgloss.Color("#2CD7A7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#6C7086")
)

// Styles provides pre-configured lipgloss styles.
var Styles = struct {
	Heading lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}{
	Heading: lipgloss.NewStyle().Bold(true).Foreground(ColorHeading),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
}

// Icon provides status icons.
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconArrow   Icon = "→"
)

// styled reports whether decorated output should be produced.
//
// Styling is suppressed when stdout is not a terminal (the common case in
// CI log capture) or when NO_COLOR is set.
func styled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// Heading prints a section heading for one matrix entry.
func Heading(text string) {
	if styled() {
		fmt.Println(Styles.Heading.Render(text))
		return
	}
	fmt.Printf("=== %s ===\n", text)
}

// Success prints a success status line.
func Success(format string, args ...any) {
	statusLine(IconSuccess, Styles.Success, format, args...)
}

// Warn prints a warning status line.
func Warn(format string, args ...any) {
	statusLine(IconWarning, Styles.Warning, format, args...)
}

// Error prints an error status line.
func Error(format string, args ...any) {
	statusLine(IconError, Styles.Error, format, args...)
}

// Step prints a progress line for a sub-operation.
func Step(format string, args ...any) {
	statusLine(IconArrow, Styles.Muted, format, args...)
}

func statusLine(icon Icon, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if styled() {
		fmt.Printf("%s %s\n", style.Render(string(icon)), msg)
		return
	}
	fmt.Printf("%s %s\n", icon, msg)
}
