// Package styles provides shared lipgloss styles for CLI output.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	success = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	warning = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failure = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	muted   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Success renders s in the success style.
func Success(s string) string { return success.Render(s) }

// Warning renders s in the warning style.
func Warning(s string) string { return warning.Render(s) }

// Failure renders s in the failure style.
func Failure(s string) string { return failure.Render(s) }

// Muted renders s in the muted style.
func Muted(s string) string { return muted.Render(s) }
