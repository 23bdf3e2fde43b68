package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/utilitywarehouse/slashstrip/strip"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

func formatSuccess(msg string) string {
	return successStyle.Render(checkMark+" ") + msg
}

func formatError(msg string) string {
	return errorStyle.Render(crossMark+" ") + msg
}

func formatWarning(msg string) string {
	return warnStyle.Render("! ") + msg
}

func formatMuted(text string) string {
	return mutedStyle.Render(text)
}

func formatResult(res *strip.Result) string {
	msg := fmt.Sprintf("%d files, %d changed, %d lines dropped, %d truncated",
		res.Files, res.Changed, res.Lines.Dropped, res.Lines.Truncated)
	if n := len(res.Failures); n > 0 {
		return formatError(fmt.Sprintf("%s, %d failed", msg, n))
	}
	return formatSuccess(msg)
}
