package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rivo/uniseg"

	"github.com/oukeidos/lorakit/internal/dataset"
	"github.com/oukeidos/lorakit/internal/tags"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

func success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func failure(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}

// printReport writes the summary and each failed file. The returned error
// is non-nil when any file failed.
func printReport(w io.Writer, action string, r dataset.Report) error {
	fmt.Fprintln(w, success(action+": "+r.String()))
	for _, f := range r.Failed {
		fmt.Fprintln(w, failure(f.Error()))
	}
	return r.Err()
}

// padRight pads s with spaces to width terminal columns. Wide and combined
// characters count by their display width.
func padRight(s string, width int) string {
	n := uniseg.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func formatTagTable(entries []tags.Entry) string {
	width := len("TAG")
	for _, e := range entries {
		if w := uniseg.StringWidth(e.Tag); w > width {
			width = w
		}
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "  %s  %s\n", bold(padRight("TAG", width)), bold("COUNT"))
	for _, e := range entries {
		fmt.Fprintf(&sb, "  %s  %s\n", cyan(padRight(e.Tag, width)), faint(fmt.Sprintf("%5d", e.Count)))
	}
	return sb.String()
}

// preview shortens caption text to one line of at most n graphemes.
func preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if uniseg.GraphemeClusterCount(text) <= n {
		return text
	}
	var sb strings.Builder
	g := uniseg.NewGraphemes(text)
	for i := 0; i < n-1 && g.Next(); i++ {
		sb.WriteString(g.Str())
	}
	return sb.String() + "…"
}
