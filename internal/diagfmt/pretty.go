// Package diagfmt renders diagnostics and resolved regions for humans
// and machines.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"collabscan/internal/diag"
	"collabscan/internal/source"
)

// PrettyOpts configures the human-readable diagnostic renderer.
type PrettyOpts struct {
	Color bool
	// Context is the number of source lines shown under a diagnostic.
	Context int
}

var (
	sevErrorColor   = color.New(color.FgRed, color.Bold)
	sevWarningColor = color.New(color.FgYellow, color.Bold)
	sevInfoColor    = color.New(color.FgCyan)
	locationColor   = color.New(color.Bold)
)

// Pretty formats diagnostics in a human-readable way. It walks
// bag.Items() (call bag.Sort() beforehand for stable output) printing
//
//	<path>:<line>:<col>: <SEV> [<CODE>]: <message>
//
// followed by the source line with a ^~~~ underline over the span, and
// any notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = sevColor(d.Severity).Sprint(sev)
	}

	loc := formatLocation(fs, d.Primary, opts)
	fmt.Fprintf(w, "%s: %s [%s]: %s\n", loc, sev, d.Code.ID(), d.Message)
	printContext(w, fs, d.Primary, opts)

	for _, n := range d.Notes {
		fmt.Fprintf(w, "%s: note: %s\n", formatLocation(fs, n.Span, opts), n.Msg)
		printContext(w, fs, n.Span, opts)
	}
}

func sevColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return sevErrorColor
	case diag.SevWarning:
		return sevWarningColor
	default:
		return sevInfoColor
	}
}

func formatLocation(fs *source.FileSet, span source.Span, opts PrettyOpts) string {
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	loc := fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
	if opts.Color {
		return locationColor.Sprint(loc)
	}
	return loc
}

// printContext shows the span's first source line with an underline.
func printContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	if opts.Context <= 0 || span.Empty() && span.Start == 0 {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	text := file.GetLine(start.Line)
	if text == "" {
		return
	}
	fmt.Fprintf(w, "  %s\n", text)

	// Underline within the first line only.
	prefix := text
	if int(start.Col-1) <= len(text) {
		prefix = text[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	underline := "^"
	if width > 1 {
		underline += strings.Repeat("~", width-1)
	}
	if opts.Color {
		underline = sevErrorColor.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", pad, underline)
}
