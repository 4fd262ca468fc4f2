package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vega/internal/diag"
	"vega/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan)
	noteColor    = color.New(color.Faint)
)

// Pretty renders every retained diagnostic in the bag. Call bag.Sort()
// first when stable file ordering matters. Layout, per diagnostic:
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//	    <source line>
//	    ^~~~~
//	  note: <note message>
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... and %d more diagnostics not shown\n", dropped)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		location(fs, d.Primary, opts.PathMode),
		severityText(d.Severity, opts.Color),
		d.Code.ID(),
		d.Message)

	if opts.ShowSource {
		writeSourceContext(w, fs, d.Primary)
	}
	if opts.ShowNotes {
		for _, n := range d.Notes {
			msg := "note: " + n.Msg
			if opts.Color {
				msg = noteColor.Sprint(msg)
			}
			if n.Span.File.IsValid() {
				fmt.Fprintf(w, "  %s: %s\n", location(fs, n.Span, opts.PathMode), msg)
			} else {
				fmt.Fprintf(w, "  %s\n", msg)
			}
		}
	}
}

func severityText(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return errorColor.Sprint(sev.String())
	case diag.SevWarning:
		return warningColor.Sprint(sev.String())
	default:
		return infoColor.Sprint(sev.String())
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	if fs == nil || !sp.File.IsValid() {
		return "<unknown>"
	}
	pos := fs.Position(sp)
	path := pos.Path
	if mode == PathModeBasename {
		path = filepath.Base(path)
	}
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Column)
}

// writeSourceContext prints the first line the span covers and underlines
// the covered columns. Widths are display widths, so wide runes and tabs
// keep the caret aligned.
func writeSourceContext(w io.Writer, fs *source.FileSet, sp source.Span) {
	if fs == nil || !sp.File.IsValid() {
		return
	}
	pos := fs.Position(sp)
	line := fs.LineContent(sp.File, pos.Line)
	if line == nil {
		return
	}
	text := expandTabs(string(line))
	fmt.Fprintf(w, "    %s\n", text)

	startByte := int(pos.Column) - 1
	if startByte > len(line) {
		startByte = len(line)
	}
	spanLen := int(sp.Len())
	if spanLen < 1 {
		spanLen = 1
	}
	endByte := startByte + spanLen
	if endByte > len(line) {
		endByte = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(string(line[:startByte])))
	width := runewidth.StringWidth(string(line[startByte:endByte]))
	if width < 1 {
		width = 1
	}
	fmt.Fprintf(w, "    %s^%s\n", strings.Repeat(" ", pad), strings.Repeat("~", width-1))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
