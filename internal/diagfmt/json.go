package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"

	"vega/internal/diag"
	"vega/internal/source"
)

// LocationJSON is a span resolved for machine consumption.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Label    string       `json:"label"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// Output is the root of the JSON rendering. Dropped counts diagnostics the
// bag discarded past its cap; Errors and Warnings stay accurate regardless.
type Output struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
	Dropped     int              `json:"dropped,omitempty"`
}

// Build assembles the JSON structure without serializing it.
func Build(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) Output {
	out := Output{
		Diagnostics: make([]DiagnosticJSON, 0, bag.Len()),
		Errors:      bag.ErrorCount(),
		Warnings:    bag.WarningCount(),
		Dropped:     bag.Dropped(),
	}
	for _, d := range bag.Items() {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Label:    d.Code.Label(),
			Message:  d.Message,
			Location: jsonLocation(fs, d.Primary, opts),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{
					Message:  n.Msg,
					Location: jsonLocation(fs, n.Span, opts),
				})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	return out
}

// WriteJSON renders the bag as one JSON document.
func WriteJSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Build(bag, fs, opts))
}

func jsonLocation(fs *source.FileSet, sp source.Span, opts JSONOpts) LocationJSON {
	loc := LocationJSON{StartByte: sp.Start, EndByte: sp.End}
	if fs == nil || !sp.File.IsValid() {
		return loc
	}
	pos := fs.Position(sp)
	loc.File = pos.Path
	if opts.PathMode == PathModeBasename {
		loc.File = filepath.Base(pos.Path)
	}
	if opts.IncludePositions {
		loc.Line = pos.Line
		loc.Col = pos.Column
	}
	return loc
}
