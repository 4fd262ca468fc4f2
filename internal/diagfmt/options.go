// Package diagfmt renders diagnostics for the CLI: a human-readable pretty
// form with source context and a machine-readable JSON form.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path the way the file set registered it.
	PathModeAuto PathMode = iota
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// ShowSource prints the offending line with a caret underline.
	ShowSource bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // resolve byte offsets to line/col
	PathMode         PathMode
	IncludeNotes     bool
	Indent           bool
}
