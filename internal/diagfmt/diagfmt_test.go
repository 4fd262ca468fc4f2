package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"vega/internal/diag"
	"vega/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.Add("demo/main.vg", []byte("let x: i32 = true;\n"))
	sp := source.Span{File: id, Start: 13, End: 17}
	bag := diag.NewBag(diag.DefaultMax)
	d := diag.New(diag.SevError, diag.SemaTypeMismatch, sp, "expected `i32`, found `bool`")
	d.Notes = append(d.Notes, diag.Note{Span: sp, Msg: "declared type comes from the annotation"})
	bag.Add(d)
	return bag, fs, sp
}

func TestPrettyLayout(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true, ShowSource: true})

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected header, source and caret lines, got:\n%s", out)
	}
	want := "demo/main.vg:1:14: ERROR " + diag.SemaTypeMismatch.ID() + ": expected `i32`, found `bool`"
	if lines[0] != want {
		t.Fatalf("header = %q, want %q", lines[0], want)
	}
	if !strings.Contains(lines[1], "let x: i32 = true;") {
		t.Fatalf("source line missing: %q", lines[1])
	}
	if !strings.Contains(lines[2], "^~~~") {
		t.Fatalf("caret underline missing: %q", lines[2])
	}
	if !strings.Contains(out, "declared type comes from the annotation") {
		t.Fatalf("note not rendered:\n%s", out)
	}
}

func TestPrettyBasenamePathMode(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})

	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasPrefix(first, "main.vg:1:14:") {
		t.Fatalf("expected basename path, got %q", first)
	}
}

func TestPrettyDroppedTrailer(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("a.vg", []byte("x\n"))
	sp := source.Span{File: id, Start: 0, End: 1}

	bag := diag.NewBag(2)
	for i := 0; i < 5; i++ {
		bag.Add(diag.New(diag.SevError, diag.SemaUndeclaredName, sp, "undeclared"))
	}

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.Contains(buf.String(), "3 more diagnostics not shown") {
		t.Fatalf("missing dropped trailer:\n%s", buf.String())
	}
}

func TestJSONOutput(t *testing.T) {
	bag, fs, sp := sampleBag(t)

	var buf bytes.Buffer
	err := WriteJSON(&buf, bag, fs, JSONOpts{IncludePositions: true, IncludeNotes: true})
	if err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Errors != 1 || out.Warnings != 0 || out.Dropped != 0 {
		t.Fatalf("counts = %d/%d/%d", out.Errors, out.Warnings, out.Dropped)
	}
	if len(out.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != diag.SemaTypeMismatch.ID() {
		t.Fatalf("code = %q", d.Code)
	}
	if d.Severity != "ERROR" {
		t.Fatalf("severity = %q", d.Severity)
	}
	if d.Location.File != "demo/main.vg" || d.Location.Line != 1 || d.Location.Col != 14 {
		t.Fatalf("location = %+v", d.Location)
	}
	if d.Location.StartByte != sp.Start || d.Location.EndByte != sp.End {
		t.Fatalf("byte range = %d..%d", d.Location.StartByte, d.Location.EndByte)
	}
	if len(d.Notes) != 1 || d.Notes[0].Message == "" {
		t.Fatalf("notes = %+v", d.Notes)
	}
}

func TestJSONOmitsNotesByDefault(t *testing.T) {
	bag, fs, _ := sampleBag(t)

	out := Build(bag, fs, JSONOpts{})
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Fatalf("notes should be omitted: %+v", out.Diagnostics[0].Notes)
	}
	if out.Diagnostics[0].Location.Line != 0 {
		t.Fatalf("positions should be omitted: %+v", out.Diagnostics[0].Location)
	}
}
