package source

import "testing"

func TestPositionResolution(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("main.vg", []byte("fn main() {\n    let x = 1;\n}\n"))
	pos := fs.Position(Span{File: id, Start: 16, End: 19})
	if pos.Line != 2 || pos.Column != 5 {
		t.Fatalf("expected 2:5, got %d:%d", pos.Line, pos.Column)
	}
	if pos.Path != "main.vg" {
		t.Fatalf("unexpected path %q", pos.Path)
	}
}

func TestPositionFirstLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.vg", []byte("let x = 1;"))
	pos := fs.Position(Span{File: id, Start: 4, End: 5})
	if pos.Line != 1 || pos.Column != 5 {
		t.Fatalf("expected 1:5, got %d:%d", pos.Line, pos.Column)
	}
}

func TestLineContent(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("a.vg", []byte("first\nsecond\nthird"))
	if got := string(fs.LineContent(id, 2)); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := string(fs.LineContent(id, 3)); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
}

func TestNormalizeIdent(t *testing.T) {
	// U+00E9 vs e + U+0301 must normalize to the same symbol name.
	composed := NormalizeIdent("café")
	decomposed := NormalizeIdent("café")
	if composed != decomposed {
		t.Fatalf("NFC normalization failed: %q != %q", composed, decomposed)
	}
}

func TestIsValidIdent(t *testing.T) {
	for _, ok := range []string{"x", "_tmp", "Point2", "café"} {
		if !IsValidIdent(ok) {
			t.Errorf("expected %q to be a valid identifier", ok)
		}
	}
	for _, bad := range []string{"", "2x", "a-b", "a b"} {
		if IsValidIdent(bad) {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}
	c := a.Cover(b)
	if c.Start != 5 || c.End != 20 {
		t.Fatalf("cover = %v", c)
	}
	other := a.Cover(Span{File: 2, Start: 0, End: 100})
	if other != a {
		t.Fatalf("cross-file cover must be a no-op")
	}
}
