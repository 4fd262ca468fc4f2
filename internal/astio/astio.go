// Package astio reads and writes serialized ASTs. The parser is an external
// tool; it hands compilation units to the analyzer as msgpack files with the
// .vgast extension, framed by a small envelope so stale artifacts are
// rejected instead of misdecoded.
package astio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"vega/internal/ast"
)

// Ext is the file extension for serialized compilation units.
const Ext = ".vgast"

// SchemaVersion changes whenever the AST wire layout changes.
const SchemaVersion uint16 = 3

var magic = [4]byte{'V', 'G', 'A', 'T'}

// ErrBadMagic means the input is not a serialized AST at all.
var ErrBadMagic = errors.New("astio: not a vgast file")

// ErrSchemaMismatch means the input was produced by an incompatible parser.
var ErrSchemaMismatch = errors.New("astio: schema version mismatch")

type envelope struct {
	Schema  uint16
	Path    string // original source path, for diagnostics
	Program *ast.Program
}

// Write serializes a unit. The source path travels with the program so
// diagnostics can name the file the parser consumed.
func Write(w io.Writer, path string, prog *ast.Program) error {
	if prog == nil {
		return errors.New("astio: nil program")
	}
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	return enc.Encode(envelope{Schema: SchemaVersion, Path: path, Program: prog})
}

// Read deserializes a unit written by Write.
func Read(r io.Reader) (string, *ast.Program, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return "", nil, fmt.Errorf("astio: read header: %w", err)
	}
	if !bytes.Equal(head[:], magic[:]) {
		return "", nil, ErrBadMagic
	}
	var env envelope
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&env); err != nil {
		return "", nil, fmt.Errorf("astio: decode: %w", err)
	}
	if env.Schema != SchemaVersion {
		return "", nil, fmt.Errorf("%w: file has %d, want %d", ErrSchemaMismatch, env.Schema, SchemaVersion)
	}
	if env.Program == nil {
		return "", nil, errors.New("astio: envelope without a program")
	}
	return env.Path, env.Program, nil
}

// WriteFile writes a unit atomically next to its final location.
func WriteFile(path, sourcePath string, prog *ast.Program) error {
	f, err := os.CreateTemp(dirOf(path), "tmp-*"+Ext)
	if err != nil {
		return err
	}
	name := f.Name()
	if err := Write(f, sourcePath, prog); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return err
	}
	return os.Rename(name, path)
}

// ReadFile loads one unit from disk.
func ReadFile(path string) (string, *ast.Program, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	return Read(f)
}

func dirOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == os.PathSeparator {
			return path[:i]
		}
	}
	return "."
}
