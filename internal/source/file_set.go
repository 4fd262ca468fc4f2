package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

// FileSet manages registered source files and resolves spans to positions.
type FileSet struct {
	files []File // files[0] is a sentinel for NoFileID
	index map[string]FileID
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 1),
		index: make(map[string]FileID),
	}
}

// Add registers normalized content under path and returns a fresh FileID.
// Re-adding a path registers a new version and repoints the index at it.
func (fs *FileSet) Add(path string, content []byte) FileID {
	normalized := filepath.ToSlash(path)
	lenFiles, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(lenFiles)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: buildLineIndex(content),
	})
	fs.index[normalized] = id
	return id
}

// Load reads a file from disk, strips a UTF-8 BOM and normalizes CRLF,
// then registers it.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the caller
	if err != nil {
		return NoFileID, fmt.Errorf("load %s: %w", path, err)
	}
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return fs.Add(path, content), nil
}

// Get returns the file for the ID or nil when unknown.
func (fs *FileSet) Get(id FileID) *File {
	if !id.IsValid() || int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// ByPath returns the most recent FileID registered under path.
func (fs *FileSet) ByPath(path string) (FileID, bool) {
	id, ok := fs.index[filepath.ToSlash(path)]
	return id, ok
}

// Len reports the number of registered files excluding the sentinel.
func (fs *FileSet) Len() int { return len(fs.files) - 1 }

// Position resolves the start of a span to path/line/column.
func (fs *FileSet) Position(sp Span) Position {
	file := fs.Get(sp.File)
	if file == nil {
		return Position{Path: "<unknown>", Line: 1, Column: 1, Offset: sp.Start}
	}
	line := sort.Search(len(file.LineIdx), func(i int) bool {
		return file.LineIdx[i] > sp.Start
	})
	if line == 0 {
		line = 1
	}
	col := sp.Start - file.LineIdx[line-1] + 1
	lineNum, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return Position{
		Path:   file.Path,
		Line:   lineNum,
		Column: col,
		Offset: sp.Start,
	}
}

// LineContent returns the text of a 1-based line without the newline.
func (fs *FileSet) LineContent(id FileID, line uint32) []byte {
	file := fs.Get(id)
	if file == nil || line == 0 || int(line) > len(file.LineIdx) {
		return nil
	}
	start := file.LineIdx[line-1]
	end := uint32(len(file.Content))
	if int(line) < len(file.LineIdx) {
		end = file.LineIdx[line] - 1
	}
	if end < start {
		end = start
	}
	return file.Content[start:end]
}

func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 1, 64)
	idx[0] = 0
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i)+1)
		}
	}
	return idx
}
