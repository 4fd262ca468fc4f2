package source

// FileID identifies a file inside a FileSet.
type FileID uint32

// NoFileID marks the absence of a file reference.
const NoFileID FileID = 0

// IsValid reports whether the ID refers to a registered file.
func (id FileID) IsValid() bool { return id != NoFileID }

// File stores one source file's content together with its line index.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of line starts, LineIdx[0] == 0
}
