package source

type (
	// FileID uniquely identifies a pattern file within a FileSet.
	FileID uint32
	// FileFlags encodes how the file content was obtained and normalised.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (stdin, tests, editor buffer).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures the content of one pattern file and its line table.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a human-readable position in a file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
