package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, editor buffer).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM: content starts with a UTF-8 byte order mark. The bytes are kept.
	FileHasBOM
	// FileHasCRLF: content contains \r\n line endings. They are kept.
	FileHasCRLF
)

// File captures metadata and content for a single stylesheet.
// Content is stored byte-for-byte so offsets and round-trips stay exact.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
