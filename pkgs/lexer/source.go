package lexer

import "golang.org/x/crypto/blake2b"

// InputFileID identifies a source file across the whole frontend run.
// Zero is reserved as invalid; ids are assigned in strict ascending
// order as files are discovered.
type InputFileID uint32

// InvalidInputFileID is the reserved zero value.
const InvalidInputFileID InputFileID = 0

// FileKind distinguishes a file named on the command line from one
// pulled in by an @include directive.
type FileKind int

const (
	CoreUnit FileKind = iota
	Included
)

// FileState tracks whether a queued file has been consumed. A file
// never transitions back from Finished.
type FileState int

const (
	Pending FileState = iota
	Finished
)

// bom is the UTF-8 byte-order mark the lexer silently skips on load.
var bom = [3]byte{0xEF, 0xBB, 0xBF}

// SourceBuffer owns the immutable bytes of a single file.
type SourceBuffer struct {
	ID     InputFileID
	Path   string
	Kind   FileKind
	State  FileState
	bytes  []byte
	digest [32]byte // BLAKE2b-256 content digest, computed once
}

// NewSourceBuffer creates a source buffer for raw file content,
// stripping a leading UTF-8 BOM if present (spec §6.4).
func NewSourceBuffer(id InputFileID, path string, kind FileKind, content []byte) *SourceBuffer {
	if len(content) >= 3 && content[0] == bom[0] && content[1] == bom[1] && content[2] == bom[2] {
		content = content[3:]
	}
	return &SourceBuffer{
		ID:     id,
		Path:   path,
		Kind:   kind,
		State:  Pending,
		bytes:  content,
		digest: blake2b.Sum256(content),
	}
}

// Bytes returns the buffer's immutable content.
func (s *SourceBuffer) Bytes() []byte { return s.bytes }

// Digest returns the BLAKE2b-256 content fingerprint, used by the
// driver to recognize an @include of a file that is byte-identical to
// one already queued, even under a different path.
func (s *SourceBuffer) Digest() [32]byte { return s.digest }

// MarkFinished transitions the buffer out of Pending. Idempotent.
func (s *SourceBuffer) MarkFinished() { s.State = Finished }
