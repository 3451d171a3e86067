package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/JordanEmme/obj-reader/mesh"
)

// readerBackend defines the generic interface for decoding one mesh file
// or stream. Concrete implementations (e.g., objReaderBackend) handle
// format-specific details.
type readerBackend interface {
	// Decode opens the file at path and decodes it into a mesh.
	//
	// Parameters:
	//   - path: the file path to decode
	//   - onDiagnostic: optional sink for non-fatal findings
	//
	// Returns:
	//   - *mesh.Mesh: the decoded mesh; partially filled when err is a
	//     MalformedLineError
	//   - error: error if opening or decoding fails
	Decode(path string, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error)

	// DecodeReader decodes a mesh from a seekable stream. Seekability is
	// required because decoding consumes the stream twice.
	//
	// Parameters:
	//   - name: the stream name, used in errors
	//   - rs: the seekable stream
	//   - onDiagnostic: optional sink for non-fatal findings
	//
	// Returns:
	//   - *mesh.Mesh: the decoded mesh
	//   - error: error if decoding fails
	DecodeReader(name string, rs io.ReadSeeker, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error)
}

// objReaderBackendImpl is the readerBackend implementation for Wavefront
// OBJ files. It delegates to the objDecoder for the two-pass decode.
type objReaderBackendImpl struct {
	decoder objDecoder
}

var _ readerBackend = &objReaderBackendImpl{}

// newOBJReaderBackend creates a new OBJ reader backend.
//
// Returns:
//   - readerBackend: the reader backend for .obj files
func newOBJReaderBackend() readerBackend {
	return &objReaderBackendImpl{
		decoder: newOBJDecoder(),
	}
}

func (b *objReaderBackendImpl) Decode(path string, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return b.decoder.Decode(path, f, onDiagnostic)
}

func (b *objReaderBackendImpl) DecodeReader(name string, rs io.ReadSeeker, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error) {
	return b.decoder.Decode(name, rs, onDiagnostic)
}
