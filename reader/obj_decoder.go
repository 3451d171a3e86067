package reader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/JordanEmme/obj-reader/mesh"
)

// maxLineLen is the hard bound on one source line, in bytes. Longer
// lines fail the read rather than being split.
const maxLineLen = 65535

// objParseContext carries all mutable state for one decode call: the
// stream, the current line number, the write cursors, and the diagnostic
// sink. It lives for exactly one decode, so concurrent decodes of
// independent streams never share a buffer or cursor.
type objParseContext struct {
	name string
	rs   io.ReadSeeker

	lineNo int

	posCursor        int
	normCursor       int
	texCursor        int
	faceCursor       int
	faceVertexCursor int

	onDiagnostic func(Diagnostic)
}

func (ctx *objParseContext) diagnostic(kind DiagnosticKind, line string) {
	if ctx.onDiagnostic == nil {
		return
	}
	ctx.onDiagnostic(Diagnostic{Kind: kind, Line: ctx.lineNo, Text: line})
}

func (ctx *objParseContext) malformed(line, reason string) error {
	return &MalformedLineError{Line: ctx.lineNo, Text: line, Reason: reason}
}

// objDecoder runs the size/allocate/fill protocol over one seekable OBJ
// stream: a sizing pass that tallies exact element counts, a one-shot
// allocation, and a decode pass that fills the buffers in place. This is
// internal to the reader package.
type objDecoder interface {
	// Decode parses the stream into a mesh.
	//
	// Parameters:
	//   - name: the stream name, used in errors
	//   - rs: the seekable stream; it is consumed twice (sizing, then
	//     rewind and decode)
	//   - onDiagnostic: optional sink for non-fatal findings
	//
	// Returns:
	//   - *mesh.Mesh: the populated mesh; on a malformed line this is
	//     the partially filled mesh and must be discarded
	//   - error: error if sizing, allocation, or decoding fails
	Decode(name string, rs io.ReadSeeker, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error)
}

// objDecoderImpl is the implementation of the objDecoder interface.
type objDecoderImpl struct{}

var _ objDecoder = &objDecoderImpl{}

// newOBJDecoder creates a new OBJ decoder instance.
//
// Returns:
//   - objDecoder: a new decoder instance
func newOBJDecoder() objDecoder {
	return &objDecoderImpl{}
}

func (d *objDecoderImpl) Decode(name string, rs io.ReadSeeker, onDiagnostic func(Diagnostic)) (*mesh.Mesh, error) {
	ctx := &objParseContext{
		name:         name,
		rs:           rs,
		onDiagnostic: onDiagnostic,
	}

	sizes, err := d.scanSizes(ctx)
	if err != nil {
		return nil, err
	}

	// The decode pass consumes the same bytes the sizing pass counted,
	// so the rewind is part of the protocol, not left to the caller.
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind %q: %w", name, err)
	}

	m, err := mesh.Allocate(sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate mesh for %q: %w", name, err)
	}

	if err := d.decodeInto(ctx, m); err != nil {
		return m, err
	}
	return m, nil
}

// newLineScanner wraps the stream in a line scanner bounded at
// maxLineLen bytes per line.
func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLen)
	return sc
}

// scanSizes is the sizing pass: it streams the file once and tallies the
// exact counts every buffer needs. Unsupported directives are skipped;
// unrecognized prefixes produce a diagnostic but never abort the pass.
func (d *objDecoderImpl) scanSizes(ctx *objParseContext) (mesh.MeshSizes, error) {
	var sizes mesh.MeshSizes

	sc := newLineScanner(ctx.rs)
	for sc.Scan() {
		ctx.lineNo++
		line := sc.Text()

		switch classifyLine(line) {
		case linePosition:
			sizes.Positions++
		case lineTexCoord:
			sizes.TexCoords++
		case lineNormal:
			sizes.Normals++
		case lineFace:
			sizes.Faces++
			// Whitespace-field tokenization, never raw space counting:
			// irregular spacing must not skew the pre-sizing, or the
			// decode pass would overrun its buffers.
			sizes.FaceVertices += len(strings.Fields(line)) - 1
		case lineUnrecognized:
			if strings.TrimSpace(line) != "" {
				ctx.diagnostic(DiagnosticUnrecognizedDirective, line)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return mesh.MeshSizes{}, fmt.Errorf("failed to read %q: %w", ctx.name, err)
	}

	return sizes, nil
}

// decodeInto is the decode pass: it re-streams the file and writes
// parsed values into the pre-allocated buffers at monotonically
// advancing cursors. Every line goes through the same classifier the
// sizing pass used, so no cursor can pass its buffer's length. The first
// malformed line aborts the pass.
func (d *objDecoderImpl) decodeInto(ctx *objParseContext, m *mesh.Mesh) error {
	ctx.lineNo = 0

	sc := newLineScanner(ctx.rs)
	for sc.Scan() {
		ctx.lineNo++
		line := sc.Text()

		var err error
		switch classifyLine(line) {
		case linePosition:
			err = d.decodePosition(ctx, m, line)
		case lineTexCoord:
			err = d.decodeTexCoord(ctx, m, line)
		case lineNormal:
			err = d.decodeNormal(ctx, m, line)
		case lineFace:
			err = d.decodeFace(ctx, m, line)
		}
		if err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read %q: %w", ctx.name, err)
	}

	return nil
}

// decodePosition parses "v x y z" or "v x y z w". The field count picks
// the form up front so a supplied fourth coordinate is never dropped; a
// missing one defaults to w = 1.0.
func (d *objDecoderImpl) decodePosition(ctx *objParseContext, m *mesh.Mesh, line string) error {
	fields := strings.Fields(line)[1:]
	if len(fields) != 3 && len(fields) != 4 {
		return ctx.malformed(line, "expected 3 or 4 position coordinates")
	}

	x, err := parseFloat(fields[0])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	y, err := parseFloat(fields[1])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	z, err := parseFloat(fields[2])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	w := float32(1.0)
	if len(fields) == 4 {
		if w, err = parseFloat(fields[3]); err != nil {
			return ctx.malformed(line, err.Error())
		}
	}

	i := ctx.posCursor
	m.Data.PosX[i] = x
	m.Data.PosY[i] = y
	m.Data.PosZ[i] = z
	m.Data.PosW[i] = w
	ctx.posCursor++
	return nil
}

// decodeNormal parses "vn x y z".
func (d *objDecoderImpl) decodeNormal(ctx *objParseContext, m *mesh.Mesh, line string) error {
	fields := strings.Fields(line)[1:]
	if len(fields) != 3 {
		return ctx.malformed(line, "expected 3 normal coordinates")
	}

	x, err := parseFloat(fields[0])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	y, err := parseFloat(fields[1])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	z, err := parseFloat(fields[2])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}

	i := ctx.normCursor
	m.Data.NormX[i] = x
	m.Data.NormY[i] = y
	m.Data.NormZ[i] = z
	ctx.normCursor++
	return nil
}

// decodeTexCoord parses "vt u v".
func (d *objDecoderImpl) decodeTexCoord(ctx *objParseContext, m *mesh.Mesh, line string) error {
	fields := strings.Fields(line)[1:]
	if len(fields) != 2 {
		return ctx.malformed(line, "expected 2 texture coordinates")
	}

	u, err := parseFloat(fields[0])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}
	v, err := parseFloat(fields[1])
	if err != nil {
		return ctx.malformed(line, err.Error())
	}

	i := ctx.texCursor
	m.Data.TexU[i] = u
	m.Data.TexV[i] = v
	ctx.texCursor++
	return nil
}

// decodeFace parses one "f" line. The face-vertex format is probed once
// from the first token and applied to the whole line. A face with fewer
// than 3 vertices is a degenerate polygon: it is surfaced as a
// diagnostic but still stored as provided.
func (d *objDecoderImpl) decodeFace(ctx *objParseContext, m *mesh.Mesh, line string) error {
	tokens := strings.Fields(line)[1:]

	if len(tokens) > 0 {
		format := detectFaceFormat(tokens[0])
		for _, tok := range tokens {
			fv, err := parseFaceVertex(tok, format)
			if err != nil {
				return ctx.malformed(line, err.Error())
			}
			m.Data.Faces[ctx.faceVertexCursor] = fv
			ctx.faceVertexCursor++
		}
	}
	if len(tokens) < 3 {
		ctx.diagnostic(DiagnosticDegenerateFace, line)
	}

	m.Data.FaceSizes[ctx.faceCursor] = uint32(len(tokens))
	ctx.faceCursor++
	return nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return float32(v), nil
}
