package mesh

import "errors"

// Grouped allocation errors. Each names the buffer group that could not
// be sized, so callers can report which part of the mesh failed without
// inspecting individual arrays.
var (
	errAllocPositions = errors.New("failed to allocate the vertex position buffers")
	errAllocNormals   = errors.New("failed to allocate the vertex normal buffers")
	errAllocTexCoords = errors.New("failed to allocate the texture coordinate buffers")
	errAllocFaces     = errors.New("failed to allocate the face buffers")
)

// Allocate creates a Mesh with every buffer sized to exactly the given
// counts in one shot. Buffers are never grown afterwards; the decode
// pass fills them in place. A zero count for a group yields empty,
// non-nil slices, so consumers never need to distinguish "absent" from
// "empty".
//
// Parameters:
//   - sizes: the exact element counts from the sizing pass
//
// Returns:
//   - *Mesh: the mesh with all buffers allocated
//   - error: the group error if any count is invalid
func Allocate(sizes MeshSizes) (*Mesh, error) {
	if sizes.Positions < 0 {
		return nil, errAllocPositions
	}
	if sizes.Normals < 0 {
		return nil, errAllocNormals
	}
	if sizes.TexCoords < 0 {
		return nil, errAllocTexCoords
	}
	if sizes.Faces < 0 || sizes.FaceVertices < 0 {
		return nil, errAllocFaces
	}

	m := &Mesh{Sizes: sizes}

	m.Data.PosX = make([]float32, sizes.Positions)
	m.Data.PosY = make([]float32, sizes.Positions)
	m.Data.PosZ = make([]float32, sizes.Positions)
	m.Data.PosW = make([]float32, sizes.Positions)

	m.Data.NormX = make([]float32, sizes.Normals)
	m.Data.NormY = make([]float32, sizes.Normals)
	m.Data.NormZ = make([]float32, sizes.Normals)

	m.Data.TexU = make([]float32, sizes.TexCoords)
	m.Data.TexV = make([]float32, sizes.TexCoords)

	m.Data.Faces = make([]FaceVertex, sizes.FaceVertices)
	m.Data.FaceSizes = make([]uint32, sizes.Faces)

	return m, nil
}

// Release drops every buffer owned by the mesh and zeroes its sizes.
// Safe to call on an empty mesh and safe to call more than once; the
// second call is a no-op.
func (m *Mesh) Release() {
	if m == nil {
		return
	}
	m.Data = MeshData{}
	m.Sizes = MeshSizes{}
}

// FaceRange returns the window [start, end) of Data.Faces occupied by
// face i, derived by prefix-summing FaceSizes. The bool is false when i
// is out of range.
//
// Parameters:
//   - i: the zero-based face index
//
// Returns:
//   - int: the start of the window (inclusive)
//   - int: the end of the window (exclusive)
//   - bool: whether face i exists
func (m *Mesh) FaceRange(i int) (int, int, bool) {
	if i < 0 || i >= len(m.Data.FaceSizes) {
		return 0, 0, false
	}
	start := 0
	for _, n := range m.Data.FaceSizes[:i] {
		start += int(n)
	}
	return start, start + int(m.Data.FaceSizes[i]), true
}

// Face returns the face-vertices of face i as a sub-slice of the flat
// face array, or nil when i is out of range.
//
// Parameters:
//   - i: the zero-based face index
//
// Returns:
//   - []FaceVertex: the face's vertices in file order
func (m *Mesh) Face(i int) []FaceVertex {
	start, end, ok := m.FaceRange(i)
	if !ok {
		return nil
	}
	return m.Data.Faces[start:end]
}

// ForEachFace walks every face in file order with a single pass over
// FaceSizes, calling fn with the face index and its vertex window.
//
// Parameters:
//   - fn: callback invoked once per face
func (m *Mesh) ForEachFace(fn func(i int, verts []FaceVertex)) {
	cursor := 0
	for i, n := range m.Data.FaceSizes {
		next := cursor + int(n)
		fn(i, m.Data.Faces[cursor:next])
		cursor = next
	}
}
