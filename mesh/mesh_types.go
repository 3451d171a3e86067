package mesh

// IndexNone marks a face-vertex component that is absent from the source
// file, e.g. the texture index of a "pos//norm" face token. Present
// indices keep the raw 1-based values the file carries.
const IndexNone int32 = -1

// MeshSizes stores the exact element counts needed to size every mesh
// buffer before allocation. The counts come from a full pre-scan of the
// same byte stream the decode pass later consumes, so they match the
// number of elements the decode pass writes exactly.
type MeshSizes struct {
	// Positions is the number of vertex position records ("v" lines).
	Positions int

	// Normals is the number of vertex normal records ("vn" lines).
	Normals int

	// TexCoords is the number of texture coordinate records ("vt" lines).
	TexCoords int

	// Faces is the number of face records ("f" lines).
	Faces int

	// FaceVertices is the length of the flattened face-vertex array:
	// the sum of every face's vertex count.
	FaceVertices int
}

// FaceVertex references one corner of a polygon. Position is always set;
// TexCoord and Normal are IndexNone when the face token did not carry
// them. Indices are stored as parsed: 1-based, unnormalized.
type FaceVertex struct {
	// Position is the 1-based index into the position arrays.
	Position int32

	// TexCoord is the 1-based index into the texture coordinate arrays,
	// or IndexNone.
	TexCoord int32

	// Normal is the 1-based index into the normal arrays, or IndexNone.
	Normal int32
}

// MeshData is the struct-of-arrays mesh payload: one contiguous sequence
// per scalar component rather than interleaved per-vertex records. Any
// re-ordering into vec3/vec4 style records is left to the consumer.
type MeshData struct {
	// Vertex position components. PosW is 1.0 for source lines that
	// carry only three coordinates.
	PosX []float32
	PosY []float32
	PosZ []float32
	PosW []float32

	// Vertex normal components.
	NormX []float32
	NormY []float32
	NormZ []float32

	// Texture coordinate components.
	TexU []float32
	TexV []float32

	// Faces holds every face's vertices concatenated in file order.
	Faces []FaceVertex

	// FaceSizes holds the vertex count of each face. Face i's vertices
	// occupy the window of Faces starting at the prefix sum of
	// FaceSizes[0..i).
	FaceSizes []uint32
}

// Mesh couples the pre-computed sizes with the populated arrays. A Mesh
// is written once during decoding and never mutated afterwards; the
// caller owns it from the moment the reader returns it.
type Mesh struct {
	Sizes MeshSizes
	Data  MeshData
}
