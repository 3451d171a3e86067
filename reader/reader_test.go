package reader_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/JordanEmme/obj-reader/mesh"
	"github.com/JordanEmme/obj-reader/reader"
)

// decodeString runs one OBJ source string through a fresh reader.
func decodeString(t *testing.T, src string, options ...reader.ReaderBuilderOption) (*mesh.Mesh, error) {
	t.Helper()
	r := reader.NewReader(reader.BackendTypeOBJ, options...)
	return r.ReadReader("test.obj", strings.NewReader(src))
}

func TestPositionDefaultW(t *testing.T) {
	m, err := decodeString(t, "v 1.0 2.0 3.0\nv 4.0 5.0 6.0 0.5\n")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if m.Sizes.Positions != 2 {
		t.Fatalf("Positions = %d, want 2", m.Sizes.Positions)
	}
	if m.Data.PosX[0] != 1.0 || m.Data.PosY[0] != 2.0 || m.Data.PosZ[0] != 3.0 {
		t.Errorf("position 0 = (%v, %v, %v)", m.Data.PosX[0], m.Data.PosY[0], m.Data.PosZ[0])
	}
	if m.Data.PosW[0] != 1.0 {
		t.Errorf("PosW[0] = %v, want the 1.0 default", m.Data.PosW[0])
	}
	if m.Data.PosW[1] != 0.5 {
		t.Errorf("PosW[1] = %v, want the supplied 0.5", m.Data.PosW[1])
	}
}

func TestFaceFormatsAppliedPerLine(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want mesh.FaceVertex
	}{
		{"full", "f 1/2/3 4/5/6 7/8/9\n", mesh.FaceVertex{Position: 1, TexCoord: 2, Normal: 3}},
		{"no texture", "f 1//3 4//6 7//9\n", mesh.FaceVertex{Position: 1, TexCoord: -1, Normal: 3}},
		{"position only", "f 1 2 3\n", mesh.FaceVertex{Position: 1, TexCoord: -1, Normal: -1}},
		{"position texture", "f 1/2 4/5 7/8\n", mesh.FaceVertex{Position: 1, TexCoord: 2, Normal: -1}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, err := decodeString(t, c.src)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if m.Sizes.Faces != 1 || m.Sizes.FaceVertices != 3 {
				t.Fatalf("sizes = %+v, want 1 face with 3 vertices", m.Sizes)
			}
			if m.Data.Faces[0] != c.want {
				t.Errorf("first face-vertex = %+v, want %+v", m.Data.Faces[0], c.want)
			}
		})
	}
}

func TestSizingMatchesDecode(t *testing.T) {
	// Irregular spacing on purpose: sizing must tokenize fields, not
	// count space characters.
	src := strings.Join([]string{
		"# a quad and a triangle",
		"v  0 0 0",
		"v 1 0 0",
		"v 1 1 0",
		"v 0 1 0",
		"vt 0 0",
		"vt 1 0",
		"vn 0 0 1",
		"f  1/1/1   2/2/1  3/1/1   4/2/1 ",
		"f 1/1/1 2/2/1 3/1/1",
		"",
	}, "\n")

	m, err := decodeString(t, src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := mesh.MeshSizes{Positions: 4, Normals: 1, TexCoords: 2, Faces: 2, FaceVertices: 7}
	if m.Sizes != want {
		t.Fatalf("sizes = %+v, want %+v", m.Sizes, want)
	}

	// Every buffer is filled to exactly its sized length.
	if len(m.Data.PosX) != want.Positions || len(m.Data.PosW) != want.Positions {
		t.Errorf("position buffers sized %d, want %d", len(m.Data.PosX), want.Positions)
	}
	if len(m.Data.Faces) != want.FaceVertices {
		t.Errorf("flat face buffer sized %d, want %d", len(m.Data.Faces), want.FaceVertices)
	}
	if got := m.Data.FaceSizes[0]; got != 4 {
		t.Errorf("FaceSizes[0] = %d, want 4", got)
	}
	if got := m.Data.FaceSizes[1]; got != 3 {
		t.Errorf("FaceSizes[1] = %d, want 3", got)
	}
	// The last face-vertex written is the final token of the second face.
	last := m.Data.Faces[6]
	if last.Position != 3 || last.TexCoord != 1 || last.Normal != 1 {
		t.Errorf("last face-vertex = %+v", last)
	}
}

func TestDegenerateFaceStoredWithDiagnostic(t *testing.T) {
	var diags []reader.Diagnostic
	src := "v 0 0 0\nv 1 1 1\nf 1 2\n"

	m, err := decodeString(t, src, reader.WithDiagnosticHandler(func(d reader.Diagnostic) {
		diags = append(diags, d)
	}))
	if err != nil {
		t.Fatalf("a degenerate face must not be fatal: %v", err)
	}

	if m.Sizes.Faces != 1 || m.Data.FaceSizes[0] != 2 {
		t.Errorf("degenerate face not stored as provided: %+v", m.Sizes)
	}
	if len(diags) != 1 || diags[0].Kind != reader.DiagnosticDegenerateFace {
		t.Fatalf("diagnostics = %+v, want one degenerate-face finding", diags)
	}
	if diags[0].Line != 3 {
		t.Errorf("diagnostic line = %d, want 3", diags[0].Line)
	}
}

func TestUnrecognizedDirectiveSkipped(t *testing.T) {
	var diags []reader.Diagnostic
	src := "x garbage\nv 0 0 0\n"

	m, err := decodeString(t, src, reader.WithDiagnosticHandler(func(d reader.Diagnostic) {
		diags = append(diags, d)
	}))
	if err != nil {
		t.Fatalf("an unrecognized directive must not be fatal: %v", err)
	}

	want := mesh.MeshSizes{Positions: 1}
	if m.Sizes != want {
		t.Errorf("sizes = %+v, want %+v (no counter may move)", m.Sizes, want)
	}
	if len(diags) != 1 || diags[0].Kind != reader.DiagnosticUnrecognizedDirective {
		t.Fatalf("diagnostics = %+v, want one unrecognized-directive finding", diags)
	}
	if diags[0].Text != "x garbage" {
		t.Errorf("diagnostic text = %q", diags[0].Text)
	}
}

func TestMalformedNormalAbortsDecode(t *testing.T) {
	src := "vn 0 0 1\nvn 1.0 abc 0\nvn 1 0 0\n"

	m, err := decodeString(t, src)
	if err == nil {
		t.Fatal("expected a malformed-line error")
	}

	var malformed *reader.MalformedLineError
	if !errors.As(err, &malformed) {
		t.Fatalf("error %v is not a MalformedLineError", err)
	}
	if malformed.Line != 2 {
		t.Errorf("Line = %d, want 2", malformed.Line)
	}
	if malformed.Text != "vn 1.0 abc 0" {
		t.Errorf("Text = %q", malformed.Text)
	}

	// The partial mesh holds only the lines preceding the failure.
	if m == nil {
		t.Fatal("the partial mesh must still be returned")
	}
	if m.Data.NormZ[0] != 1 {
		t.Errorf("NormZ[0] = %v, want 1 from the first line", m.Data.NormZ[0])
	}
	if m.Data.NormX[2] != 0 {
		t.Errorf("NormX[2] = %v, the third line must never have been decoded", m.Data.NormX[2])
	}
}

func TestMalformedPositionAbortsDecode(t *testing.T) {
	cases := []string{
		"v 1.0 2.0\n",           // too few fields
		"v 1 2 3 4 5\n",         // too many fields
		"v 1.0 2.0 three\n",     // non-numeric
		"vt 0.5\n",              // texcoord arity
		"f 1/2/3 4/x/6 7/8/9\n", // bad face index
	}

	for _, src := range cases {
		_, err := decodeString(t, src)
		var malformed *reader.MalformedLineError
		if !errors.As(err, &malformed) {
			t.Errorf("decode(%q) = %v, want a MalformedLineError", src, err)
		}
	}
}

func TestDeterministicDecode(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n"

	a, err := decodeString(t, src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b, err := decodeString(t, src)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Error("two decodes of the same bytes differ")
	}
}

func TestReadRejectsNonObjExtension(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ)

	if _, err := r.Read("model.gltf"); !errors.Is(err, reader.ErrNotObjExtension) {
		t.Errorf("Read(model.gltf) = %v, want ErrNotObjExtension", err)
	}
}

func TestReadMissingFile(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ)

	if _, err := r.Read("testdata/does-not-exist.obj"); err == nil {
		t.Error("expected an open failure")
	}
}

func TestReadCachesByPath(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ)

	first, err := r.Read("testdata/cube.obj")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	second, err := r.Read("testdata/cube.obj")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if first != second {
		t.Error("second Read did not return the cached mesh")
	}
	if got := r.Get("testdata/cube.obj"); got != first {
		t.Error("Get did not return the cached mesh")
	}
}

func TestReadCube(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ)

	m, err := r.Read("testdata/cube.obj")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := mesh.MeshSizes{Positions: 8, Normals: 6, TexCoords: 4, Faces: 6, FaceVertices: 24}
	if m.Sizes != want {
		t.Fatalf("sizes = %+v, want %+v", m.Sizes, want)
	}

	// Each quad window recovered from the prefix sums holds 4 vertices.
	faces := 0
	m.ForEachFace(func(i int, verts []mesh.FaceVertex) {
		faces++
		if len(verts) != 4 {
			t.Errorf("face %d has %d vertices, want 4", i, len(verts))
		}
	})
	if faces != 6 {
		t.Errorf("walked %d faces, want 6", faces)
	}
}

func TestReadAll(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ, reader.WithWorkers(2))

	paths := []string{"testdata/cube.obj", "testdata/quad.obj"}
	meshes, err := r.ReadAll(paths)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}

	if len(meshes) != 2 {
		t.Fatalf("got %d meshes, want 2", len(meshes))
	}
	if meshes["testdata/quad.obj"].Sizes.Faces != 1 {
		t.Errorf("quad decoded with %d faces, want 1", meshes["testdata/quad.obj"].Sizes.Faces)
	}
	// Both meshes land in the shared cache.
	if r.Get("testdata/cube.obj") == nil || r.Get("testdata/quad.obj") == nil {
		t.Error("ReadAll results missing from the cache")
	}
}

func TestReadAllSurfacesFirstError(t *testing.T) {
	r := reader.NewReader(reader.BackendTypeOBJ, reader.WithWorkers(2))

	meshes, err := r.ReadAll([]string{"testdata/cube.obj", "testdata/does-not-exist.obj"})
	if err == nil {
		t.Fatal("expected the missing file to surface an error")
	}
	if meshes["testdata/cube.obj"] == nil {
		t.Error("the valid file must still decode")
	}
}
