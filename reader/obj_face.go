package reader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JordanEmme/obj-reader/mesh"
)

// faceFormat is the face-vertex token format. It is determined once per
// face line from the first token and applied to every token on the line;
// mixed formats within one face are not valid Wavefront input.
type faceFormat int

const (
	facePosition              faceFormat = iota // "1"
	facePositionTexture                         // "1/2"
	facePositionNormal                          // "1//3"
	facePositionTextureNormal                   // "1/2/3"
)

// detectFaceFormat probes one token with a slash scan: zero slashes is
// position-only, one slash adds a texture index, two adjacent slashes
// skip the texture index, two separated slashes carry all three.
func detectFaceFormat(token string) faceFormat {
	slashes := 0
	adjacent := false
	prevSlash := false
	for i := 0; i < len(token); i++ {
		if token[i] == '/' {
			if prevSlash {
				adjacent = true
			}
			slashes++
			prevSlash = true
		} else {
			prevSlash = false
		}
	}

	switch {
	case slashes == 0:
		return facePosition
	case slashes == 1:
		return facePositionTexture
	case adjacent:
		return facePositionNormal
	default:
		return facePositionTextureNormal
	}
}

// parseFaceVertex parses one face token with the line's format, filling
// absent components with mesh.IndexNone. Indices are stored as parsed:
// 1-based, unnormalized.
func parseFaceVertex(token string, format faceFormat) (mesh.FaceVertex, error) {
	fv := mesh.FaceVertex{
		Position: mesh.IndexNone,
		TexCoord: mesh.IndexNone,
		Normal:   mesh.IndexNone,
	}

	var err error
	switch format {
	case facePosition:
		fv.Position, err = parseIndex(token)

	case facePositionTexture:
		pos, tex, ok := strings.Cut(token, "/")
		if !ok {
			return fv, fmt.Errorf("expected pos/tex in %q", token)
		}
		if fv.Position, err = parseIndex(pos); err != nil {
			return fv, err
		}
		fv.TexCoord, err = parseIndex(tex)

	case facePositionNormal:
		pos, norm, ok := strings.Cut(token, "//")
		if !ok {
			return fv, fmt.Errorf("expected pos//norm in %q", token)
		}
		if fv.Position, err = parseIndex(pos); err != nil {
			return fv, err
		}
		fv.Normal, err = parseIndex(norm)

	case facePositionTextureNormal:
		pos, rest, ok := strings.Cut(token, "/")
		if !ok {
			return fv, fmt.Errorf("expected pos/tex/norm in %q", token)
		}
		tex, norm, ok := strings.Cut(rest, "/")
		if !ok {
			return fv, fmt.Errorf("expected pos/tex/norm in %q", token)
		}
		if fv.Position, err = parseIndex(pos); err != nil {
			return fv, err
		}
		if fv.TexCoord, err = parseIndex(tex); err != nil {
			return fv, err
		}
		fv.Normal, err = parseIndex(norm)
	}

	return fv, err
}

func parseIndex(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", s)
	}
	return int32(v), nil
}
