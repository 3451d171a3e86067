package reader

import "strings"

// lineKind is the semantic category of one source line.
type lineKind int

const (
	lineUnrecognized lineKind = iota
	lineComment
	linePosition
	lineTexCoord
	lineNormal
	lineParameter
	lineFace
	linePolyline
	lineMaterialLib
	lineMaterialUse
	lineObject
	lineGroup
	lineSmoothing
)

// objPrefixes is the single classification table shared by the sizing
// and decode passes. First match wins.
var objPrefixes = []struct {
	prefix string
	kind   lineKind
}{
	{"# ", lineComment},
	{"v ", linePosition},
	{"vt ", lineTexCoord},
	{"vn ", lineNormal},
	{"vp ", lineParameter},
	{"f ", lineFace},
	{"l ", linePolyline},
	{"mtllib ", lineMaterialLib},
	{"usemtl ", lineMaterialUse},
	{"o ", lineObject},
	{"g ", lineGroup},
	{"s ", lineSmoothing},
}

// classifyLine maps a raw source line to its category by literal prefix
// match. Both passes classify through this one function, so the counts
// accumulated while sizing always line up with the writes made while
// decoding.
func classifyLine(line string) lineKind {
	for _, p := range objPrefixes {
		if strings.HasPrefix(line, p.prefix) {
			return p.kind
		}
	}
	return lineUnrecognized
}
