package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Bounds computes the axis-aligned bounding box of the mesh positions.
// A mesh with no positions yields two zero vectors.
//
// Returns:
//   - mgl32.Vec3: the minimum corner of the bounding box
//   - mgl32.Vec3: the maximum corner of the bounding box
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if m.Sizes.Positions == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}

	bmin := mgl32.Vec3{m.Data.PosX[0], m.Data.PosY[0], m.Data.PosZ[0]}
	bmax := bmin

	for i := 1; i < m.Sizes.Positions; i++ {
		p := mgl32.Vec3{m.Data.PosX[i], m.Data.PosY[i], m.Data.PosZ[i]}
		for j := 0; j < 3; j++ {
			if p[j] < bmin[j] {
				bmin[j] = p[j]
			}
			if p[j] > bmax[j] {
				bmax[j] = p[j]
			}
		}
	}

	return bmin, bmax
}

// BoundingRadius calculates the bounding sphere radius of the mesh: the
// maximum distance from the origin across all vertex positions.
//
// Returns:
//   - float32: the maximum distance from the origin
func (m *Mesh) BoundingRadius() float32 {
	var maxDistSq float32
	for i := 0; i < m.Sizes.Positions; i++ {
		p := mgl32.Vec3{m.Data.PosX[i], m.Data.PosY[i], m.Data.PosZ[i]}
		distSq := p.Dot(p)
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
