package mesh

import (
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// Byte strides of one element in each GPU vertex stream.
const (
	// GPUPositionStride is the stride of the position stream (float32x4).
	GPUPositionStride = 16

	// GPUNormalStride is the stride of the normal stream (float32x3).
	GPUNormalStride = 12

	// GPUTexCoordStride is the stride of the texture coordinate stream (float32x2).
	GPUTexCoordStride = 8
)

// PositionBytes interleaves the four position component arrays into a
// little-endian float32x4 stream suitable for direct vertex buffer
// upload. The layout matches PositionBufferLayout.
//
// Returns:
//   - []byte: Positions × 16 bytes, ready for GPU upload
func (m *Mesh) PositionBytes() []byte {
	buf := make([]byte, m.Sizes.Positions*GPUPositionStride)
	for i := 0; i < m.Sizes.Positions; i++ {
		off := i * GPUPositionStride
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(m.Data.PosX[i]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(m.Data.PosY[i]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(m.Data.PosZ[i]))
		binary.LittleEndian.PutUint32(buf[off+12:off+16], math.Float32bits(m.Data.PosW[i]))
	}
	return buf
}

// NormalBytes interleaves the three normal component arrays into a
// little-endian float32x3 stream suitable for direct vertex buffer
// upload. The layout matches NormalBufferLayout.
//
// Returns:
//   - []byte: Normals × 12 bytes, ready for GPU upload
func (m *Mesh) NormalBytes() []byte {
	buf := make([]byte, m.Sizes.Normals*GPUNormalStride)
	for i := 0; i < m.Sizes.Normals; i++ {
		off := i * GPUNormalStride
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(m.Data.NormX[i]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(m.Data.NormY[i]))
		binary.LittleEndian.PutUint32(buf[off+8:off+12], math.Float32bits(m.Data.NormZ[i]))
	}
	return buf
}

// TexCoordBytes interleaves the texture coordinate component arrays into
// a little-endian float32x2 stream suitable for direct vertex buffer
// upload. The layout matches TexCoordBufferLayout.
//
// Returns:
//   - []byte: TexCoords × 8 bytes, ready for GPU upload
func (m *Mesh) TexCoordBytes() []byte {
	buf := make([]byte, m.Sizes.TexCoords*GPUTexCoordStride)
	for i := 0; i < m.Sizes.TexCoords; i++ {
		off := i * GPUTexCoordStride
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(m.Data.TexU[i]))
		binary.LittleEndian.PutUint32(buf[off+4:off+8], math.Float32bits(m.Data.TexV[i]))
	}
	return buf
}

// PositionBufferLayout returns the vertex buffer layout describing the
// stream produced by PositionBytes.
//
// Parameters:
//   - shaderLocation: the @location index the position attribute binds to
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for the position stream
func PositionBufferLayout(shaderLocation uint32) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUPositionStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x4,
				Offset:         0,
				ShaderLocation: shaderLocation,
			},
		},
	}
}

// NormalBufferLayout returns the vertex buffer layout describing the
// stream produced by NormalBytes.
//
// Parameters:
//   - shaderLocation: the @location index the normal attribute binds to
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for the normal stream
func NormalBufferLayout(shaderLocation uint32) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUNormalStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: shaderLocation,
			},
		},
	}
}

// TexCoordBufferLayout returns the vertex buffer layout describing the
// stream produced by TexCoordBytes.
//
// Parameters:
//   - shaderLocation: the @location index the texcoord attribute binds to
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for the texture coordinate stream
func TexCoordBufferLayout(shaderLocation uint32) wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUTexCoordStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{
				Format:         wgpu.VertexFormatFloat32x2,
				Offset:         0,
				ShaderLocation: shaderLocation,
			},
		},
	}
}
