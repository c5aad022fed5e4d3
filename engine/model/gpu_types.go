package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (24 bytes, tightly packed vertex attributes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is a single mesh vertex.
// Size: 24 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: model-space position
	Normal   [3]float32 // offset 12: model-space normal, zero for line meshes
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (24)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 24-byte buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 24)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(g.Position[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(g.Position[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(g.Position[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(g.Normal[0]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Normal[1]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Normal[2]))
	return buf
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct.
// Matches GPUModelData layout exactly (128 bytes).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the per-object transform uniform.
// Size: 128 bytes (two mat4x4<f32>).
type GPUModelData struct {
	Model  [16]float32 // offset  0: model-to-world matrix
	Normal [16]float32 // offset 64: normal matrix
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (128)
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 128)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}

// GPUSpritePointSource is the canonical WGSL definition of the SpritePoint struct.
// Matches GPUSpritePoint layout exactly (16 bytes).
//
//go:embed assets/sprite_point.wgsl
var GPUSpritePointSource string

// GPUSpritePoint is one entry of a point cloud's storage buffer.
// Size: 16 bytes.
type GPUSpritePoint struct {
	Position [4]float32 // offset 0: xyz model-space position, w = 1
}

// Size returns the size of the GPUSpritePoint struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (16)
func (g *GPUSpritePoint) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSpritePoint struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (g *GPUSpritePoint) Marshal() []byte {
	buf := make([]byte, 16)
	for i, v := range g.Position {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// MarshalVertices packs vertices back to back.
//
// Parameters:
//   - vertices: the vertices
//
// Returns:
//   - []byte: len(vertices) * 24 bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*24)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices packs uint32 indices little-endian.
//
// Parameters:
//   - indices: the indices
//
// Returns:
//   - []byte: len(indices) * 4 bytes
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// MarshalSpritePoints packs a point cloud's storage buffer.
//
// Parameters:
//   - points: model-space positions
//
// Returns:
//   - []byte: len(points) * 16 bytes
func MarshalSpritePoints(points [][3]float32) []byte {
	buf := make([]byte, 0, len(points)*16)
	for _, p := range points {
		sp := GPUSpritePoint{Position: [4]float32{p[0], p[1], p[2], 1}}
		buf = append(buf, sp.Marshal()...)
	}
	return buf
}
