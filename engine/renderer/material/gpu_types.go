package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (48 bytes).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the per-object material uniform shared by the lit, line and points shaders.
// Size: 48 bytes (three vec4<f32>).
type GPUMaterialParams struct {
	Color    [4]float32 // offset  0: linear RGB + opacity
	Emissive [4]float32 // offset 16: linear RGB + emissive intensity
	Surface  [4]float32 // offset 32: metalness, roughness, point size, receives shadow
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i, v := range [12]float32{
		g.Color[0], g.Color[1], g.Color[2], g.Color[3],
		g.Emissive[0], g.Emissive[1], g.Emissive[2], g.Emissive[3],
		g.Surface[0], g.Surface[1], g.Surface[2], g.Surface[3],
	} {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
