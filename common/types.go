package common

import (
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// SamplerStagingData carries the sampler settings used when a bind group provider
// needs a GPU sampler. Zero-valued fields fall back to renderer defaults.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	// Compare turns the sampler into a comparison sampler when set (shadow maps).
	Compare       wgpu.CompareFunction
	MaxAnisotropy uint16
}

// Color is a linear RGB triple in [0, 1].
type Color [3]float32

// HexColor converts a packed sRGB 0xRRGGBB value into a linear Color.
// Surfaces are configured with an sRGB format, so the encode on write restores the
// authored value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - Color: the unpacked linear color
func HexColor(hex uint32) Color {
	return Color{
		srgbToLinear(float32((hex>>16)&0xff) / 255.0),
		srgbToLinear(float32((hex>>8)&0xff) / 255.0),
		srgbToLinear(float32(hex&0xff) / 255.0),
	}
}

func srgbToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math32.Pow((c+0.055)/1.055, 2.4)
}

// Scale returns c with every channel multiplied by s.
func (c Color) Scale(s float32) Color {
	return Color{c[0] * s, c[1] * s, c[2] * s}
}

// RGBA returns c extended with the given alpha.
func (c Color) RGBA(alpha float32) [4]float32 {
	return [4]float32{c[0], c[1], c[2], alpha}
}
