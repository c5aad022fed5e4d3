package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPULightSetSource is the WGSL definition of PointLight and LightSet.
// Matches GPUPointLight (32 bytes) and GPULightSet (144 bytes).
//
//go:embed assets/light_set.wgsl
var GPULightSetSource string

// GPUPointLight is one entry of the LightSet point light array.
// Size: 32 bytes.
type GPUPointLight struct {
	Position    [3]float32 // offset  0
	Range       float32    // offset 12: distance at which the light fades to zero
	Radiance    [3]float32 // offset 16: color * intensity
	ShadowLayer int32      // offset 28: first depth array layer of the light's cube, -1 if none
}

// GPULightSet is the scene-wide lighting uniform read by the lit fragment shader.
// Size: 144 bytes.
//
// Layout:
//
//	vec3<f32>                 ambient      (12 bytes, offset 0)
//	u32                       point_count  ( 4 bytes, offset 12)
//	array<PointLight, 4>      points       (128 bytes, offset 16)
type GPULightSet struct {
	Ambient    [3]float32
	PointCount uint32
	Points     [MaxPointLights]GPUPointLight
}

// Size returns the size of the GPULightSet struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (s *GPULightSet) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the light set for GPU upload.
//
// Returns:
//   - []byte: 144-byte buffer
func (s *GPULightSet) Marshal() []byte {
	buf := make([]byte, s.Size())
	putVec3(buf[0:], s.Ambient)
	binary.LittleEndian.PutUint32(buf[12:16], s.PointCount)
	for i, p := range s.Points {
		off := 16 + i*32
		putVec3(buf[off:], p.Position)
		binary.LittleEndian.PutUint32(buf[off+12:], math.Float32bits(p.Range))
		putVec3(buf[off+16:], p.Radiance)
		binary.LittleEndian.PutUint32(buf[off+28:], uint32(p.ShadowLayer))
	}
	return buf
}

// GPUShadowSetSource is the WGSL definition of ShadowSet.
// Matches GPUShadowSet (784 bytes).
//
//go:embed assets/shadow_set.wgsl
var GPUShadowSetSource string

// GPUShadowSet holds every cube face matrix the lit fragment shader reprojects into.
// Size: 784 bytes.
//
// Layout:
//
//	array<mat4x4<f32>, 12>  face_vp       (768 bytes, offset 0)
//	f32                     texel_size    (  4 bytes, offset 768)
//	f32                     bias          (  4 bytes, offset 772)
//	u32                     caster_count  (  4 bytes, offset 776)
//	u32                     _pad          (  4 bytes, offset 780)
type GPUShadowSet struct {
	FaceVP      [ShadowLayerCount][16]float32
	TexelSize   float32
	Bias        float32
	CasterCount uint32
	_pad        uint32
}

// Size returns the size of the GPUShadowSet struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (784)
func (s *GPUShadowSet) Size() int {
	return int(unsafe.Sizeof(*s))
}

// Marshal serializes the shadow set for GPU upload.
//
// Returns:
//   - []byte: 784-byte buffer
func (s *GPUShadowSet) Marshal() []byte {
	buf := make([]byte, s.Size())
	for layer, m := range s.FaceVP {
		putMat4(buf[layer*64:], m)
	}
	binary.LittleEndian.PutUint32(buf[768:], math.Float32bits(s.TexelSize))
	binary.LittleEndian.PutUint32(buf[772:], math.Float32bits(s.Bias))
	binary.LittleEndian.PutUint32(buf[776:], s.CasterCount)
	return buf
}

// GPUShadowFaceSource is the WGSL definition of ShadowFace.
//
//go:embed assets/shadow_face.wgsl
var GPUShadowFaceSource string

// GPUShadowFace is the uniform bound while rendering a single shadow layer.
// Size: 64 bytes.
type GPUShadowFace struct {
	ViewProj [16]float32
}

// Size returns the size of the GPUShadowFace struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (f *GPUShadowFace) Size() int {
	return int(unsafe.Sizeof(*f))
}

// Marshal serializes the face matrix for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer
func (f *GPUShadowFace) Marshal() []byte {
	buf := make([]byte, 64)
	putMat4(buf, f.ViewProj)
	return buf
}

// NewGPULightSet packs lights into the LightSet uniform. Ambient lights are summed into the
// ambient term. Enabled point lights fill the point array in order up to MaxPointLights, and
// the first MaxShadowCasters of them that cast shadows are assigned cube map slots.
//
// Parameters:
//   - lights: every light in the scene
//
// Returns:
//   - GPULightSet: the packed uniform
//   - []Light: the shadow casters in slot order
func NewGPULightSet(lights []Light) (GPULightSet, []Light) {
	var set GPULightSet
	casters := make([]Light, 0, MaxShadowCasters)

	for _, l := range lights {
		if !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeAmbient:
			r := l.Radiance()
			set.Ambient[0] += r[0]
			set.Ambient[1] += r[1]
			set.Ambient[2] += r[2]
		case LightTypePoint:
			if set.PointCount >= MaxPointLights {
				continue
			}
			p := GPUPointLight{
				Position:    l.Position(),
				Range:       l.Range(),
				Radiance:    l.Radiance(),
				ShadowLayer: -1,
			}
			if l.CastsShadows() && len(casters) < MaxShadowCasters {
				p.ShadowLayer = int32(ShadowLayer(len(casters), 0))
				casters = append(casters, l)
			}
			set.Points[set.PointCount] = p
			set.PointCount++
		}
	}
	return set, casters
}

// NewGPUShadowSet computes the face matrices of every caster. Unused layers stay zero.
//
// Parameters:
//   - casters: shadow casters in slot order, as returned by NewGPULightSet
//   - mapSize: shadow layer resolution in texels
//   - bias: depth comparison bias
//
// Returns:
//   - GPUShadowSet: the packed uniform
func NewGPUShadowSet(casters []Light, mapSize int, bias float32) GPUShadowSet {
	set := GPUShadowSet{
		TexelSize: 1 / float32(max(mapSize, 1)),
		Bias:      bias,
	}
	for i, l := range casters {
		if i >= MaxShadowCasters {
			break
		}
		for face, m := range CubeFaceMatrices(l.Position(), l.Range()) {
			set.FaceVP[ShadowLayer(i, face)] = m
		}
		set.CasterCount++
	}
	return set
}

func putVec3(buf []byte, v [3]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(v[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(v[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(v[2]))
}

func putMat4(buf []byte, m [16]float32) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
