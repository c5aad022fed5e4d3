package material

import (
	"sync"

	"github.com/Carmen-Shannon/glowcube/common"
)

// Kind selects the shading model and therefore the render pipeline of a material.
type Kind int

const (
	// KindStandard is metal/rough shading lit by the scene lights, with emissive and shadows.
	KindStandard Kind = iota

	// KindLine is an unlit solid color drawn as a line list.
	KindLine

	// KindPoints is an unlit solid color drawn as camera-facing point sprites.
	KindPoints
)

// Pipeline keys registered by the scene. A material's PipelineKey is always one of these.
const (
	PipelineLit            = "lit"
	PipelineLitTransparent = "lit_transparent"
	PipelineLine           = "line"
	PipelinePoints         = "points"
	PipelineShadow         = "shadow"
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name              string
	kind              Kind
	color             common.Color
	opacity           float32
	transparent       bool
	metalness         float32
	roughness         float32
	emissive          common.Color
	emissiveIntensity float32
	pointSize         float32
}

// Material describes how an object's surface is shaded. Every property is guarded so the
// animation can change emissive intensity while the scene builds uniforms on worker goroutines.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Kind retrieves the shading model.
	//
	// Returns:
	//   - Kind: standard, line or points
	Kind() Kind

	// Color retrieves the linear base color.
	//
	// Returns:
	//   - common.Color: the base color
	Color() common.Color

	// Opacity retrieves the alpha applied when the material is transparent.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// Transparent reports whether the material is alpha blended.
	//
	// Returns:
	//   - bool: true if blended
	Transparent() bool

	// Metalness retrieves the metalness factor. 0 is dielectric, 1 is metal.
	//
	// Returns:
	//   - float32: the metalness
	Metalness() float32

	// Roughness retrieves the roughness factor. 0 is mirror smooth, 1 is fully rough.
	//
	// Returns:
	//   - float32: the roughness
	Roughness() float32

	// Emissive retrieves the emissive color.
	//
	// Returns:
	//   - common.Color: the emissive color
	Emissive() common.Color

	// EmissiveIntensity retrieves the scalar applied to the emissive color.
	//
	// Returns:
	//   - float32: the emissive intensity
	EmissiveIntensity() float32

	// PointSize retrieves the world-space sprite size of a points material.
	//
	// Returns:
	//   - float32: the point size
	PointSize() float32

	// PipelineKey retrieves the key of the render pipeline this material draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// SetColor sets the linear base color.
	//
	// Parameters:
	//   - color: the base color
	SetColor(color common.Color)

	// SetEmissiveIntensity sets the scalar applied to the emissive color.
	//
	// Parameters:
	//   - intensity: the emissive intensity
	SetEmissiveIntensity(intensity float32)

	// SetOpacity sets the opacity.
	//
	// Parameters:
	//   - opacity: opacity in [0, 1]
	SetOpacity(opacity float32)

	// GPUParams snapshots the material into its uniform layout.
	//
	// Parameters:
	//   - receivesShadow: whether the owning object samples the shadow maps
	//
	// Returns:
	//   - GPUMaterialParams: the uniform ready to marshal
	GPUParams(receivesShadow bool) GPUMaterialParams
}

var _ Material = &material{}

// NewMaterial creates an opaque white standard material with roughness 1.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:        &sync.Mutex{},
		kind:      KindStandard,
		color:     common.Color{1, 1, 1},
		opacity:   1,
		roughness: 1,
		pointSize: 1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Kind() Kind {
	return m.kind
}

func (m *material) Color() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Emissive() common.Color {
	return m.emissive
}

func (m *material) EmissiveIntensity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emissiveIntensity
}

func (m *material) PointSize() float32 {
	return m.pointSize
}

func (m *material) PipelineKey() string {
	switch m.kind {
	case KindLine:
		return PipelineLine
	case KindPoints:
		return PipelinePoints
	default:
		if m.transparent {
			return PipelineLitTransparent
		}
		return PipelineLit
	}
}

func (m *material) SetColor(color common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = color
}

func (m *material) SetEmissiveIntensity(intensity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emissiveIntensity = intensity
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opacity = opacity
}

func (m *material) GPUParams(receivesShadow bool) GPUMaterialParams {
	m.mu.Lock()
	defer m.mu.Unlock()

	alpha := float32(1)
	if m.transparent {
		alpha = m.opacity
	}
	var shadow float32
	if receivesShadow && m.kind == KindStandard {
		shadow = 1
	}
	return GPUMaterialParams{
		Color:    m.color.RGBA(alpha),
		Emissive: m.emissive.RGBA(m.emissiveIntensity),
		Surface:  [4]float32{m.metalness, m.roughness, m.pointSize, shadow},
	}
}
