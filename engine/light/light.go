package light

import (
	"sync"

	"github.com/Carmen-Shannon/glowcube/common"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment uniformly. Position, range and shadows are ignored.
	LightTypeAmbient LightType = iota

	// LightTypePoint emits in all directions from a position and fades to zero at its range.
	LightTypePoint
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

type lightImpl struct {
	mu *sync.Mutex

	lightType    LightType
	position     [3]float32
	color        common.Color
	intensity    float32
	lightRange   float32
	enabled      bool
	castsShadows bool
}

// Light is a scene light. Ambient and point lights share the interface; position, range and
// shadow state are meaningless for an ambient light.
//
// All accessors are safe to call while the scene marshals the light set on another goroutine.
type Light interface {
	// Type returns the kind of light.
	//
	// Returns:
	//   - LightType: ambient or point
	Type() LightType

	// Position returns the world-space position.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Color returns the linear RGB color.
	//
	// Returns:
	//   - common.Color: the color
	Color() common.Color

	// Intensity returns the scalar intensity multiplier.
	//
	// Returns:
	//   - float32: the intensity
	Intensity() float32

	// Range returns the distance at which a point light's contribution reaches zero.
	//
	// Returns:
	//   - float32: the range
	Range() float32

	// Enabled returns whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// CastsShadows returns whether the light renders a cube shadow map.
	// Always false for ambient lights.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Radiance returns color scaled by intensity, the value the shaders consume.
	//
	// Returns:
	//   - common.Color: color * intensity
	Radiance() common.Color

	// SetPosition moves the light.
	//
	// Parameters:
	//   - x, y, z: world-space position
	SetPosition(x, y, z float32)

	// SetColor sets the linear RGB color.
	//
	// Parameters:
	//   - color: the color
	SetColor(color common.Color)

	// SetIntensity sets the intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity
	SetIntensity(intensity float32)

	// SetRange sets the falloff range.
	//
	// Parameters:
	//   - lightRange: the range
	SetRange(lightRange float32)

	// SetEnabled toggles the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows toggles shadow casting.
	//
	// Parameters:
	//   - castsShadows: true to cast shadows
	SetCastsShadows(castsShadows bool)
}

var _ Light = &lightImpl{}

// NewLight creates a white, enabled light of intensity 1 with a range of 20.
//
// Parameters:
//   - lightType: ambient or point
//   - opts: functional options applied in order
//
// Returns:
//   - Light: the light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:         &sync.Mutex{},
		lightType:  lightType,
		color:      common.Color{1, 1, 1},
		intensity:  1,
		lightRange: 20,
		enabled:    true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.castsShadows && l.lightType == LightTypePoint
}

func (l *lightImpl) Radiance() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color.Scale(l.intensity)
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = [3]float32{x, y, z}
}

func (l *lightImpl) SetColor(color common.Color) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.color = color
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightRange = lightRange
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castsShadows = castsShadows
}
