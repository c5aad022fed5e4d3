package material

import (
	"github.com/Carmen-Shannon/glowcube/common"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithKind is an option builder that sets the shading model.
//
// Parameters:
//   - kind: standard, line or points
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithKind(kind Kind) MaterialBuilderOption {
	return func(m *material) {
		m.kind = kind
	}
}

// WithColor is an option builder that sets the linear base color.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithOpacity is an option builder that enables alpha blending at the given opacity.
//
// Parameters:
//   - opacity: opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that makes the material transparent
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = opacity
		m.transparent = true
	}
}

// WithMetalness is an option builder that sets the metalness factor.
//
// Parameters:
//   - metalness: 0 for dielectric, 1 for metal
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor.
//
// Parameters:
//   - roughness: 0 for smooth, 1 for rough
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithEmissive is an option builder that sets the emissive color and intensity.
//
// Parameters:
//   - color: the emissive color
//   - intensity: the emissive intensity
//
// Returns:
//   - MaterialBuilderOption: a function that applies the emissive option to a material
func WithEmissive(color common.Color, intensity float32) MaterialBuilderOption {
	return func(m *material) {
		m.emissive = color
		m.emissiveIntensity = intensity
	}
}

// WithPointSize is an option builder that sets the world-space sprite size of a points material.
//
// Parameters:
//   - size: sprite edge length in world units
//
// Returns:
//   - MaterialBuilderOption: a function that applies the point size option to a material
func WithPointSize(size float32) MaterialBuilderOption {
	return func(m *material) {
		m.pointSize = size
	}
}
