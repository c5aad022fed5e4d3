package scene

import (
	"github.com/Carmen-Shannon/glowcube/common"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithComputeWorkers sets the number of worker goroutines used to build per-object uniforms
// in PrepareFrame. Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		s.computeWorkers = max(n, 1)
	}
}

// WithShadowMapSize sets the resolution of each shadow layer. Non-positive sizes are ignored.
//
// Parameters:
//   - size: texels per side
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowMapSize(size int) SceneBuilderOption {
	return func(s *scene) {
		if size > 0 {
			s.shadowSize = size
		}
	}
}

// WithShadowBias sets the depth comparison bias applied in the lit shader.
//
// Parameters:
//   - bias: depth offset in NDC units
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShadowBias(bias float32) SceneBuilderOption {
	return func(s *scene) {
		s.shadowBias = bias
	}
}

// WithAmbientColor sets the ambient term added on top of any ambient lights.
//
// Parameters:
//   - c: linear RGB
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = c
	}
}

// WithBackground sets the clear color of the main pass.
//
// Parameters:
//   - c: linear RGB
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.background = c
	}
}
