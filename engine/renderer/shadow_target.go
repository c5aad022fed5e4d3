package renderer

import "github.com/cogentcore/webgpu/wgpu"

// ShadowDepthArray is a Depth32Float 2D array texture used as the render target of the shadow
// passes and sampled by lit fragment shaders.
type ShadowDepthArray struct {
	// Texture is the underlying array texture.
	Texture *wgpu.Texture

	// View covers every layer with a 2D array dimension, for sampling.
	View *wgpu.TextureView

	// Layers holds one single-layer 2D view per array layer, for use as a depth attachment.
	Layers []*wgpu.TextureView

	// Size is the width and height of each layer in texels.
	Size int
}

// Release frees the views and the texture.
func (s *ShadowDepthArray) Release() {
	for i, v := range s.Layers {
		if v != nil {
			v.Release()
		}
		s.Layers[i] = nil
	}
	if s.View != nil {
		s.View.Release()
		s.View = nil
	}
	if s.Texture != nil {
		s.Texture.Release()
		s.Texture = nil
	}
}
