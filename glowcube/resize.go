package glowcube

// Resize applies a new surface size to the camera and the render output. Zero or negative
// dimensions, as reported for a minimized window, are ignored, and so is a repeat of the
// last applied size.
func (s *State) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width == s.Width && height == s.Height {
		return
	}
	if s.Camera != nil {
		s.Camera.SetViewport(width, height)
	}
	if s.Output != nil {
		s.Output.Resize(width, height)
	}
	s.Width, s.Height = width, height
}

// Aspect returns the aspect ratio of the last applied size, or 0 before the first resize.
func (s *State) Aspect() float64 {
	if s.Height == 0 {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}
