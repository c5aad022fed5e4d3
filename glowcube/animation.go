package glowcube

import "math"

// Per-tick animation constants.
const (
	TimeStep    = 0.01
	RotationXPS = 0.01
	RotationYPS = 0.008
	LightRadius = 8.0

	ScaleAmplitude = 0.05
	ScaleFrequency = 3.0

	EmissiveBase      = 0.2
	EmissiveAmplitude = 0.3
	EmissiveFrequency = 2.0
)

// LightPositions returns the XY position of both orbiting lights at time t. The second light
// is half a turn ahead of the first.
func LightPositions(t float64) (l1, l2 [2]float64) {
	l1 = [2]float64{LightRadius * math.Sin(t), LightRadius * math.Cos(t)}
	l2 = [2]float64{LightRadius * math.Sin(t+math.Pi), LightRadius * math.Cos(t+math.Pi)}
	return l1, l2
}

// CubeScale returns the uniform pulse scale at time t, within [0.95, 1.05].
func CubeScale(t float64) float64 {
	return 1 + ScaleAmplitude*math.Sin(ScaleFrequency*t)
}

// EmissiveIntensity returns the glow strength at time t, within [0.2, 0.5].
func EmissiveIntensity(t float64) float64 {
	return EmissiveBase + EmissiveAmplitude*math.Abs(math.Sin(EmissiveFrequency*t))
}

// Tick advances the animation by one frame. The engine renders the scene right after the
// frame callback returns, under the same lock, so a tick and its frame are never split.
// Light Z is left where the factory put it.
func (s *State) Tick() {
	s.Ticks++
	s.Time += TimeStep
	t := s.Time

	s.RotationX += RotationXPS
	s.RotationY += RotationYPS
	if s.Cube != nil {
		s.Cube.SetRotation(float32(s.RotationX), float32(s.RotationY), 0)
	}

	l1, l2 := LightPositions(t)
	moveXY(s.Light1, l1)
	moveXY(s.Light2, l2)

	s.Scale = CubeScale(t)
	if s.Cube != nil {
		sc := float32(s.Scale)
		s.Cube.SetScale(sc, sc, sc)
	}

	s.Emissive = EmissiveIntensity(t)
	if s.Glow != nil {
		s.Glow.SetEmissiveIntensity(float32(s.Emissive))
	}
}

// Frame is the engine frame callback: one tick per displayed frame regardless of dt.
func (s *State) Frame(_ float32) error {
	s.Tick()
	return nil
}

func moveXY(o Orbiter, xy [2]float64) {
	if o == nil {
		return
	}
	z := o.Position()[2]
	o.SetPosition(float32(xy[0]), float32(xy[1]), z)
}
