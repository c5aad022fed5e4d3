package glowcube

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCube struct {
	rotation [3]float32
	scale    [3]float32
}

func (c *fakeCube) SetRotation(rx, ry, rz float32) { c.rotation = [3]float32{rx, ry, rz} }
func (c *fakeCube) SetScale(sx, sy, sz float32)    { c.scale = [3]float32{sx, sy, sz} }

type fakeGlow struct{ intensity float32 }

func (g *fakeGlow) SetEmissiveIntensity(intensity float32) { g.intensity = intensity }

type fakeLight struct{ pos [3]float32 }

func (l *fakeLight) Position() [3]float32        { return l.pos }
func (l *fakeLight) SetPosition(x, y, z float32) { l.pos = [3]float32{x, y, z} }

func newAnimatedState() (*State, *fakeCube, *fakeGlow, *fakeLight, *fakeLight) {
	cube, glow := &fakeCube{}, &fakeGlow{}
	l1 := &fakeLight{pos: [3]float32{5, 3, 5}}
	l2 := &fakeLight{pos: [3]float32{-5, -3, 5}}
	return &State{Cube: cube, Glow: glow, Light1: l1, Light2: l2}, cube, glow, l1, l2
}

func TestLightPositionsAfterNTicks(t *testing.T) {
	s, _, _, l1, l2 := newAnimatedState()
	for n := 1; n <= 500; n++ {
		s.Tick()
		want1, want2 := LightPositions(0.01 * float64(n))
		assert.InDelta(t, 8*math.Sin(0.01*float64(n)), want1[0], 1e-9)
		assert.InDelta(t, 8*math.Cos(0.01*float64(n)), want1[1], 1e-9)
		assert.InDelta(t, want1[0], float64(l1.pos[0]), 1e-4)
		assert.InDelta(t, want1[1], float64(l1.pos[1]), 1e-4)
		assert.InDelta(t, want2[0], float64(l2.pos[0]), 1e-4)
		assert.InDelta(t, want2[1], float64(l2.pos[1]), 1e-4)
	}
	// Z never moves.
	assert.Equal(t, float32(5), l1.pos[2])
	assert.Equal(t, float32(5), l2.pos[2])
}

func TestLightsStayOpposite(t *testing.T) {
	s, _, _, l1, l2 := newAnimatedState()
	for range 1000 {
		s.Tick()
		assert.InDelta(t, -l1.pos[0], l2.pos[0], 1e-5)
		assert.InDelta(t, -l1.pos[1], l2.pos[1], 1e-5)
	}
}

func TestScaleAndEmissiveBounds(t *testing.T) {
	s, cube, glow, _, _ := newAnimatedState()
	for range 5000 {
		s.Tick()
		assert.GreaterOrEqual(t, s.Scale, 0.95)
		assert.LessOrEqual(t, s.Scale, 1.05)
		assert.GreaterOrEqual(t, s.Emissive, 0.2)
		assert.LessOrEqual(t, s.Emissive, 0.5)
		assert.Equal(t, cube.scale[0], cube.scale[1])
		assert.Equal(t, cube.scale[1], cube.scale[2])
		assert.Equal(t, float32(s.Emissive), glow.intensity)
	}
}

func TestRotationAccumulates(t *testing.T) {
	s, cube, _, _, _ := newAnimatedState()
	const n = 1234
	for range n {
		s.Tick()
	}
	assert.InDelta(t, n*RotationXPS, s.RotationX, 1e-9)
	assert.InDelta(t, n*RotationYPS, s.RotationY, 1e-9)
	assert.InDelta(t, 0.8, s.RotationY/s.RotationX, 1e-12)
	assert.Equal(t, float32(s.RotationX), cube.rotation[0])
	assert.Equal(t, float32(0), cube.rotation[2])

	// Replaying from zero lands on the same value.
	replay, _, _, _, _ := newAnimatedState()
	for range n {
		replay.Tick()
	}
	assert.Equal(t, s.RotationX, replay.RotationX)
}

func TestHundredTicks(t *testing.T) {
	s, _, glow, l1, _ := newAnimatedState()
	for range 100 {
		require.NoError(t, s.Frame(0.5))
	}
	assert.Equal(t, uint64(100), s.Ticks)
	assert.InDelta(t, 1.0, s.Time, 1e-12)
	assert.InDelta(t, 6.7317, float64(l1.pos[0]), 1e-4)
	assert.InDelta(t, 4.3224, float64(l1.pos[1]), 1e-4)
	assert.InDelta(t, 0.4728, s.Emissive, 1e-4)
	assert.InDelta(t, 0.4728, float64(glow.intensity), 1e-4)
}

func TestTickWithoutHandles(t *testing.T) {
	var s State
	assert.NotPanics(t, func() { s.Tick() })
	assert.InDelta(t, TimeStep, s.Time, 0)
}
