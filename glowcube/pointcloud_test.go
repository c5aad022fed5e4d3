package glowcube

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarfieldBounds(t *testing.T) {
	points := Starfield(rand.New(rand.NewSource(1)), 2000, StarExtent)
	require.Len(t, points, 2000)
	for _, p := range points {
		for _, c := range p {
			assert.GreaterOrEqual(t, c, float32(-1000))
			assert.LessOrEqual(t, c, float32(1000))
		}
	}
}

func TestGalaxyDiskBounds(t *testing.T) {
	points := GalaxyDisk(rand.New(rand.NewSource(2)), 500, GalaxyRadius, GalaxyDepth)
	require.Len(t, points, 500)
	for _, p := range points {
		r := math.Hypot(float64(p[0]), float64(p[1]))
		assert.LessOrEqual(t, r, float64(GalaxyRadius)+1e-4)
		assert.GreaterOrEqual(t, p[2], float32(-2.5))
		assert.LessOrEqual(t, p[2], float32(2.5))
	}
}

func TestPointCloudsReproducibleWithSeed(t *testing.T) {
	a := Starfield(rand.New(rand.NewSource(42)), 100, StarExtent)
	b := Starfield(rand.New(rand.NewSource(42)), 100, StarExtent)
	assert.Equal(t, a, b)

	c := Starfield(rand.New(rand.NewSource(43)), 100, StarExtent)
	assert.NotEqual(t, a, c)
}

func TestNewRand(t *testing.T) {
	_, seed := NewRand(7)
	assert.Equal(t, int64(7), seed)

	_, seed = NewRand(0)
	assert.NotZero(t, seed)
}
