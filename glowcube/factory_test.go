package glowcube

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/game_object"
	"github.com/Carmen-Shannon/glowcube/engine/light"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	objects    []game_object.GameObject
	parents    map[uint64]uint64
	lights     []light.Light
	background *common.Color
	failOn     string
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{parents: make(map[uint64]uint64)}
}

func (g *fakeGraph) Add(obj game_object.GameObject) (uint64, error) {
	if obj.Name() == g.failOn {
		return 0, errors.New("no device")
	}
	g.objects = append(g.objects, obj)
	return uint64(len(g.objects)), nil
}

func (g *fakeGraph) AddChild(parentID uint64, obj game_object.GameObject) (uint64, error) {
	id, err := g.Add(obj)
	if err == nil {
		g.parents[id] = parentID
	}
	return id, err
}

func (g *fakeGraph) AddLight(l light.Light)       { g.lights = append(g.lights, l) }
func (g *fakeGraph) SetBackground(c common.Color) { g.background = &c }

func (g *fakeGraph) byName(name string) (uint64, game_object.GameObject) {
	for i, obj := range g.objects {
		if obj.Name() == name {
			return uint64(i + 1), obj
		}
	}
	return 0, nil
}

func TestBuildInsertsEveryEntityOnce(t *testing.T) {
	g := newFakeGraph()
	e, err := Build(g, rand.New(rand.NewSource(1)), 2000, 500)
	require.NoError(t, err)

	names := make(map[string]int)
	for _, obj := range g.objects {
		names[obj.Name()]++
	}
	assert.Equal(t, map[string]int{
		"cube": 1, "cube_edges": 1, "plane": 1, "stars": 1, "galaxy_a": 1, "galaxy_b": 1,
	}, names)
	require.Len(t, g.lights, 3)
	require.NotNil(t, g.background)
	assert.Equal(t, common.Color{}, *g.background)

	cubeID, _ := g.byName("cube")
	edgesID, _ := g.byName("cube_edges")
	assert.Equal(t, cubeID, g.parents[edgesID])
	assert.Len(t, g.parents, 1)

	assert.Same(t, e.Cube, g.objects[cubeID-1])
	assert.Same(t, e.Light1, g.lights[1])
	assert.Same(t, e.Light2, g.lights[2])
}

func TestBuildCubeAndLights(t *testing.T) {
	g := newFakeGraph()
	e, err := Build(g, rand.New(rand.NewSource(1)), 10, 10)
	require.NoError(t, err)

	assert.True(t, e.Cube.CastsShadow())
	assert.InDelta(t, 0.7, e.CubeMaterial.Metalness(), 1e-6)
	assert.InDelta(t, 0.2, e.CubeMaterial.Roughness(), 1e-6)
	assert.InDelta(t, 0.4, e.CubeMaterial.EmissiveIntensity(), 1e-6)
	assert.Equal(t, common.HexColor(CubeColor), e.CubeMaterial.Color())
	assert.Equal(t, model.TopologyTriangles, e.Cube.Model().Topology())
	assert.Equal(t, model.TopologyLines, e.Edges.Model().Topology())

	assert.Equal(t, light.LightTypeAmbient, e.Ambient.Type())
	assert.Equal(t, [3]float32{5, 3, 5}, e.Light1.Position())
	assert.Equal(t, [3]float32{-5, -3, 5}, e.Light2.Position())
	for _, l := range []light.Light{e.Light1, e.Light2} {
		assert.True(t, l.CastsShadows())
		assert.Equal(t, float32(LightRange), l.Range())
		assert.Equal(t, float32(1), l.Intensity())
	}

	assert.True(t, e.Plane.ReceivesShadow())
	assert.Equal(t, [3]float32{0, 0, PlaneZ}, e.Plane.Position())
	assert.Equal(t, material.PipelineLitTransparent, e.Plane.Material().PipelineKey())
}

func TestBuildPointClouds(t *testing.T) {
	g := newFakeGraph()
	e, err := Build(g, rand.New(rand.NewSource(3)), 2000, 500)
	require.NoError(t, err)

	stars := e.Stars.Model().Points()
	require.Len(t, stars, 2000)
	for _, p := range stars {
		for _, c := range p {
			assert.LessOrEqual(t, math.Abs(float64(c)), 1000.0)
		}
	}

	for i, gal := range Galaxies {
		obj := e.Galaxies[i]
		assert.Equal(t, gal.Position, obj.Position())
		assert.Equal(t, material.PipelinePoints, obj.Material().PipelineKey())
		points := obj.Model().Points()
		require.Len(t, points, 500)
		for _, p := range points {
			// Points are relative to the galaxy node, so the disk is centred on its offset.
			assert.LessOrEqual(t, math.Hypot(float64(p[0]), float64(p[1])), float64(GalaxyRadius)+1e-4)
		}
	}
}

func TestBuildFailureIsReported(t *testing.T) {
	g := newFakeGraph()
	g.failOn = "plane"
	_, err := Build(g, rand.New(rand.NewSource(1)), 10, 10)
	assert.ErrorContains(t, err, "plane")
}

func TestNewStateWiresHandles(t *testing.T) {
	g := newFakeGraph()
	e, err := Build(g, rand.New(rand.NewSource(1)), 10, 10)
	require.NoError(t, err)

	out := &recordingOutput{}
	s := NewState(e, nil, out)
	for range 100 {
		s.Tick()
	}
	assert.InDelta(t, 6.7317, e.Light1.Position()[0], 1e-4)
	assert.InDelta(t, 0.4728, e.CubeMaterial.EmissiveIntensity(), 1e-4)
	assert.InDelta(t, 1.0, e.Cube.Rotation()[0], 1e-5)
	assert.Equal(t, e.Cube.Scale()[0], e.Cube.Scale()[2])
}
