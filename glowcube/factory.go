package glowcube

import (
	"fmt"
	"math/rand"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/game_object"
	"github.com/Carmen-Shannon/glowcube/engine/light"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
)

// Scene constants.
const (
	CubeSize     = 1.5
	CubeColor    = 0x00a2ff
	CubeEmissive = 0x0066cc

	AmbientColor = 0x111111
	Light1Color  = 0x00ffff
	Light2Color  = 0xff00ff
	LightRange   = 20

	PlaneSize    = 20
	PlaneZ       = -3
	PlaneOpacity = 0.1

	StarExtent    = 2000
	StarSize      = 0.1
	GalaxyRadius  = 20
	GalaxyDepth   = 5
	GalaxySize    = 0.2
	GalaxyOpacity = 0.8
)

// Galaxy is one background particle disk.
type Galaxy struct {
	Name     string
	Color    uint32
	Position [3]float32
}

// Galaxies are the two background disks.
var Galaxies = [2]Galaxy{
	{Name: "galaxy_a", Color: 0x9966ff, Position: [3]float32{-30, 20, -100}},
	{Name: "galaxy_b", Color: 0x0099ff, Position: [3]float32{50, -40, -150}},
}

// Graph is where the factory inserts entities.
type Graph interface {
	Add(obj game_object.GameObject) (uint64, error)
	AddChild(parentID uint64, obj game_object.GameObject) (uint64, error)
	AddLight(l light.Light)
	SetBackground(c common.Color)
}

// Entities are the handles the factory returns for per-frame mutation.
type Entities struct {
	Cube         game_object.GameObject
	CubeMaterial material.Material
	Edges        game_object.GameObject
	Plane        game_object.GameObject
	Stars        game_object.GameObject
	Galaxies     [2]game_object.GameObject
	Ambient      light.Light
	Light1       light.Light
	Light2       light.Light
}

// Build inserts the whole scene into g exactly once. starCount and galaxyPoints size the
// point clouds, which are drawn from rng.
func Build(g Graph, rng *rand.Rand, starCount, galaxyPoints int) (*Entities, error) {
	e := &Entities{}
	g.SetBackground(common.HexColor(0x000000))

	e.CubeMaterial = material.NewMaterial(
		material.WithName("cube"),
		material.WithColor(common.HexColor(CubeColor)),
		material.WithMetalness(0.7),
		material.WithRoughness(0.2),
		material.WithEmissive(common.HexColor(CubeEmissive), 0.4),
	)
	e.Cube = game_object.NewGameObject(
		game_object.WithName("cube"),
		game_object.WithModel(model.NewBoxMesh(CubeSize)),
		game_object.WithMaterial(e.CubeMaterial),
		game_object.WithCastsShadow(true),
	)
	cubeID, err := g.Add(e.Cube)
	if err != nil {
		return nil, fmt.Errorf("failed to add cube: %w", err)
	}

	e.Edges = game_object.NewGameObject(
		game_object.WithName("cube_edges"),
		game_object.WithModel(model.NewBoxEdgesMesh(CubeSize)),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("cube_edges"),
			material.WithKind(material.KindLine),
			material.WithColor(common.HexColor(0xffffff)),
		)),
	)
	if _, err := g.AddChild(cubeID, e.Edges); err != nil {
		return nil, fmt.Errorf("failed to add cube edges: %w", err)
	}

	e.Ambient = light.NewLight(light.LightTypeAmbient, light.WithColor(common.HexColor(AmbientColor)))
	e.Light1 = light.NewLight(light.LightTypePoint,
		light.WithColor(common.HexColor(Light1Color)),
		light.WithIntensity(1),
		light.WithRange(LightRange),
		light.WithPosition(5, 3, 5),
		light.WithCastsShadows(true),
	)
	e.Light2 = light.NewLight(light.LightTypePoint,
		light.WithColor(common.HexColor(Light2Color)),
		light.WithIntensity(1),
		light.WithRange(LightRange),
		light.WithPosition(-5, -3, 5),
		light.WithCastsShadows(true),
	)
	g.AddLight(e.Ambient)
	g.AddLight(e.Light1)
	g.AddLight(e.Light2)

	e.Plane = game_object.NewGameObject(
		game_object.WithName("plane"),
		game_object.WithModel(model.NewPlaneMesh(PlaneSize, PlaneSize)),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("plane"),
			material.WithColor(common.HexColor(0x000000)),
			material.WithOpacity(PlaneOpacity),
		)),
		game_object.WithPosition(0, 0, PlaneZ),
		game_object.WithReceivesShadow(true),
	)
	if _, err := g.Add(e.Plane); err != nil {
		return nil, fmt.Errorf("failed to add plane: %w", err)
	}

	e.Stars = game_object.NewGameObject(
		game_object.WithName("stars"),
		game_object.WithModel(model.NewPointCloud("stars", Starfield(rng, starCount, StarExtent))),
		game_object.WithMaterial(material.NewMaterial(
			material.WithName("stars"),
			material.WithKind(material.KindPoints),
			material.WithColor(common.HexColor(0xffffff)),
			material.WithPointSize(StarSize),
		)),
	)
	if _, err := g.Add(e.Stars); err != nil {
		return nil, fmt.Errorf("failed to add starfield: %w", err)
	}

	for i, gal := range Galaxies {
		e.Galaxies[i] = game_object.NewGameObject(
			game_object.WithName(gal.Name),
			game_object.WithModel(model.NewPointCloud(gal.Name, GalaxyDisk(rng, galaxyPoints, GalaxyRadius, GalaxyDepth))),
			game_object.WithMaterial(material.NewMaterial(
				material.WithName(gal.Name),
				material.WithKind(material.KindPoints),
				material.WithColor(common.HexColor(gal.Color)),
				material.WithPointSize(GalaxySize),
				material.WithOpacity(GalaxyOpacity),
			)),
			game_object.WithPosition(gal.Position[0], gal.Position[1], gal.Position[2]),
		)
		if _, err := g.Add(e.Galaxies[i]); err != nil {
			return nil, fmt.Errorf("failed to add %s: %w", gal.Name, err)
		}
	}

	return e, nil
}

// NewState wires the factory handles into an animation state.
func NewState(e *Entities, cam Lens, out Output) *State {
	return &State{
		Cube:   e.Cube,
		Glow:   e.CubeMaterial,
		Light1: e.Light1,
		Light2: e.Light2,
		Camera: cam,
		Output: out,
	}
}
