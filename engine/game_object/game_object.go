package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
)

type gameObject struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	enabled atomic.Bool

	mdl model.Model
	mat material.Material

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	castsShadow    bool
	receivesShadow bool
}

// GameObject is a drawable scene entity: a model, the material it is drawn with and a local
// transform. Rotation is Euler XYZ in radians. All accessors are safe for concurrent use so
// the frame callback can animate an object while the scene reads it.
type GameObject interface {
	// ID returns the identifier assigned by the scene, 0 before the object is added.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's label.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether the object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the geometry.
	//
	// Returns:
	//   - model.Model: the model or nil
	Model() model.Model

	// Material returns the surface description.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// Position returns the local translation.
	//
	// Returns:
	//   - [3]float32: x, y, z
	Position() [3]float32

	// Rotation returns the local Euler XYZ rotation in radians.
	//
	// Returns:
	//   - [3]float32: rx, ry, rz
	Rotation() [3]float32

	// Scale returns the local scale.
	//
	// Returns:
	//   - [3]float32: sx, sy, sz
	Scale() [3]float32

	// CastsShadow reports whether the object is drawn into shadow maps.
	//
	// Returns:
	//   - bool: true if it casts
	CastsShadow() bool

	// ReceivesShadow reports whether lighting on the object is attenuated by shadow maps.
	//
	// Returns:
	//   - bool: true if it receives
	ReceivesShadow() bool

	// LocalMatrix composes translation, rotation and scale into a column-major matrix.
	//
	// Returns:
	//   - [16]float32: the local matrix
	LocalMatrix() [16]float32

	// SetID assigns the scene identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled toggles drawing.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: the translation
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler XYZ rotation.
	//
	// Parameters:
	//   - rx, ry, rz: angles in radians
	SetRotation(rx, ry, rz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale factors
	SetScale(sx, sy, sz float32)

	// SetCastsShadow toggles shadow casting.
	//
	// Parameters:
	//   - casts: true to cast
	SetCastsShadow(casts bool)

	// SetReceivesShadow toggles shadow receiving.
	//
	// Parameters:
	//   - receives: true to receive
	SetReceivesShadow(receives bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled GameObject with unit scale.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.RWMutex{},
		scale: [3]float32{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Material() material.Material {
	return g.mat
}

func (g *gameObject) Position() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation
}

func (g *gameObject) Scale() [3]float32 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale
}

func (g *gameObject) CastsShadow() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.castsShadow
}

func (g *gameObject) ReceivesShadow() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.receivesShadow
}

func (g *gameObject) LocalMatrix() [16]float32 {
	g.mu.RLock()
	pos, rot, scale := g.position, g.rotation, g.scale
	g.mu.RUnlock()

	var m [16]float32
	common.BuildModelMatrix(m[:], pos, rot, scale)
	return m
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = [3]float32{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = [3]float32{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = [3]float32{sx, sy, sz}
}

func (g *gameObject) SetCastsShadow(casts bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.castsShadow = casts
}

func (g *gameObject) SetReceivesShadow(receives bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.receivesShadow = receives
}
