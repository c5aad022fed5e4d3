package game_object

import (
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the object's label.
//
// Parameters:
//   - name: the label
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject is drawn.
//
// Parameters:
//   - enabled: true to render the object, false to skip it
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithModel sets the geometry.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithMaterial sets the surface description.
//
// Parameters:
//   - m: the Material to draw with
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Material
func WithMaterial(m material.Material) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mat = m
	}
}

// WithPosition sets the initial local translation.
//
// Parameters:
//   - x, y, z: the translation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the position
func WithPosition(x, y, z float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial Euler XYZ rotation in radians.
//
// Parameters:
//   - rx, ry, rz: the angles
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the rotation
func WithRotation(rx, ry, rz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - sx, sy, sz: scale factors
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the scale
func WithScale(sx, sy, sz float32) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = [3]float32{sx, sy, sz}
	}
}

// WithCastsShadow marks the object as a shadow caster.
//
// Parameters:
//   - casts: true to cast
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the flag
func WithCastsShadow(casts bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.castsShadow = casts
	}
}

// WithReceivesShadow marks the object as a shadow receiver.
//
// Parameters:
//   - receives: true to receive
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the flag
func WithReceivesShadow(receives bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.receivesShadow = receives
	}
}
