package game_object

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine/model"
	"github.com/Carmen-Shannon/glowcube/engine/renderer/material"
	"github.com/stretchr/testify/assert"
)

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject()

	assert.True(t, obj.Enabled())
	assert.Equal(t, [3]float32{1, 1, 1}, obj.Scale())
	assert.Equal(t, [3]float32{}, obj.Position())
	assert.False(t, obj.CastsShadow())
	assert.False(t, obj.ReceivesShadow())
	assert.Nil(t, obj.Model())
	assert.Nil(t, obj.Material())
}

func TestBuilderOptions(t *testing.T) {
	mdl := model.NewBoxMesh(1)
	mat := material.NewMaterial()
	obj := NewGameObject(
		WithName("cube"),
		WithModel(mdl),
		WithMaterial(mat),
		WithPosition(1, 2, 3),
		WithRotation(0.1, 0.2, 0.3),
		WithScale(2, 2, 2),
		WithCastsShadow(true),
		WithReceivesShadow(true),
		WithEnabled(false),
	)

	assert.Equal(t, "cube", obj.Name())
	assert.Same(t, mdl, obj.Model())
	assert.Same(t, mat, obj.Material())
	assert.Equal(t, [3]float32{1, 2, 3}, obj.Position())
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, obj.Rotation())
	assert.Equal(t, [3]float32{2, 2, 2}, obj.Scale())
	assert.True(t, obj.CastsShadow())
	assert.True(t, obj.ReceivesShadow())
	assert.False(t, obj.Enabled())
}

func TestLocalMatrixMatchesModelMatrix(t *testing.T) {
	obj := NewGameObject(WithPosition(0, 0, -3), WithRotation(0.5, 0.4, 0), WithScale(1.05, 1.05, 1.05))

	var want [16]float32
	common.BuildModelMatrix(want[:], [3]float32{0, 0, -3}, [3]float32{0.5, 0.4, 0}, [3]float32{1.05, 1.05, 1.05})
	assert.Equal(t, want, obj.LocalMatrix())
}

func TestConcurrentSetters(t *testing.T) {
	obj := NewGameObject()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			obj.SetRotation(float32(i), float32(i), 0)
			obj.SetScale(1, 1, 1)
		}()
		go func() {
			defer wg.Done()
			_ = obj.LocalMatrix()
		}()
	}
	wg.Wait()

	obj.SetID(7)
	assert.Equal(t, uint64(7), obj.ID())
}
