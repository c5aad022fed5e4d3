package camera

import (
	"testing"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()

	assert.Equal(t, [3]float32{0, 0, 5}, c.Position())
	assert.Equal(t, [3]float32{0, 0, 0}, c.Target())
	assert.InDelta(t, 75*math32.Pi/180, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	require.NotNil(t, c.BindGroupProvider())
}

func TestSetViewportRecomputesProjection(t *testing.T) {
	c := NewCamera(WithViewport(800, 600))
	before := c.ProjectionMatrix()

	c.SetViewport(1600, 600)
	after := c.ProjectionMatrix()

	assert.InDelta(t, 1600.0/600.0, c.Aspect(), 1e-6)
	assert.NotEqual(t, before[0], after[0])
	assert.Equal(t, before[5], after[5])

	w, h := c.Viewport()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 600, h)
}

func TestSetViewportIdempotent(t *testing.T) {
	c := NewCamera()
	c.SetViewport(1280, 720)
	once := c.ProjectionMatrix()
	c.SetViewport(1280, 720)

	assert.Equal(t, once, c.ProjectionMatrix())
	assert.InDelta(t, 1280.0/720.0, c.Aspect(), 1e-6)
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	c := NewCamera(WithViewport(1000, 500))
	c.SetAspect(0)
	c.SetAspect(-1)
	c.SetAspect(math32.Inf(1))
	c.SetViewport(0, 500)

	assert.InDelta(t, 2, c.Aspect(), 1e-6)
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(WithViewport(1920, 1080))
	vp := c.ViewProjectionMatrix()

	clip := common.TransformPoint(vp[:], [3]float32{0, 0, 0})
	assert.InDelta(t, 0, clip[0], 1e-5)
	assert.InDelta(t, 0, clip[1], 1e-5)
}

func TestGPUUniform(t *testing.T) {
	c := NewCamera(WithViewport(640, 480), WithPosition(1, 2, 3))
	u := c.GPUUniform()

	assert.Equal(t, 96, u.Size())
	assert.Len(t, u.Marshal(), 96)
	assert.Equal(t, [4]float32{1, 2, 3, 1}, u.Position)
	assert.Equal(t, float32(640), u.Viewport[0])
	assert.Equal(t, float32(480), u.Viewport[1])
	assert.Equal(t, c.ProjectionMatrix()[5], u.Viewport[2])
}
