package glowcube

import (
	"testing"

	"github.com/Carmen-Shannon/glowcube/engine/camera"
	"github.com/stretchr/testify/assert"
)

type recordingOutput struct{ sizes [][2]int }

func (o *recordingOutput) Resize(width, height int) {
	o.sizes = append(o.sizes, [2]int{width, height})
}

func TestResizeUpdatesCameraAndOutput(t *testing.T) {
	cam := camera.NewCamera()
	out := &recordingOutput{}
	s := &State{Camera: cam, Output: out}

	s.Resize(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect(), 1e-6)
	assert.InDelta(t, 1920.0/1080.0, s.Aspect(), 1e-12)
	assert.Equal(t, [][2]int{{1920, 1080}}, out.sizes)
}

func TestResizeIdempotent(t *testing.T) {
	cam := camera.NewCamera()
	out := &recordingOutput{}
	s := &State{Camera: cam, Output: out}

	s.Resize(800, 600)
	aspect, proj := cam.Aspect(), cam.ProjectionMatrix()
	s.Resize(800, 600)

	assert.Equal(t, aspect, cam.Aspect())
	assert.Equal(t, proj, cam.ProjectionMatrix())
	assert.Equal(t, [][2]int{{800, 600}}, out.sizes)
	assert.Equal(t, 800, s.Width)
	assert.Equal(t, 600, s.Height)
}

func TestResizeIgnoresMinimizedWindow(t *testing.T) {
	cam := camera.NewCamera()
	out := &recordingOutput{}
	s := &State{Camera: cam, Output: out}

	s.Resize(1024, 768)
	aspect := cam.Aspect()
	s.Resize(0, 0)
	s.Resize(1024, 0)

	assert.Equal(t, aspect, cam.Aspect())
	assert.Len(t, out.sizes, 1)
	assert.Equal(t, 1024, s.Width)
}
