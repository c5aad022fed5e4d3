package renderer

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/glowcube/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingBackend embeds the backend interface so only the methods under test need bodies.
type recordingBackend struct {
	RendererBackend
	configured [][2]int
}

func (b *recordingBackend) ConfigureSurface(width, height int) {
	b.configured = append(b.configured, [2]int{width, height})
}

func newTestRenderer(width, height int) (*renderer, *recordingBackend) {
	backend := &recordingBackend{}
	return &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backend:       backend,
		width:         width,
		height:        height,
	}, backend
}

func TestResizeReconfiguresOnChange(t *testing.T) {
	r, backend := newTestRenderer(800, 600)

	r.Resize(1024, 768)

	w, h := r.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, [][2]int{{1024, 768}}, backend.configured)
}

func TestResizeIgnoresZeroAndRepeats(t *testing.T) {
	r, backend := newTestRenderer(800, 600)

	r.Resize(0, 600)
	r.Resize(800, 0)
	r.Resize(800, 600)
	r.Resize(640, 480)
	r.Resize(640, 480)

	assert.Equal(t, [][2]int{{640, 480}}, backend.configured)
}

func TestDrawCallUnknownPipeline(t *testing.T) {
	r, _ := newTestRenderer(1, 1)

	assert.Error(t, r.DrawCall("missing", nil, 1, nil))
	assert.Error(t, r.ShadowDrawCall("missing", nil, 1, nil))
	assert.Error(t, r.InitBindGroup(nil, "missing", 0))
}

func TestMSAASampleCountValid(t *testing.T) {
	for _, c := range []MSAASampleCount{MSAAOff, MSAA4x, MSAA8x, MSAA16x} {
		assert.True(t, c.Valid(), "%d", c)
	}
	assert.False(t, MSAASampleCount(0).Valid())
	assert.False(t, MSAASampleCount(2).Valid())
}

func TestWithMSAAIgnoresInvalid(t *testing.T) {
	r := &renderer{}
	WithMSAA(3)(r)
	assert.Nil(t, r.pendingMSAA)

	WithMSAA(MSAA8x)(r)
	require.NotNil(t, r.pendingMSAA)
	assert.Equal(t, MSAA8x, *r.pendingMSAA)
}

func TestPresentModeString(t *testing.T) {
	assert.Equal(t, "vsync", PresentModeVSync.String())
	assert.Equal(t, "uncapped", PresentModeUncapped.String())
}

func TestPickSurfaceFormatPrefersSrgb(t *testing.T) {
	got := pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatBGRA8Unorm, wgpu.TextureFormatBGRA8UnormSrgb})
	assert.Equal(t, wgpu.TextureFormatBGRA8UnormSrgb, got)

	got = pickSurfaceFormat([]wgpu.TextureFormat{wgpu.TextureFormatRGBA8Unorm})
	assert.Equal(t, wgpu.TextureFormatRGBA8Unorm, got)
}
