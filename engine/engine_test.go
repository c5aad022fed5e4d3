package engine

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/glowcube/engine/renderer"
	"github.com/Carmen-Shannon/glowcube/engine/scene"
	"github.com/Carmen-Shannon/glowcube/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// callLog is shared by the fakes so the order of calls across them can be asserted.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeRenderer struct {
	renderer.Renderer
	log      *callLog
	beginErr error
}

func (r *fakeRenderer) BeginFrame() error {
	r.log.add("begin")
	return r.beginErr
}
func (r *fakeRenderer) EndFrame() { r.log.add("end") }
func (r *fakeRenderer) Present()  { r.log.add("present") }

type fakeScene struct {
	scene.Scene
	log     *callLog
	r       *fakeRenderer
	drawErr error
	resized [][2]int
}

func (s *fakeScene) Renderer() renderer.Renderer { return s.r }
func (s *fakeScene) PrepareFrame()               { s.log.add("prepare") }
func (s *fakeScene) PrepareShadows()             { s.log.add("shadows") }
func (s *fakeScene) DrawCalls() error {
	s.log.add("draw")
	return s.drawErr
}
func (s *fakeScene) Resize(width, height int) { s.resized = append(s.resized, [2]int{width, height}) }

type fakeWindow struct {
	window.Window
	mu       sync.Mutex
	onUpdate func()
	onResize func(width, height int)
	onClose  func()
	closed   bool
}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.onUpdate = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.onResize = cb }
func (w *fakeWindow) SetCloseCallback(cb func())                   { w.onClose = cb }
func (w *fakeWindow) RequestClose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
}
func (w *fakeWindow) ProcessMessages() {
	for {
		w.mu.Lock()
		closed := w.closed
		w.mu.Unlock()
		if closed {
			return
		}
		w.onUpdate()
		time.Sleep(time.Millisecond)
	}
}

func newTestEngine(options ...EngineBuilderOption) (*engine, *fakeScene, *fakeWindow, *callLog) {
	log := &callLog{}
	s := &fakeScene{log: log, r: &fakeRenderer{log: log}}
	w := &fakeWindow{}
	e := NewEngine(append([]EngineBuilderOption{WithWindow(w), WithScene(s)}, options...)...).(*engine)
	return e, s, w, log
}

func TestNewEngineRequiresWindowAndScene(t *testing.T) {
	assert.Panics(t, func() { NewEngine(WithScene(&fakeScene{})) })
	assert.Panics(t, func() { NewEngine(WithWindow(&fakeWindow{})) })
}

func TestFrameOrder(t *testing.T) {
	e, _, _, log := newTestEngine()
	e.SetFrameCallback(func(float32) error {
		log.add("tick")
		return nil
	})

	require.NoError(t, e.frame(0.016))
	assert.Equal(t, []string{"tick", "prepare", "shadows", "begin", "draw", "end", "present"}, log.snapshot())
}

func TestFrameSkipsMainPassWhenSurfaceUnavailable(t *testing.T) {
	e, s, _, log := newTestEngine()
	s.r.beginErr = errors.New("surface outdated")

	require.NoError(t, e.frame(0.016))
	assert.Equal(t, []string{"prepare", "shadows", "begin"}, log.snapshot())
}

func TestFrameCallbackErrorStopsBeforeRendering(t *testing.T) {
	e, _, _, log := newTestEngine()
	boom := errors.New("boom")
	e.SetFrameCallback(func(float32) error { return boom })

	err := e.frame(0.016)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, log.snapshot())
}

func TestDrawErrorStillPresents(t *testing.T) {
	e, s, _, log := newTestEngine()
	s.drawErr = errors.New("draw failed")

	assert.Error(t, e.frame(0.016))
	assert.Equal(t, []string{"prepare", "shadows", "begin", "draw", "end", "present"}, log.snapshot())
}

func TestResizeForwardsToScene(t *testing.T) {
	_, s, w, _ := newTestEngine()
	w.onResize(800, 600)
	assert.Equal(t, [][2]int{{800, 600}}, s.resized)
}

func TestResizeCallbackReplacesDefault(t *testing.T) {
	var got [][2]int
	_, s, w, _ := newTestEngine(WithResizeCallback(func(width, height int) {
		got = append(got, [2]int{width, height})
	}))
	w.onResize(640, 480)
	assert.Equal(t, [][2]int{{640, 480}}, got)
	assert.Empty(t, s.resized)
}

func TestRunReturnsFrameError(t *testing.T) {
	boom := errors.New("boom")
	frames := 0
	e, _, w, _ := newTestEngine(WithFrameCallback(func(float32) error {
		frames++
		if frames == 3 {
			return boom
		}
		return nil
	}))

	err := e.Run()
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, frames)
	assert.True(t, w.closed)
}

func TestQuitIsIdempotent(t *testing.T) {
	e, _, w, _ := newTestEngine()
	e.Quit()
	e.Quit()
	w.onClose()
	assert.NoError(t, e.Run())
}

func TestFrameDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), frameDuration(0))
	assert.Equal(t, time.Duration(0), frameDuration(-5))
	assert.Equal(t, 16666666*time.Nanosecond, frameDuration(60))
}
