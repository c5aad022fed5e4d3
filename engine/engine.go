package engine

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/glowcube/engine/profiler"
	"github.com/Carmen-Shannon/glowcube/engine/scene"
	"github.com/Carmen-Shannon/glowcube/engine/window"
)

// engine implements the Engine interface.
// The window message loop runs on the caller's goroutine and frames run on their own.
type engine struct {
	// frameMu serializes a whole frame against resize handling.
	frameMu sync.Mutex

	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once

	errMu sync.Mutex
	err   error

	window window.Window
	scene  scene.Scene

	profiler         *profiler.Profiler
	profileInterval  time.Duration
	profilingEnabled bool

	frameCallback  func(deltaTime float32) error
	resizeCallback func(width, height int)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine drives a single scene: it runs the frame loop, forwards window resizes and shuts
// everything down when the window closes.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Scene returns the scene being rendered.
	//
	// Returns:
	//   - scene.Scene: the scene
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function run at the start of every frame, before the
	// scene is prepared. Returning an error stops the engine and Run reports it.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32) error)

	// SetResizeCallback replaces the default resize handling, which forwards the size to the
	// scene. The callback runs under the frame lock and never interleaves with a frame.
	//
	// Parameters:
	//   - callback: function receiving the framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the frame goroutine and pumps window messages on the calling goroutine until
	// the window closes or the engine quits. The window is left open so the caller can release
	// GPU resources before closing it.
	//
	// Returns:
	//   - error: the error that stopped the engine, nil on a normal close
	Run() error

	// Quit signals the frame goroutine to stop and closes the window.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine. A window and a scene are required; NewEngine panics
// without them.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel:     make(chan struct{}),
		profileInterval: profiler.DefaultInterval,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine: NewEngine requires a window")
	}
	if e.scene == nil {
		panic("engine: NewEngine requires a scene")
	}
	e.profiler = profiler.NewProfiler(e.profileInterval)

	e.window.SetResizeCallback(e.handleResize)
	e.window.SetCloseCallback(e.signalQuit)

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Run() error {
	e.wg.Add(1)
	go e.handleRender()

	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.window.RequestClose()
		default:
		}
	})
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()

	e.errMu.Lock()
	defer e.errMu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the frame goroutine to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// fail records the first error and quits.
func (e *engine) fail(err error) {
	e.errMu.Lock()
	if e.err == nil {
		e.err = err
	}
	e.errMu.Unlock()
	e.signalQuit()
}

func (e *engine) handleResize(width, height int) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()

	if e.resizeCallback != nil {
		e.resizeCallback(width, height)
		return
	}
	e.scene.Resize(width, height)
}

// handleRender runs the frame loop until quit. Recovers from panics, logs them and quits.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.fail(fmt.Errorf("render goroutine panic: %v", r))
		}
	}()

	lastFrame := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastFrame).Seconds())
		lastFrame = now

		if err := e.frame(dt); err != nil {
			log.Printf("[Engine] stopping: %v", err)
			e.fail(err)
			return
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// frame runs one complete frame under the frame lock.
func (e *engine) frame(dt float32) error {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()

	if e.frameCallback != nil {
		if err := e.frameCallback(dt); err != nil {
			return fmt.Errorf("frame callback failed: %w", err)
		}
	}

	e.scene.PrepareFrame()
	e.scene.PrepareShadows()

	r := e.scene.Renderer()
	// The surface can be briefly unavailable while the window is minimized or being resized.
	if err := r.BeginFrame(); err == nil {
		drawErr := e.scene.DrawCalls()
		r.EndFrame()
		r.Present()
		if drawErr != nil {
			return drawErr
		}
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return nil
}

func (e *engine) EnableProfiler() {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32) error) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.resizeCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.frameMu.Lock()
	defer e.frameMu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap into a minimum frame time; 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
