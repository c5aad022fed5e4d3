package glowcube

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Carmen-Shannon/glowcube/common"
	"github.com/Carmen-Shannon/glowcube/engine"
	"github.com/Carmen-Shannon/glowcube/engine/camera"
	"github.com/Carmen-Shannon/glowcube/engine/renderer"
	"github.com/Carmen-Shannon/glowcube/engine/scene"
	"github.com/Carmen-Shannon/glowcube/engine/window"
	"github.com/chewxy/math32"
)

// Camera constants.
const (
	CameraFovDegrees = 75
	CameraNear       = 0.1
	CameraFar        = 1000
	CameraZ          = 5
)

// NewRand returns the point cloud random source: seeded from seed, or from the clock when
// seed is 0. The seed actually used is returned for logging.
func NewRand(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// Run opens the window, builds the scene and animates it until the window closes. Must be
// called from the main goroutine with the OS thread locked. Setup panics from the engine are
// returned as errors.
func Run(cfg Config, rng *rand.Rand) (err error) {
	if err := cfg.Validate(); err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("glowcube: setup failed: %v", r)
		}
	}()

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
	)
	defer func() { _ = win.Close() }()

	present := renderer.PresentModeUncapped
	if cfg.Render.VSync {
		present = renderer.PresentModeVSync
	}
	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(present),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.Render.MSAA)),
		renderer.WithClearColor(common.HexColor(0x000000)),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)
	defer r.Release()

	width, height := win.Width(), win.Height()
	cam := camera.NewCamera(
		camera.WithPosition(0, 0, CameraZ),
		camera.WithTarget(0, 0, 0),
		camera.WithFov(CameraFovDegrees*math32.Pi/180),
		camera.WithNear(CameraNear),
		camera.WithFar(CameraFar),
		camera.WithViewport(width, height),
	)

	sc := scene.NewScene("glowcube", cam, r, scene.WithShadowMapSize(cfg.Render.ShadowMapSize))
	defer sc.Release()

	entities, err := Build(sc, rng, cfg.Scene.StarCount, cfg.Scene.GalaxyPoints)
	if err != nil {
		return fmt.Errorf("glowcube: failed to build scene: %w", err)
	}

	state := NewState(entities, cam, r)
	state.Resize(width, height)

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithScene(sc),
		engine.WithFrameCallback(state.Frame),
		engine.WithResizeCallback(state.Resize),
		engine.WithProfiling(cfg.Debug.Profile),
		engine.WithProfileInterval(cfg.ProfileEvery()),
		engine.WithRenderFrameLimit(cfg.Render.MaxFPS),
	)

	log.Printf("[Glowcube] %dx%d, present %s, msaa %dx, shadow map %d, %d objects",
		width, height, present, cfg.Render.MSAA, cfg.Render.ShadowMapSize, sc.Count())

	if err := eng.Run(); err != nil {
		return fmt.Errorf("glowcube: %w", err)
	}
	log.Printf("[Glowcube] window closed after %d ticks", state.Ticks)
	return nil
}
