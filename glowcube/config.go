package glowcube

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the application configuration, read from TOML.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Scene  SceneConfig  `toml:"scene"`
	Debug  DebugConfig  `toml:"debug"`
}

// WindowConfig sizes the window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RenderConfig selects renderer options.
type RenderConfig struct {
	VSync         bool `toml:"vsync"`
	MSAA          int  `toml:"msaa"`
	ShadowMapSize int     `toml:"shadow_map_size"`
	Software      bool    `toml:"software"`
	MaxFPS        float64 `toml:"max_fps"`
}

// SceneConfig sizes the point clouds. A zero Seed means seed from the clock.
type SceneConfig struct {
	StarCount    int   `toml:"star_count"`
	GalaxyPoints int   `toml:"galaxy_points"`
	Seed         int64 `toml:"seed"`
}

// DebugConfig toggles diagnostics.
type DebugConfig struct {
	Profile         bool    `toml:"profile"`
	ProfileInterval float64 `toml:"profile_interval"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "glowcube", Width: 1280, Height: 720},
		Render: RenderConfig{VSync: true, MSAA: 4, ShadowMapSize: 512},
		Scene:  SceneConfig{StarCount: 2000, GalaxyPoints: 500},
		Debug:  DebugConfig{ProfileInterval: 1},
	}
}

// LoadConfig reads path on top of DefaultConfig. Unknown keys are an error. The result is not
// validated so that overrides can be applied first.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := decodeConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown config keys:\n%s", strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("invalid config at line %d column %d: %w", row, col, err)
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	case c.Render.MSAA != 1 && c.Render.MSAA != 4 && c.Render.MSAA != 8 && c.Render.MSAA != 16:
		return fmt.Errorf("render.msaa must be 1, 4, 8 or 16, got %d", c.Render.MSAA)
	case c.Render.ShadowMapSize < 64 || c.Render.ShadowMapSize > 4096:
		return fmt.Errorf("render.shadow_map_size must be within [64, 4096], got %d", c.Render.ShadowMapSize)
	case c.Scene.StarCount <= 0 || c.Scene.GalaxyPoints <= 0:
		return fmt.Errorf("scene point counts must be positive, got %d stars and %d galaxy points", c.Scene.StarCount, c.Scene.GalaxyPoints)
	case c.Render.MaxFPS < 0:
		return fmt.Errorf("render.max_fps must not be negative, got %g", c.Render.MaxFPS)
	case c.Debug.ProfileInterval < 0:
		return fmt.Errorf("debug.profile_interval must not be negative, got %g", c.Debug.ProfileInterval)
	}
	return nil
}

// ProfileEvery converts the profile interval to a duration.
func (c Config) ProfileEvery() time.Duration {
	return time.Duration(c.Debug.ProfileInterval * float64(time.Second))
}

// Encode renders the configuration as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}
