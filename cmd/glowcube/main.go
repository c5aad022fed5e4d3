package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/glowcube/glowcube"
	"github.com/spf13/cobra"
)

// version is overridden at link time with -ldflags "-X main.version=...".
var version = "dev"

// GLFW and the surface must stay on the main thread.
func init() {
	runtime.LockOSThread()
}

type flags struct {
	config  string
	seed    int64
	profile bool
	width   int
	height  int
	vsync   bool
	maxFPS  float64
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:           "glowcube",
		Short:         "Render a glowing, rotating cube lit by two orbiting lights",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, source, err := resolveConfig(cmd, f)
			if err != nil {
				log.Printf("[Glowcube] %v", err)
				return err
			}
			rng, seed := glowcube.NewRand(cfg.Scene.Seed)
			log.Printf("[Glowcube] config: %s, seed: %d", source, seed)
			if err := glowcube.Run(cfg, rng); err != nil {
				log.Printf("[Glowcube] %v", err)
				return err
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.config, "config", "c", "", "path to a TOML config file")
	pf.Int64Var(&f.seed, "seed", 0, "point cloud seed, 0 picks one from the clock")
	pf.BoolVar(&f.profile, "profile", false, "log frame statistics")
	pf.IntVar(&f.width, "width", 0, "initial window width")
	pf.IntVar(&f.height, "height", 0, "initial window height")
	pf.BoolVar(&f.vsync, "vsync", true, "synchronise presentation with the display")
	pf.Float64Var(&f.maxFPS, "max-fps", 0, "frame rate cap, 0 for none")

	root.AddCommand(newVersionCommand(), newConfigCommand(f))
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "glowcube %s\n", version)
		},
	}
}

func newConfigCommand(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			data, err := cfg.Encode()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// resolveConfig loads the config file, if any, and applies the flags the user set on top.
func resolveConfig(cmd *cobra.Command, f *flags) (glowcube.Config, string, error) {
	cfg := glowcube.DefaultConfig()
	source := "defaults"
	if f.config != "" {
		loaded, err := glowcube.LoadConfig(f.config)
		if err != nil {
			return cfg, "", err
		}
		cfg, source = loaded, f.config
	}

	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Scene.Seed = f.seed
	}
	if changed("profile") {
		cfg.Debug.Profile = f.profile
	}
	if changed("width") {
		cfg.Window.Width = f.width
	}
	if changed("height") {
		cfg.Window.Height = f.height
	}
	if changed("vsync") {
		cfg.Render.VSync = f.vsync
	}
	if changed("max-fps") {
		cfg.Render.MaxFPS = f.maxFPS
	}
	return cfg, source, cfg.Validate()
}
