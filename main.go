package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"

	sim "flight-simulator/internal/sim"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := sim.DefaultConfig()
	var logLevel string

	cmd := &cobra.Command{
		Use:          "flightsim",
		Short:        "Fly a plane around a small airfield",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := sim.NewLogger(os.Stderr, logLevel)
			if err != nil {
				return err
			}
			simulator, err := sim.NewSimulator(cfg, logger)
			if err != nil {
				return err
			}
			// cobra prints the returned error once.
			return run(simulator, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene layout ("+strings.Join(sim.SceneNames(), ", ")+")")
	f.IntVar(&cfg.UPS, "ups", cfg.UPS, "fixed simulation updates per second")
	f.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play the engine hum")
	f.StringVar(&cfg.Camera, "camera", "", "follow or free; defaults to the scene's camera")
	f.BoolVar(&cfg.PostProcess, "postprocess", cfg.PostProcess, "render through the offscreen framebuffer pass")
	f.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	f.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	f.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	return cmd
}

func run(simulator *sim.Simulator, cfg sim.Config) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, "Flight Simulator", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize opengl: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.BLEND)

	fmt.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	fmt.Printf("GLSL version: %s\n", gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	return simulator.Run(window)
}
