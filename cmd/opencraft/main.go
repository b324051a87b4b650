package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"

	"opencraft/internal/assets"
	"opencraft/internal/block"
	"opencraft/internal/config"
	"opencraft/internal/kinematics"
	"opencraft/internal/metrics"
	"opencraft/internal/physics"
	"opencraft/internal/render"
	"opencraft/internal/world"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to the YAML config (default $"+config.EnvPath+")")
	flag.Parse()

	logger := log.New(os.Stdout, "[opencraft] ", log.LstdFlags|log.Lmicroseconds)
	if err := run(*configPath, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(configPath string, logger *log.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	atlas, err := cfg.BuildAtlas()
	if err != nil {
		return err
	}
	table, err := cfg.BlockTable()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if addr := cfg.Metrics.Address(); addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg, logger); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	w := world.New(log.New(os.Stdout, "[world] ", log.LstdFlags|log.Lmicroseconds))
	gen, err := world.NewGenerator(cfg.World.Generator, cfg.World.Seed, cfg.World.FlatHeight)
	if err != nil {
		return err
	}
	w.Populate(gen, block.Grass, cfg.World.Radius, cfg.World.Depth)
	m.SetChunks(w.Len())

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	window, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	if cfg.Window.Vsync {
		glfw.SwapInterval(1)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	if err := render.Init(); err != nil {
		return err
	}
	blockProgram, err := render.LoadProgram(cfg.Window.Shaders, "block")
	if err != nil {
		return err
	}
	defer blockProgram.Delete()
	atlasWidth, atlasHeight := atlas.Size()
	atlasImage, err := assets.LoadAtlas(cfg.Atlas.Path, atlasWidth, atlasHeight)
	if err != nil {
		return err
	}
	atlasTexture := render.NewAtlasTexture(atlasImage)
	defer atlasTexture.Delete()

	scene := render.NewScene(blockProgram, atlasTexture)
	defer scene.Delete()
	start := time.Now()
	for b, err := range w.Meshes(table, atlas) {
		if err != nil {
			return fmt.Errorf("content error: %w", err)
		}
		m.ObserveMesh(scene.Add(b))
	}
	logger.Printf("meshed %d chunks in %s", scene.Len(), time.Since(start))

	debugText, err := newHUD(cfg.Window.FontPath, cfg.Window.Shaders, logger)
	if err != nil {
		return err
	}
	if debugText != nil {
		defer debugText.Delete()
	}

	resolver := physics.NewResolver(log.New(os.Stdout, "[physics] ", log.LstdFlags|log.Lmicroseconds))
	resolver.MaxPasses = cfg.Game.MaxPasses
	resolver.Observer = m
	pipeline := kinematics.NewPipeline(cfg.Settings(), w, resolver)
	pipeline.Observer = m

	spawn := world.SpawnAbove(gen, cfg.SpawnPoint(), cfg.ColliderHalfExtents())
	player := kinematics.NewEntity(spawn, cfg.ColliderHalfExtents(), kinematics.Gravity(cfg.Game.Gravity))
	player.Flying = cfg.Game.Flying
	player.EyeHeight = cfg.Game.EyeHeight
	logger.Printf("spawned %s", player)

	c := newControls(window)
	window.SetKeyCallback(c.onKey(player))
	width, height := window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		width, height = w, h
		render.Viewport(w, h)
	})

	stepper := kinematics.Stepper{Step: cfg.TickStep()}
	fps := newFPSCounter()
	previous := time.Now()
	for !window.ShouldClose() {
		now := time.Now()
		frame := float32(now.Sub(previous).Seconds())
		previous = now
		glfw.PollEvents()

		ticks, alpha := stepper.Advance(frame)
		in := c.snapshot()
		for i := 0; i < ticks; i++ {
			pipeline.Tick(player, stepper.Step, in)
			// the mouse delta belongs to the first tick only
			in.MouseDelta = mgl32.Vec2{}
		}
		if ticks > 0 {
			c.consumeMouse()
		}

		eye := player.Eye(alpha)
		render.Clear(0.53, 0.81, 0.92)
		scene.Draw(kinematics.ViewMatrix(eye, player.Angle), render.Projection(width, height))

		fps.frame(now)
		if debugText != nil && c.showDebug {
			if err := debugText.Draw(width, height, []string{
				fmt.Sprintf("FPS: %.1f", fps.value),
				fmt.Sprintf("Position: %.2f, %.2f, %.2f", eye.X(), eye.Y(), eye.Z()),
				fmt.Sprintf("Velocity: %.2f, %.2f, %.2f", player.Velocity.X(), player.Velocity.Y(), player.Velocity.Z()),
				fmt.Sprintf("Grounded: %t", player.OnGround),
				fmt.Sprintf("Flying: %t", player.Flying),
			}); err != nil {
				return err
			}
		}
		window.SwapBuffers()
	}
	return nil
}

type fpsCounter struct {
	start  time.Time
	frames int
	value  float64
}

func newFPSCounter() *fpsCounter {
	return &fpsCounter{start: time.Now()}
}

func (f *fpsCounter) frame(now time.Time) {
	f.frames++
	if elapsed := now.Sub(f.start); elapsed >= 250*time.Millisecond {
		f.value = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.start = now
	}
}
