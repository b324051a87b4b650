package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"opencraft/internal/block"
	"opencraft/internal/config"
	"opencraft/internal/kinematics"
	"opencraft/internal/metrics"
	"opencraft/internal/physics"
	"opencraft/internal/world"
)

type options struct {
	configPath string
	ticks      int
	every      int
	keys       string
	turn       float64
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "path to the YAML config (default $"+config.EnvPath+")")
	flag.IntVar(&opts.ticks, "ticks", 300, "number of ticks to simulate")
	flag.IntVar(&opts.every, "every", 10, "print the entity every n ticks")
	flag.StringVar(&opts.keys, "keys", "", "comma separated held keys: forward,back,left,right,up,down")
	flag.Float64Var(&opts.turn, "turn", 0, "horizontal mouse travel per tick")
	flag.Parse()

	logger := log.New(os.Stdout, "[voxelsim] ", log.LstdFlags|log.Lmicroseconds)
	if err := run(opts, os.Stdout, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}

func run(opts options, out io.Writer, logger *log.Logger) error {
	keys, err := parseKeys(opts.keys)
	if err != nil {
		return err
	}
	cfg, err := config.Load(opts.configPath)
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

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if addr := cfg.Metrics.Address(); addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg, logger); err != nil {
				logger.Printf("metrics server: %v", err)
			}
		}()
	}

	w := world.New(logger)
	gen, err := world.NewGenerator(cfg.World.Generator, cfg.World.Seed, cfg.World.FlatHeight)
	if err != nil {
		return err
	}
	w.Populate(gen, block.Grass, cfg.World.Radius, cfg.World.Depth)
	m.SetChunks(w.Len())

	vertices := 0
	for b, err := range w.Meshes(table, atlas) {
		if err != nil {
			return fmt.Errorf("content error: %w", err)
		}
		vertices += b.VertexCount()
		m.ObserveMesh(b.VertexCount())
	}
	logger.Printf("meshed %d chunks, %d vertices", w.Len(), vertices)

	resolver := physics.NewResolver(logger)
	resolver.MaxPasses = cfg.Game.MaxPasses
	resolver.Observer = m
	pipeline := kinematics.NewPipeline(cfg.Settings(), w, resolver)
	pipeline.Observer = m

	spawn := world.SpawnAbove(gen, cfg.SpawnPoint(), cfg.ColliderHalfExtents())
	e := kinematics.NewEntity(spawn, cfg.ColliderHalfExtents(), kinematics.Gravity(cfg.Game.Gravity))
	e.Flying = cfg.Game.Flying
	logger.Printf("spawned %s", e)

	in := kinematics.Input{Keys: keys}
	in.MouseDelta[0] = float32(opts.turn)
	dt := cfg.TickStep()
	for tick := 1; tick <= opts.ticks; tick++ {
		pipeline.Tick(e, dt, in)
		if opts.every > 0 && tick%opts.every == 0 {
			fmt.Fprintf(out, "tick %4d pos=(%.3f, %.3f, %.3f) vel=(%.3f, %.3f, %.3f) ground=%t pitch=%.1f\n",
				tick, e.Position.X(), e.Position.Y(), e.Position.Z(),
				e.Velocity.X(), e.Velocity.Y(), e.Velocity.Z(), e.OnGround, e.Angle.Pitch())
		}
	}
	return nil
}

var keyNames = map[string]kinematics.Key{
	"forward": kinematics.KeyForward,
	"back":    kinematics.KeyBack,
	"left":    kinematics.KeyLeft,
	"right":   kinematics.KeyRight,
	"up":      kinematics.KeyUp,
	"down":    kinematics.KeyDown,
}

func parseKeys(s string) (kinematics.KeySet, error) {
	var keys kinematics.KeySet
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, ok := keyNames[name]
		if !ok {
			return 0, fmt.Errorf("unknown key %q", name)
		}
		keys = keys.With(k)
	}
	return keys, nil
}
