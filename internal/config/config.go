package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"opencraft/internal/block"
	"opencraft/internal/kinematics"
	"opencraft/internal/texture"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "OPENCRAFT_CONFIG"

// Config is the root of the YAML configuration.
type Config struct {
	Window  WindowConfig           `yaml:"window"`
	Game    GameConfig             `yaml:"game"`
	World   WorldConfig            `yaml:"world"`
	Atlas   AtlasConfig            `yaml:"atlas"`
	Blocks  map[string]block.Faces `yaml:"blocks"`
	Metrics MetricsConfig          `yaml:"metrics"`
}

type WindowConfig struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Title    string `yaml:"title"`
	Vsync    bool   `yaml:"vsync"`
	FontPath string `yaml:"font_path"`
	Shaders  string `yaml:"shaders"`
}

type GameConfig struct {
	MoveSpeed   float32    `yaml:"move_speed"`
	RotateSpeed float32    `yaml:"rotate_speed"`
	JumpSpeed   float32    `yaml:"jump_speed"`
	Gravity     float32    `yaml:"gravity"`
	TickRate    int        `yaml:"tick_rate"`
	Spawn       [3]float32 `yaml:"spawn"`
	Collider    [3]float32 `yaml:"collider"`
	EyeHeight   float32    `yaml:"eye_height"`
	Flying      bool       `yaml:"flying"`
	MaxPasses   int        `yaml:"max_passes"`
}

type WorldConfig struct {
	Seed       int64  `yaml:"seed"`
	Radius     int32  `yaml:"radius"`
	Depth      int32  `yaml:"depth"`
	Generator  string `yaml:"generator"`
	FlatHeight int32  `yaml:"flat_height"`
}

type Cell struct {
	Col uint32 `yaml:"col"`
	Row uint32 `yaml:"row"`
}

type AtlasConfig struct {
	Path       string          `yaml:"path"`
	Width      uint32          `yaml:"width"`
	Height     uint32          `yaml:"height"`
	CellWidth  uint32          `yaml:"cell_width"`
	CellHeight uint32          `yaml:"cell_height"`
	Entries    map[string]Cell `yaml:"entries"`
}

type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// Address returns the metrics listen address, falling back to
// OPENCRAFT_METRICS_ADDR. Empty disables the endpoint.
func (m MetricsConfig) Address() string {
	if m.Listen != "" {
		return m.Listen
	}
	return os.Getenv("OPENCRAFT_METRICS_ADDR")
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:    1600,
			Height:   900,
			Title:    "OpenCraft",
			Vsync:    true,
			FontPath: "assets/fonts/Mojang-Regular.ttf",
			Shaders:  "shaders",
		},
		Game: GameConfig{
			MoveSpeed:   4.3,
			RotateSpeed: 10,
			JumpSpeed:   8,
			Gravity:     9.8,
			TickRate:    60,
			Spawn:       [3]float32{0.5, 40, 0.5},
			Collider:    [3]float32{0.3, 0.9, 0.3},
			EyeHeight:   0.65,
			MaxPasses:   16,
		},
		World: WorldConfig{
			Seed:       12,
			Radius:     2,
			Depth:      4,
			Generator:  "simplex",
			FlatHeight: 8,
		},
		Atlas: AtlasConfig{
			Path:       "assets/textures/atlas.png",
			Width:      64,
			Height:     192,
			CellWidth:  64,
			CellHeight: 64,
			Entries: map[string]Cell{
				"grass_side":   {Col: 0, Row: 0},
				"grass_top":    {Col: 0, Row: 1},
				"grass_bottom": {Col: 0, Row: 2},
			},
		},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// OPENCRAFT_CONFIG; with neither set the defaults are returned as is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Game.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate %d must be positive", c.Game.TickRate))
	}
	if c.Game.MaxPasses <= 0 {
		errs = append(errs, fmt.Errorf("max_passes %d must be positive", c.Game.MaxPasses))
	}
	for i, h := range c.Game.Collider {
		if h <= 0 {
			errs = append(errs, fmt.Errorf("collider half extent %d is %v, must be positive", i, h))
		}
	}
	if c.Game.EyeHeight < -c.Game.Collider[1] || c.Game.EyeHeight > c.Game.Collider[1] {
		errs = append(errs, fmt.Errorf("eye_height %v must stay inside the collider (half height %v)", c.Game.EyeHeight, c.Game.Collider[1]))
	}
	if c.World.Radius < 0 || c.World.Depth <= 0 {
		errs = append(errs, fmt.Errorf("world radius %d and depth %d: radius must not be negative, depth must be positive", c.World.Radius, c.World.Depth))
	}
	switch c.World.Generator {
	case "simplex", "perlin", "flat":
	default:
		errs = append(errs, fmt.Errorf("unknown generator %q", c.World.Generator))
	}
	if c.Atlas.Width == 0 || c.Atlas.Height == 0 || c.Atlas.CellWidth == 0 || c.Atlas.CellHeight == 0 {
		errs = append(errs, errors.New("atlas sizes must be positive"))
	}
	return errors.Join(errs...)
}

// TickStep is the fixed tick length in seconds.
func (c *Config) TickStep() float32 {
	return 1 / float32(c.Game.TickRate)
}

func (c *Config) SpawnPoint() mgl32.Vec3 { return mgl32.Vec3(c.Game.Spawn) }

func (c *Config) ColliderHalfExtents() mgl32.Vec3 { return mgl32.Vec3(c.Game.Collider) }

func (c *Config) Settings() kinematics.Settings {
	s := kinematics.DefaultSettings()
	s.MoveSpeed = c.Game.MoveSpeed
	s.RotateSpeed = c.Game.RotateSpeed
	s.JumpSpeed = c.Game.JumpSpeed
	return s
}

// BuildAtlas registers every configured atlas entry.
func (c *Config) BuildAtlas() (*texture.Atlas, error) {
	a, err := texture.NewAtlas(c.Atlas.Width, c.Atlas.Height, c.Atlas.CellWidth, c.Atlas.CellHeight)
	if err != nil {
		return nil, err
	}
	for name, cell := range c.Atlas.Entries {
		if err := a.Add(name, cell.Col, cell.Row); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// BlockTable builds the face texture table; without a blocks section the
// built-in table is used.
func (c *Config) BlockTable() (block.Table, error) {
	if len(c.Blocks) == 0 {
		return block.DefaultTable(), nil
	}
	return block.NewTable(c.Blocks)
}
