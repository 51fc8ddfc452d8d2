package dungeonstate

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/seed"
)

// RoomSizeRange bounds room width/height.
type RoomSizeRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// BSPConfig parameterizes the BSP generator.
type BSPConfig struct {
	MaxDepth      int     `yaml:"maxDepth" json:"maxDepth"`
	MinRoomSize   int     `yaml:"minRoomSize" json:"minRoomSize"`
	MaxRoomSize   int     `yaml:"maxRoomSize" json:"maxRoomSize"`
	Padding       int     `yaml:"padding" json:"padding"`
	SplitRatioMin float64 `yaml:"splitRatioMin" json:"splitRatioMin"`
	SplitRatioMax float64 `yaml:"splitRatioMax" json:"splitRatioMax"`
	CorridorWidth int     `yaml:"corridorWidth" json:"corridorWidth"`
}

// DefaultBSPConfig returns the defaults used when a caller constructs a
// Config programmatically without specifying BSP.
func DefaultBSPConfig() BSPConfig {
	return BSPConfig{
		MaxDepth:      6,
		MinRoomSize:   4,
		MaxRoomSize:   12,
		Padding:       1,
		SplitRatioMin: 0.35,
		SplitRatioMax: 0.65,
		CorridorWidth: 1,
	}
}

// CellularConfig parameterizes the Cellular generator.
type CellularConfig struct {
	InitialFillRatio float64 `yaml:"initialFillRatio" json:"initialFillRatio"`
	Iterations       int     `yaml:"iterations" json:"iterations"`
	BirthLimit       int     `yaml:"birthLimit" json:"birthLimit"`
	DeathLimit       int     `yaml:"deathLimit" json:"deathLimit"`
	MinRegionSize    int     `yaml:"minRegionSize" json:"minRegionSize"`
	KeepLargestOnly  bool    `yaml:"keepLargestOnly" json:"keepLargestOnly"`
}

// DefaultCellularConfig returns automaton parameters tuned to produce
// one large connected cavern on mid-sized grids.
func DefaultCellularConfig() CellularConfig {
	return CellularConfig{
		InitialFillRatio: 0.45,
		Iterations:       4,
		BirthLimit:       5,
		DeathLimit:       4,
		MinRegionSize:    50,
		KeepLargestOnly:  true,
	}
}

// ZoneSplitConfig parameterizes Hybrid's zone partitioning.
type ZoneSplitConfig struct {
	MinZones     int     `yaml:"minZones" json:"minZones"`
	MaxZones     int     `yaml:"maxZones" json:"maxZones"`
	NaturalRatio float64 `yaml:"naturalRatio" json:"naturalRatio"`
}

// HybridConfig parameterizes the Hybrid generator.
type HybridConfig struct {
	ZoneSplit       ZoneSplitConfig `yaml:"zoneSplit" json:"zoneSplit"`
	TransitionWidth int             `yaml:"transitionWidth" json:"transitionWidth"`
	MinZoneSize     int             `yaml:"minZoneSize" json:"minZoneSize"`
	BSP             BSPConfig       `yaml:"bsp" json:"bsp"`
	Cellular        CellularConfig  `yaml:"cellular" json:"cellular"`
}

// DefaultHybridConfig returns a 2-4 zone split with a 30% natural-zone
// ratio.
func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		ZoneSplit:       ZoneSplitConfig{MinZones: 2, MaxZones: 4, NaturalRatio: 0.3},
		TransitionWidth: 2,
		MinZoneSize:     12,
		BSP:             DefaultBSPConfig(),
		Cellular:        DefaultCellularConfig(),
	}
}

// ContentConfig parameterizes pkg/content.
type ContentConfig struct {
	Difficulty          int     `yaml:"difficulty" json:"difficulty"`
	EnemyDensity        float64 `yaml:"enemyDensity" json:"enemyDensity"`
	ItemDensity         float64 `yaml:"itemDensity" json:"itemDensity"`
	TrapChance          float64 `yaml:"trapChance" json:"trapChance"`
	DecorationChance    float64 `yaml:"decorationChance" json:"decorationChance"`
	EnableTreasureRooms bool    `yaml:"enableTreasureRooms" json:"enableTreasureRooms"`
	EnableTraps         bool    `yaml:"enableTraps" json:"enableTraps"`
}

// DefaultContentConfig is a moderate, always-on content profile.
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		Difficulty:          5,
		EnemyDensity:        0.6,
		ItemDensity:         0.4,
		TrapChance:          0.15,
		DecorationChance:    0.3,
		EnableTreasureRooms: true,
		EnableTraps:         true,
	}
}

// ValidationProfile selects which validator checks run. The production
// profile skips the grid and reachability categories for throughput.
type ValidationProfile string

const (
	ProfileFull       ValidationProfile = "full"
	ProfileProduction ValidationProfile = "production"
)

// Config is the full generation input.
type Config struct {
	Width         int               `yaml:"width" json:"width"`
	Height        int               `yaml:"height" json:"height"`
	Seed          seed.DungeonSeed  `yaml:"-" json:"-"`
	Algorithm     Algorithm         `yaml:"algorithm" json:"algorithm"`
	RoomSizeRange RoomSizeRange     `yaml:"roomSizeRange" json:"roomSizeRange"`
	RoomCount     int               `yaml:"roomCount" json:"roomCount"`
	BSP           BSPConfig         `yaml:"bsp" json:"bsp"`
	Cellular      CellularConfig    `yaml:"cellular" json:"cellular"`
	Hybrid        HybridConfig      `yaml:"hybrid" json:"hybrid"`
	Content       ContentConfig     `yaml:"content" json:"content"`
	Trace         bool              `yaml:"trace" json:"trace"`
	Snapshots     bool              `yaml:"snapshots" json:"snapshots"`
	Profile       ValidationProfile `yaml:"profile" json:"profile"`
}

// Validate checks Config's rejection rules, returning a *rerr.Error
// tagged with the matching code on the first violation found. Dimension
// checks run before room-size checks: fail on the coarsest problem first.
func (c Config) Validate() error {
	if c.Width < 10 || c.Height < 10 {
		return rerr.Newf(rerr.CodeConfigDimensionTooSmall, "width/height must be >= 10, got %dx%d", c.Width, c.Height)
	}
	if c.Width > 10000 || c.Height > 10000 {
		return rerr.Newf(rerr.CodeConfigDimensionTooLarge, "width/height must be <= 10000, got %dx%d", c.Width, c.Height)
	}
	switch c.Algorithm {
	case AlgorithmBSP, AlgorithmCellular, AlgorithmHybrid:
	default:
		return rerr.Newf(rerr.CodeConfigInvalid, "unknown algorithm %q", c.Algorithm)
	}
	if c.RoomSizeRange.Min < 3 {
		return rerr.Newf(rerr.CodeConfigRoomSizeInvalid, "roomSizeRange.min must be >= 3, got %d", c.RoomSizeRange.Min)
	}
	if c.RoomSizeRange.Max >= c.Width || c.RoomSizeRange.Max >= c.Height {
		return rerr.Newf(rerr.CodeConfigRoomSizeInvalid, "roomSizeRange.max (%d) must be < width and height (%dx%d)", c.RoomSizeRange.Max, c.Width, c.Height)
	}
	if c.RoomSizeRange.Min > c.RoomSizeRange.Max {
		return rerr.Newf(rerr.CodeConfigRoomSizeInvalid, "roomSizeRange.min (%d) must be <= max (%d)", c.RoomSizeRange.Min, c.RoomSizeRange.Max)
	}
	maxRooms := (c.Width * c.Height) / 25
	if c.RoomCount > maxRooms {
		return rerr.Newf(rerr.CodeConfigRoomSizeInvalid, "roomCount %d exceeds floor(w*h/25) = %d", c.RoomCount, maxRooms)
	}
	return nil
}

// LoadConfig reads and validates a Config from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, rerr.Wrap(err, rerr.CodeConfigInvalid, "reading config file "+path)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses and validates a Config from YAML bytes.
func LoadConfigFromBytes(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, rerr.Wrap(err, rerr.CodeConfigInvalid, "parsing config YAML")
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfileFull
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ToYAML serializes the config back to YAML.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
