// Package config provides YAML-based game configuration loading and
// difficulty management for the chromamerge platform.
package config

// ChromaConfig contains all configuration for the color-merge puzzle.
type ChromaConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Pool       PoolConfig       `yaml:"pool"`
	Generator  GeneratorConfig  `yaml:"generator"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playing field dimensions.
type BoardConfig struct {
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	CellSize float64 `yaml:"cell_size"` // World units per grid cell, used for position reconciliation
}

// PoolConfig bounds tile allocation.
type PoolConfig struct {
	MaxPerColor int `yaml:"max_per_color"`
}

// GeneratorConfig controls random tile and obstacle spawning.
type GeneratorConfig struct {
	SpawnInterval      int            `yaml:"spawn_interval"`      // Ticks between automatic spawns
	ObstacleChance     float64        `yaml:"obstacle_chance"`     // Probability a spawn is an obstacle
	ObstacleDurability int            `yaml:"obstacle_durability"` // Hits needed to destroy an obstacle
	ColorWeights       map[string]int `yaml:"color_weights"`       // Relative spawn weight per color name
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpawnAcceleration float64 `yaml:"spawn_acceleration"` // Fraction shaved off spawn interval at max difficulty
	ObstacleBoost     float64 `yaml:"obstacle_boost"`     // Added obstacle probability at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
