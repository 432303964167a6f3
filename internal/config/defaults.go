package config

import (
	_ "embed"
)

//go:embed defaults/chroma.yaml
var defaultChromaYAML []byte

// DefaultChromaConfig returns the default color-merge puzzle configuration.
func DefaultChromaConfig() ChromaConfig {
	return ChromaConfig{
		Board: BoardConfig{
			Columns:  8,
			Rows:     8,
			CellSize: 1.0,
		},
		Pool: PoolConfig{
			MaxPerColor: 24,
		},
		Generator: GeneratorConfig{
			SpawnInterval:      90,
			ObstacleChance:     0.10,
			ObstacleDurability: 2,
			ColorWeights: map[string]int{
				"red":    3,
				"green":  3,
				"blue":   3,
				"yellow": 2,
				"purple": 1,
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 500,
			},
			Scaling: ScalingConfig{
				SpawnAcceleration: 0.5,
				ObstacleBoost:     0.15,
			},
		},
	}
}
