// Package chroma implements the color-merge puzzle game with campaign and endless modes.
package chroma

// Level defines a campaign level with a score target.
type Level struct {
	ID             int
	Name           string
	Target         int     // Score to reach to clear the level
	Columns        int     // Board width in cells
	Rows           int     // Board height in cells
	Colors         int     // Number of colors in rotation
	SpawnInterval  int     // Ticks between automatic spawns
	ObstacleChance float64 // Probability a spawn is an obstacle
	Durability     int     // Hits needed to destroy an obstacle
	WildcardChance float64 // Probability a spawn is a wildcard tile
}

// Levels defines the 10 campaign levels with increasing difficulty.
// Early levels use fewer colors and no obstacles so merges come easily.
// Later levels shrink the spawn interval, seed tougher obstacles, and
// let the occasional wildcard tile into the rotation.
var Levels = []Level{
	{ID: 1, Name: "First Blush", Target: 50, Columns: 6, Rows: 6, Colors: 3, SpawnInterval: 150, ObstacleChance: 0.00, Durability: 1},
	{ID: 2, Name: "Two Tone", Target: 100, Columns: 6, Rows: 6, Colors: 3, SpawnInterval: 130, ObstacleChance: 0.00, Durability: 1},
	{ID: 3, Name: "Palette Knife", Target: 150, Columns: 7, Rows: 7, Colors: 4, SpawnInterval: 120, ObstacleChance: 0.05, Durability: 1},
	{ID: 4, Name: "Wet Paint", Target: 220, Columns: 7, Rows: 7, Colors: 4, SpawnInterval: 110, ObstacleChance: 0.08, Durability: 1},
	{ID: 5, Name: "Color Wheel", Target: 300, Columns: 8, Rows: 8, Colors: 4, SpawnInterval: 100, ObstacleChance: 0.10, Durability: 2},
	{ID: 6, Name: "Saturation", Target: 400, Columns: 8, Rows: 8, Colors: 5, SpawnInterval: 90, ObstacleChance: 0.12, Durability: 2},
	{ID: 7, Name: "Heavy Pigment", Target: 520, Columns: 8, Rows: 8, Colors: 5, SpawnInterval: 80, ObstacleChance: 0.15, Durability: 2, WildcardChance: 0.02},
	{ID: 8, Name: "Chiaroscuro", Target: 650, Columns: 8, Rows: 8, Colors: 5, SpawnInterval: 70, ObstacleChance: 0.18, Durability: 3, WildcardChance: 0.03},
	{ID: 9, Name: "Full Spectrum", Target: 800, Columns: 8, Rows: 8, Colors: 5, SpawnInterval: 60, ObstacleChance: 0.20, Durability: 3, WildcardChance: 0.04},
	{ID: 10, Name: "Chromatic Storm", Target: 1000, Columns: 8, Rows: 8, Colors: 5, SpawnInterval: 50, ObstacleChance: 0.25, Durability: 3, WildcardChance: 0.05},
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(Levels)
}

// GetLevel returns the level at the given index (0-based).
// Returns nil if index is out of range.
func GetLevel(index int) *Level {
	if index < 0 || index >= len(Levels) {
		return nil
	}
	return &Levels[index]
}

// LevelNames returns the names of all levels.
func LevelNames() []string {
	names := make([]string, len(Levels))
	for i, lvl := range Levels {
		names[i] = lvl.Name
	}
	return names
}
