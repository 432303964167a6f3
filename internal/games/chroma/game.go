package chroma

import (
	"errors"
	"math/rand"

	"github.com/dmelnik/chromamerge/internal/config"
	"github.com/dmelnik/chromamerge/internal/core"
	"github.com/dmelnik/chromamerge/internal/games/chroma/board"
	"github.com/dmelnik/chromamerge/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeCampaign Mode = "campaign"
	ModeEndless  Mode = "endless"
)

// Score bonuses awarded on top of merged tile values.
const (
	obstacleBonus  = 15
	promotionBonus = 25
)

// reconcileInterval is how often (in ticks) the grid is checked against
// the animator's committed positions outside of spawn points.
const reconcileInterval = 60

// endlessWildcardChance is the wildcard spawn probability in endless mode.
const endlessWildcardChance = 0.02

// Game implements the color-merge puzzle.
type Game struct {
	mode Mode
	tick uint64
	seed int64
	rng  *rand.Rand // spawn-kind rolls; the board keeps its own RNG

	cfg  config.ChromaConfig
	diff *config.DifficultyManager

	session  *board.Session
	animator *Animator

	score      int
	levelIndex int
	target     int // Campaign score target, 0 in endless

	cursor  board.Coord
	grabbed bool

	spawnTimer int

	// Screen dimensions
	screenW int
	screenH int

	// Game state flags
	gameOver        bool
	levelCleared    bool
	won             bool
	paused          bool
	tooSmall        bool
	moveProcessed   bool // Prevent multiple moves per tick
	levelClearTicks int  // Animation ticks for level clear
}

// Package-level variables for config
var (
	configPath         string
	difficultyPreset   config.DifficultyPreset
	selectedStartLevel int
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	switch preset {
	case "easy":
		difficultyPreset = config.DifficultyEasy
	case "normal":
		difficultyPreset = config.DifficultyNormal
	case "hard":
		difficultyPreset = config.DifficultyHard
	case "fixed":
		difficultyPreset = config.DifficultyFixed
	default:
		difficultyPreset = "" // Use config default
	}
}

// SetStartLevel sets the starting level (1-10). 0 means start from beginning.
func SetStartLevel(level int) {
	selectedStartLevel = level
}

// GetStartLevel returns the currently selected start level.
func GetStartLevel() int {
	return selectedStartLevel
}

// New creates a new campaign mode game.
func New() *Game {
	return &Game{
		mode: ModeCampaign,
	}
}

// NewEndless creates a new endless mode game.
func NewEndless() *Game {
	return &Game{
		mode: ModeEndless,
	}
}

func init() {
	registry.Register("chroma", func() registry.Game {
		return New()
	})
	registry.Register("chroma_endless", func() registry.Game {
		return NewEndless()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "chroma_endless"
	}
	return "chroma"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "ChromaMerge (Endless)"
	}
	return "ChromaMerge"
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.seed = cfg.Seed
	g.score = 0
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.gameOver = false
	g.levelCleared = false
	g.won = false
	g.paused = false
	g.grabbed = false
	g.moveProcessed = false
	g.levelClearTicks = 0
	g.rng = rand.New(rand.NewSource(cfg.Seed))

	chromaCfg, err := config.LoadChroma(configPath)
	if err != nil {
		chromaCfg = config.DefaultChromaConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyChromaPreset(&chromaCfg, difficultyPreset)
	}

	g.cfg = chromaCfg
	g.diff = config.NewDifficultyManager(chromaCfg.Difficulty)

	// Apply selected start level (campaign only)
	if g.mode == ModeCampaign && selectedStartLevel > 0 && selectedStartLevel <= LevelCount() {
		g.levelIndex = selectedStartLevel - 1
		selectedStartLevel = 0 // Reset after use
	} else {
		g.levelIndex = 0
	}

	g.startBoard()
	g.checkScreenSize()
}

// currentLevel returns the parameters for the active board. Endless mode
// synthesizes a pseudo-level from the loaded config.
func (g *Game) currentLevel() Level {
	if g.mode == ModeCampaign {
		if lvl := GetLevel(g.levelIndex); lvl != nil {
			return *lvl
		}
		return Levels[len(Levels)-1]
	}
	return Level{
		Name:           "Endless",
		Columns:        g.cfg.Board.Columns,
		Rows:           g.cfg.Board.Rows,
		Colors:         int(board.ColorCount),
		SpawnInterval:  g.cfg.Generator.SpawnInterval,
		ObstacleChance: g.cfg.Generator.ObstacleChance,
		Durability:     g.cfg.Generator.ObstacleDurability,
		WildcardChance: endlessWildcardChance,
	}
}

// startBoard builds a fresh session for the current level and seeds it
// with a handful of starting tiles.
func (g *Game) startBoard() {
	lvl := g.currentLevel()
	g.target = lvl.Target

	g.session = board.NewSession(board.Config{
		Columns:  lvl.Columns,
		Rows:     lvl.Rows,
		CellSize: g.cfg.Board.CellSize,
		PoolMax:  g.cfg.Pool.MaxPerColor,
		Generator: board.GeneratorConfig{
			// No obstacles while the opening position is seeded
			ObstacleDurability: lvl.Durability,
			ColorWeights:       g.colorWeights(lvl.Colors),
		},
		Seed: g.seed + int64(g.levelIndex),
	})

	g.animator = NewAnimator(g.session)
	g.session.SetEventSink(g.animator.Consume)
	g.session.SetLiveSource(g.animator)

	g.cursor = board.C(lvl.Columns/2, lvl.Rows/2)
	g.spawnTimer = lvl.SpawnInterval

	// Seed the opening position with plain tiles
	for i := 0; i < initialTiles(lvl.Columns, lvl.Rows); i++ {
		if _, _, err := g.session.Spawn(nil); err != nil {
			break
		}
	}

	g.session.SetGeneratorConfig(board.GeneratorConfig{
		ObstacleProbability: lvl.ObstacleChance,
		ObstacleDurability:  lvl.Durability,
		ColorWeights:        g.colorWeights(lvl.Colors),
	})
}

// initialTiles is the opening tile count for a board of the given size.
func initialTiles(cols, rows int) int {
	n := cols * rows / 8
	if n < 4 {
		n = 4
	}
	return n
}

// colorWeights converts the configured per-color-name weights into
// board weights, restricted to the first n colors of the rotation.
func (g *Game) colorWeights(n int) map[board.Color]int {
	if n <= 0 || n > int(board.ColorCount) {
		n = int(board.ColorCount)
	}

	weights := make(map[board.Color]int, n)
	for _, c := range board.AllColors()[:n] {
		w := 1
		if cw, ok := g.cfg.Generator.ColorWeights[c.String()]; ok && cw > 0 {
			w = cw
		}
		weights[c] = w
	}
	// Colors outside the rotation never spawn
	for _, c := range board.AllColors()[n:] {
		weights[c] = 0
	}
	return weights
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	lvl := g.currentLevel()
	minW := lvl.Columns*cellWidth + 1
	minH := lvl.Rows*cellHeight + 1 + hudHeight + 2
	if minW < 30 {
		minW = 30
	}
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.moveProcessed = false

	// Handle window size check
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && (g.gameOver || g.won) {
		// Will be reset by platform
		return core.StepResult{State: g.State()}
	}

	// Handle level cleared animation
	if g.levelCleared {
		g.levelClearTicks++
		// Auto-advance after 2 seconds (120 ticks at 60fps)
		if g.levelClearTicks >= 120 {
			g.advanceLevel()
		}
		g.animator.Tick()
		return core.StepResult{State: g.State()}
	}

	// Don't process moves if game over or won
	if g.gameOver || g.won {
		g.animator.Tick()
		return core.StepResult{State: g.State()}
	}

	g.processInput(in)
	g.animator.Tick()
	g.advanceSpawner()

	if g.tick%reconcileInterval == 0 {
		g.session.Reconcile()
	}

	return core.StepResult{State: g.State()}
}

// processInput handles cursor movement and tile pushes for one tick.
func (g *Game) processInput(in core.InputFrame) {
	if in.Has(core.ActionGrab) {
		g.toggleGrab()
	}

	var dir board.Dir
	moved := false

	switch {
	case in.Has(core.ActionUp):
		dir = board.DirUp
		moved = true
	case in.Has(core.ActionDown):
		dir = board.DirDown
		moved = true
	case in.Has(core.ActionLeft):
		dir = board.DirLeft
		moved = true
	case in.Has(core.ActionRight):
		dir = board.DirRight
		moved = true
	}

	if !moved || g.moveProcessed {
		return
	}
	g.moveProcessed = true

	if g.grabbed {
		g.pushTile(dir)
		return
	}
	g.moveCursor(dir)
}

// toggleGrab latches onto the tile under the cursor. Grabbing empty
// cells or obstacles does nothing.
func (g *Game) toggleGrab() {
	if g.grabbed {
		g.grabbed = false
		return
	}
	if o, ok := g.session.Get(g.cursor); ok && o.IsTile() {
		g.grabbed = true
	}
}

// moveCursor shifts the cursor one cell, clamped to the board.
func (g *Game) moveCursor(d board.Dir) {
	next := g.cursor.Step(d)
	if next.X < 0 || next.X >= g.session.Columns() || next.Y < 0 || next.Y >= g.session.Rows() {
		return
	}
	g.cursor = next
}

// pushTile requests a move for the grabbed tile and applies scoring.
func (g *Game) pushTile(d board.Dir) {
	o, ok := g.session.Get(g.cursor)
	if !ok || !o.IsTile() {
		g.grabbed = false
		return
	}

	out, err := g.session.Resolve(o.ID, d)
	if err != nil {
		g.grabbed = false
		return
	}

	switch out.Kind {
	case board.OutcomeRelocated:
		// Cursor follows the pushed tile
		g.cursor = out.To

	case board.OutcomeMerged:
		g.grabbed = false
		g.cursor = out.To
		if out.Cascade != nil {
			g.score += out.Cascade.Value
			if out.Cascade.Promoted != board.SpecialNone {
				g.score += promotionBonus
			}
		}
		g.checkTarget()

	case board.OutcomeBlockedByObstacle:
		if out.Damage != nil && out.Damage.Destroyed {
			g.score += obstacleBonus
			g.checkTarget()
		}
	}
}

// checkTarget flags level completion in campaign mode.
func (g *Game) checkTarget() {
	if g.mode != ModeCampaign || g.target <= 0 {
		return
	}
	if g.score >= g.target {
		g.levelCleared = true
		g.levelClearTicks = 0
	}
}

// advanceSpawner counts down to the next automatic spawn. Spawning is
// deferred while tiles are still sliding so the generator reconciles
// against settled positions.
func (g *Game) advanceSpawner() {
	if g.spawnTimer > 0 {
		g.spawnTimer--
		return
	}
	if g.animator.Busy() {
		return
	}

	lvl := g.currentLevel()
	g.session.SetGeneratorConfig(board.GeneratorConfig{
		ObstacleProbability: g.diff.ObstacleChance(lvl.ObstacleChance, g.score, int(g.tick)),
		ObstacleDurability:  lvl.Durability,
		ColorWeights:        g.colorWeights(lvl.Colors),
	})

	var constraints *board.SpawnConstraints
	if lvl.WildcardChance > 0 && g.rng.Float64() < lvl.WildcardChance {
		constraints = &board.SpawnConstraints{Special: board.SpecialWildcard}
	}

	if _, _, err := g.session.Spawn(constraints); err != nil {
		if errors.Is(err, board.ErrNoEmptyCells) && !g.hasPlayableMove() {
			g.gameOver = true
		}
		return
	}

	g.spawnTimer = g.diff.SpawnInterval(lvl.SpawnInterval, g.score, int(g.tick))
}

// hasPlayableMove reports whether any two adjacent tiles could still
// merge. A full board is only lost once no such pair remains.
func (g *Game) hasPlayableMove() bool {
	for y := 0; y < g.session.Rows(); y++ {
		for x := 0; x < g.session.Columns(); x++ {
			o, ok := g.session.Get(board.C(x, y))
			if !ok || !o.IsTile() {
				continue
			}
			for _, d := range []board.Dir{board.DirRight, board.DirDown} {
				n, ok := g.session.Get(board.C(x, y).Step(d))
				if ok && n.IsTile() && o.Matches(n) {
					return true
				}
			}
		}
	}
	return false
}

// advanceLevel moves to the next level.
func (g *Game) advanceLevel() {
	g.levelCleared = false
	g.levelClearTicks = 0
	g.grabbed = false

	if g.levelIndex >= LevelCount()-1 {
		// Completed all levels
		g.won = true
		return
	}

	g.levelIndex++
	g.startBoard()
	g.checkScreenSize()
	// Score carries across levels; targets are cumulative
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver || g.won,
		Paused:   g.paused || g.tooSmall || g.levelCleared,
	}
}
