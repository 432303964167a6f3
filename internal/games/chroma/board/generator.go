package board

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// GeneratorConfig carries the level-driven spawn parameters, consumed
// only at spawn time.
type GeneratorConfig struct {
	// ObstacleProbability is the chance an unconstrained spawn places an
	// obstacle instead of a tile.
	ObstacleProbability float64
	// ObstacleDurability is the durability of generated obstacles.
	ObstacleDurability int
	// ColorWeights biases tile color selection. Missing entries count
	// as weight 1; an explicit non-positive entry excludes the color.
	ColorWeights map[Color]int
}

// SpawnConstraints optionally pins attributes of the next spawn.
type SpawnConstraints struct {
	Color    *Color
	Value    int // 0 means default
	Special  Special
	Obstacle bool
}

// Generator places new occupants into empty cells chosen uniformly at
// random. Every placement is preceded by a reconcile pass so spawns
// never land on drifted state.
type Generator struct {
	store     *Store
	pool      *Pool
	obstacles *Obstacles
	validator *Validator
	live      LiveSource
	rng       *rand.Rand
	cfg       GeneratorConfig
	logger    *log.Logger
}

// NewGenerator creates a generator over the session's components.
// live may be nil; reconciliation is skipped in that case.
func NewGenerator(store *Store, pool *Pool, obstacles *Obstacles, validator *Validator, rng *rand.Rand, cfg GeneratorConfig, logger *log.Logger) *Generator {
	if cfg.ObstacleDurability < 1 {
		cfg.ObstacleDurability = 1
	}
	return &Generator{
		store:     store,
		pool:      pool,
		obstacles: obstacles,
		validator: validator,
		rng:       rng,
		cfg:       cfg,
		logger:    logger,
	}
}

// SetLiveSource installs the spatial query source used for the
// pre-spawn reconcile.
func (g *Generator) SetLiveSource(src LiveSource) {
	g.live = src
}

// SetConfig replaces the spawn parameters, typically on a level change.
func (g *Generator) SetConfig(cfg GeneratorConfig) {
	if cfg.ObstacleDurability < 1 {
		cfg.ObstacleDurability = 1
	}
	g.cfg = cfg
}

// Spawn places one new occupant and returns its coordinate for the
// animation layer to render a spawn-in effect. Fails with
// ErrNoEmptyCells when no candidate cell exists; the caller may skip
// the tick.
func (g *Generator) Spawn(con *SpawnConstraints) (Coord, *Occupant, error) {
	if g.live != nil && g.validator != nil {
		g.validator.Reconcile(g.live.EnumerateLive())
	}

	// Empty per the grid store and not claimed by the obstacle table.
	var candidates []Coord
	for _, c := range g.store.EmptyCells() {
		if g.obstacles.IsObstacleAt(c) {
			continue
		}
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return Coord{}, nil, ErrNoEmptyCells
	}

	target := candidates[g.rng.Intn(len(candidates))]

	obstacle := g.cfg.ObstacleProbability > 0 && g.rng.Float64() < g.cfg.ObstacleProbability
	if con != nil && con.Obstacle {
		obstacle = true
	}
	if con != nil && (con.Color != nil || con.Special != SpecialNone) {
		obstacle = false
	}

	if obstacle {
		o, err := g.obstacles.PlaceAt(target, g.cfg.ObstacleDurability)
		if err != nil {
			return Coord{}, nil, err
		}
		return target, o, nil
	}

	color := g.pickColor()
	if con != nil && con.Color != nil {
		color = *con.Color
	}

	o := g.pool.Acquire(color)
	if con != nil {
		if con.Value > 0 {
			o.Value = con.Value
		}
		if con.Special != SpecialNone {
			o.Special = con.Special
		}
	}

	if err := g.store.Set(target, o); err != nil {
		g.pool.Release(o)
		return Coord{}, nil, err
	}
	return target, o, nil
}

// pickColor selects a tile color by configured weight.
func (g *Generator) pickColor() Color {
	total := 0
	for _, c := range AllColors() {
		total += g.weight(c)
	}
	if total <= 0 {
		return ColorRed
	}
	pick := g.rng.Intn(total)
	acc := 0
	for _, c := range AllColors() {
		acc += g.weight(c)
		if pick < acc {
			return c
		}
	}
	return ColorRed
}

func (g *Generator) weight(c Color) int {
	w, ok := g.cfg.ColorWeights[c]
	if !ok {
		return 1
	}
	if w < 0 {
		return 0
	}
	return w
}
