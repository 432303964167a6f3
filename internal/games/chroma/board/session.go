package board

import (
	"math/rand"

	"github.com/charmbracelet/log"
)

// EventKind enumerates the notifications emitted to the visual layer.
type EventKind uint8

const (
	EventRelocated EventKind = iota
	EventMerged
	EventPromoted
	EventDestroyed
	EventSpawned
)

// String returns the string representation of an event kind.
func (k EventKind) String() string {
	switch k {
	case EventRelocated:
		return "relocated"
	case EventMerged:
		return "merged"
	case EventPromoted:
		return "promoted"
	case EventDestroyed:
		return "destroyed"
	case EventSpawned:
		return "spawned"
	default:
		return "unknown"
	}
}

// Event is an advisory notification for the animation/effects layer.
// It carries a snapshot of the occupant state at emission time; the
// logical mutation is already committed when the event fires.
type Event struct {
	Kind    EventKind
	ID      ID
	From    Coord
	To      Coord
	Value   int
	Color   Color
	Special Special
	// Cells lists the coordinates a promoted special would affect.
	Cells []Coord
}

// EventSink receives events synchronously. Implementations must not
// call back into the session and must not block; the intended sink is a
// dispatcher that queues work for asynchronous animation.
type EventSink func(Event)

// Config assembles a board session.
type Config struct {
	Columns   int
	Rows      int
	CellSize  float64
	PoolMax   int
	Generator GeneratorConfig
	Seed      int64
	Logger    *log.Logger
}

// Session owns the grid store, occupant pool, and obstacle table for
// one board, and exposes the resolver, cascade, validator, and
// generator as methods. Callers hold the session handle; there is no
// hidden global state. The session is single-threaded cooperative: the
// surrounding game loop issues one call at a time, and no call is
// reentrant.
type Session struct {
	store     *Store
	pool      *Pool
	obstacles *Obstacles
	resolver  *Resolver
	validator *Validator
	generator *Generator

	live   LiveSource
	sink   EventSink
	nextID ID
	logger *log.Logger
}

// NewSession creates a session for one board run.
func NewSession(cfg Config) *Session {
	if cfg.Columns <= 0 {
		cfg.Columns = 8
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 8
	}
	if cfg.CellSize <= 0 {
		cfg.CellSize = 1
	}

	s := &Session{logger: cfg.Logger}
	newID := func() ID {
		s.nextID++
		return s.nextID
	}

	s.store = NewStore(cfg.Columns, cfg.Rows)
	s.pool = NewPool(cfg.PoolMax, newID, cfg.Logger)
	s.obstacles = NewObstacles(s.store, newID)
	s.resolver = NewResolver(s.store, s.obstacles, s.pool)
	s.validator = NewValidator(s.store, s.pool, s.obstacles, cfg.CellSize, cfg.Logger)
	s.generator = NewGenerator(s.store, s.pool, s.obstacles, s.validator, rand.New(rand.NewSource(cfg.Seed)), cfg.Generator, cfg.Logger)
	return s
}

// SetEventSink installs the sink notified after each committed mutation.
func (s *Session) SetEventSink(sink EventSink) {
	s.sink = sink
}

// SetLiveSource installs the spatial query source for reconciliation.
func (s *Session) SetLiveSource(src LiveSource) {
	s.live = src
	s.generator.SetLiveSource(src)
}

// SetGeneratorConfig swaps spawn parameters, typically on level change.
func (s *Session) SetGeneratorConfig(cfg GeneratorConfig) {
	s.generator.SetConfig(cfg)
}

func (s *Session) emit(ev Event) {
	if s.sink != nil {
		s.sink(ev)
	}
}

// Resolve handles one move request and emits the matching events.
func (s *Session) Resolve(id ID, d Dir) (MoveOutcome, error) {
	out, err := s.resolver.Resolve(id, d)
	if err != nil {
		return out, err
	}

	switch out.Kind {
	case OutcomeRelocated:
		s.emit(Event{Kind: EventRelocated, ID: id, From: out.From, To: out.To})

	case OutcomeMerged:
		pivot, ok := s.store.Get(out.To)
		if ok {
			s.emit(Event{
				Kind:  EventMerged,
				ID:    pivot.ID,
				From:  out.From,
				To:    out.To,
				Value: pivot.Value,
				Color: pivot.Color,
			})
			if out.Cascade != nil && out.Cascade.Promoted != SpecialNone {
				s.emit(Event{
					Kind:    EventPromoted,
					ID:      pivot.ID,
					To:      out.To,
					Value:   pivot.Value,
					Color:   pivot.Color,
					Special: out.Cascade.Promoted,
					Cells:   SpecialTargets(s.store, out.To, out.Cascade.Promoted),
				})
			}
		}

	case OutcomeBlockedByObstacle:
		if out.Damage != nil && out.Damage.Destroyed {
			s.emit(Event{Kind: EventDestroyed, To: out.To})
		}
	}

	return out, err
}

// Spawn places one new occupant via the generator and emits Spawned.
func (s *Session) Spawn(con *SpawnConstraints) (Coord, *Occupant, error) {
	c, o, err := s.generator.Spawn(con)
	if err != nil {
		return c, o, err
	}
	s.emit(Event{
		Kind:    EventSpawned,
		ID:      o.ID,
		To:      c,
		Value:   o.Value,
		Color:   o.Color,
		Special: o.Special,
	})
	return c, o, nil
}

// Damage applies damage to the obstacle at a coordinate and emits
// Destroyed when it breaks.
func (s *Session) Damage(c Coord, amount int) (DamageResult, error) {
	res, err := s.obstacles.Damage(c, amount)
	if err != nil {
		return res, err
	}
	if res.Destroyed {
		s.emit(Event{Kind: EventDestroyed, To: c})
	}
	return res, err
}

// Reconcile runs one validator pass against the live source. With no
// live source installed it reports zero repairs.
func (s *Session) Reconcile() RepairReport {
	if s.live == nil {
		return RepairReport{}
	}
	return s.validator.Reconcile(s.live.EnumerateLive())
}

// Read-only queries.

// Get returns the occupant at the given coordinate, if any.
func (s *Session) Get(c Coord) (*Occupant, bool) {
	return s.store.Get(c)
}

// Locate returns the coordinate of the given occupant identity.
func (s *Session) Locate(id ID) (Coord, bool) {
	return s.store.Locate(id)
}

// EmptyCells returns the currently unmapped coordinates.
func (s *Session) EmptyCells() []Coord {
	return s.store.EmptyCells()
}

// IsObstacleAt reports whether an obstacle occupies the coordinate.
func (s *Session) IsObstacleAt(c Coord) bool {
	return s.obstacles.IsObstacleAt(c)
}

// Columns returns the board width in cells.
func (s *Session) Columns() int {
	return s.store.Columns()
}

// Rows returns the board height in cells.
func (s *Session) Rows() int {
	return s.store.Rows()
}

// CellSize returns the world-units-per-cell conversion factor.
func (s *Session) CellSize() float64 {
	return s.validator.cellSize
}

// SpecialTargets reports the cells a special at the pivot would affect.
func (s *Session) SpecialTargets(pivot Coord, kind Special) []Coord {
	return SpecialTargets(s.store, pivot, kind)
}

// Store exposes the grid store for read-mostly collaborators such as
// the renderer. Mutation outside the session entry points is not
// permitted.
func (s *Session) Store() *Store {
	return s.store
}
