package chroma

import (
	"sort"

	"github.com/dmelnik/chromamerge/internal/games/chroma/board"
)

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	pulseAnimationDuration = 6 // ~100ms at 60fps
	flashAnimationDuration = 10
)

// Sprite is the animated visual counterpart of one board tile.
// Positions are in fractional cell units.
type Sprite struct {
	ID      board.ID
	X, Y    float64
	TargetX int
	TargetY int

	fromX, fromY float64
	slideTicks   int // remaining slide ticks, 0 when settled
	pulseTicks   int // merge/promotion pulse
	popTicks     int // spawn pop
}

// Settled reports whether the sprite has reached its target cell.
func (s *Sprite) Settled() bool {
	return s.slideTicks == 0
}

// Pulsing reports whether the sprite is inside a merge pulse.
func (s *Sprite) Pulsing() bool {
	return s.pulseTicks > 0
}

// Popping reports whether the sprite is inside a spawn pop.
func (s *Sprite) Popping() bool {
	return s.popTicks > 0
}

// CellFlash is a transient highlight on a board cell, used for obstacle
// destruction and promoted special previews.
type CellFlash struct {
	Cell  board.Coord
	Ticks int
}

// Animator turns session events into tick-driven sprite motion. It is
// the session's event sink and also its live source: reconciliation
// checks the grid against the positions the animator has committed to.
type Animator struct {
	session *board.Session
	sprites map[board.ID]*Sprite
	flashes []CellFlash
}

// NewAnimator creates an animator bound to a session. The caller is
// responsible for installing it as both sink and live source.
func NewAnimator(session *board.Session) *Animator {
	return &Animator{
		session: session,
		sprites: make(map[board.ID]*Sprite),
	}
}

// Consume implements the session event sink. Events only schedule
// visuals; the logical mutation is already committed when they arrive.
func (a *Animator) Consume(ev board.Event) {
	switch ev.Kind {
	case board.EventSpawned:
		a.sprites[ev.ID] = &Sprite{
			ID:       ev.ID,
			X:        float64(ev.To.X),
			Y:        float64(ev.To.Y),
			TargetX:  ev.To.X,
			TargetY:  ev.To.Y,
			popTicks: pulseAnimationDuration,
		}

	case board.EventRelocated:
		s, ok := a.sprites[ev.ID]
		if !ok {
			s = &Sprite{ID: ev.ID, X: float64(ev.From.X), Y: float64(ev.From.Y)}
			a.sprites[ev.ID] = s
		}
		s.fromX, s.fromY = s.X, s.Y
		s.TargetX = ev.To.X
		s.TargetY = ev.To.Y
		s.slideTicks = slideAnimationDuration

	case board.EventMerged:
		// The mover was consumed; its sprite is whichever one was
		// headed for the mover's origin cell.
		for id, s := range a.sprites {
			if id != ev.ID && s.TargetX == ev.From.X && s.TargetY == ev.From.Y {
				delete(a.sprites, id)
				break
			}
		}
		if pivot, ok := a.sprites[ev.ID]; ok {
			pivot.pulseTicks = pulseAnimationDuration
		}

	case board.EventPromoted:
		if pivot, ok := a.sprites[ev.ID]; ok {
			pivot.pulseTicks = pulseAnimationDuration
		}
		for _, c := range ev.Cells {
			a.flashes = append(a.flashes, CellFlash{Cell: c, Ticks: flashAnimationDuration})
		}

	case board.EventDestroyed:
		a.flashes = append(a.flashes, CellFlash{Cell: ev.To, Ticks: flashAnimationDuration})
	}
}

// Tick advances all animations by one frame and prunes sprites whose
// occupants no longer exist on the grid (absorbed by a cascade).
func (a *Animator) Tick() {
	for id, s := range a.sprites {
		if s.slideTicks > 0 {
			s.slideTicks--
			t := 1.0 - float64(s.slideTicks)/float64(slideAnimationDuration)
			t = easeOutQuad(t)
			s.X = s.fromX + (float64(s.TargetX)-s.fromX)*t
			s.Y = s.fromY + (float64(s.TargetY)-s.fromY)*t
		}
		if s.pulseTicks > 0 {
			s.pulseTicks--
		}
		if s.popTicks > 0 {
			s.popTicks--
		}

		if s.Settled() {
			if _, ok := a.session.Locate(id); !ok {
				delete(a.sprites, id)
			}
		}
	}

	kept := a.flashes[:0]
	for _, f := range a.flashes {
		f.Ticks--
		if f.Ticks > 0 {
			kept = append(kept, f)
		}
	}
	a.flashes = kept
}

// Busy reports whether any sprite is still sliding. The game defers
// automatic spawns until the board is visually settled.
func (a *Animator) Busy() bool {
	for _, s := range a.sprites {
		if !s.Settled() {
			return true
		}
	}
	return false
}

// Sprites returns the current sprites ordered by identity for
// deterministic rendering.
func (a *Animator) Sprites() []*Sprite {
	out := make([]*Sprite, 0, len(a.sprites))
	for _, s := range a.sprites {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Flashes returns the active cell highlights.
func (a *Animator) Flashes() []CellFlash {
	return a.flashes
}

// Reset discards all sprites and flashes.
func (a *Animator) Reset() {
	a.sprites = make(map[board.ID]*Sprite)
	a.flashes = nil
}

// EnumerateLive implements board.LiveSource. It reports each sprite at
// the cell it has committed to (the slide target), not the transient
// interpolated position, so reconciliation never sees a tile parked
// between cells.
func (a *Animator) EnumerateLive() []board.LiveOccupant {
	cell := a.session.CellSize()
	out := make([]board.LiveOccupant, 0, len(a.sprites))
	for _, s := range a.sprites {
		out = append(out, board.LiveOccupant{
			ID: s.ID,
			X:  float64(s.TargetX) * cell,
			Y:  float64(s.TargetY) * cell,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
