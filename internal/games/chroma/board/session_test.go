package board

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestSession(cols, rows int) *Session {
	return NewSession(Config{
		Columns:  cols,
		Rows:     rows,
		CellSize: 1,
		PoolMax:  16,
		Seed:     1,
		Logger:   log.New(io.Discard),
	})
}

// placeTile acquires a tile from the session pool and places it.
func placeTile(t *testing.T, s *Session, c Coord, color Color, value int) *Occupant {
	t.Helper()
	o := s.pool.Acquire(color)
	o.Value = value
	if err := s.store.Set(c, o); err != nil {
		t.Fatalf("placing %s tile at %s: %v", color, c, err)
	}
	return o
}

func TestSessionEmitsEvents(t *testing.T) {
	s := newTestSession(5, 5)
	var events []Event
	s.SetEventSink(func(ev Event) { events = append(events, ev) })

	mover := placeTile(t, s, C(1, 1), ColorRed, 2)
	target := placeTile(t, s, C(2, 1), ColorRed, 3)

	if _, err := s.Resolve(mover.ID, DirRight); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 merged event", len(events))
	}
	ev := events[0]
	if ev.Kind != EventMerged || ev.ID != target.ID || ev.Value != 5 {
		t.Errorf("event = %+v, want merged id=%d value=5", ev, target.ID)
	}
}

func TestSessionPromotionEventCarriesTargets(t *testing.T) {
	s := newTestSession(5, 5)
	var promoted *Event
	s.SetEventSink(func(ev Event) {
		if ev.Kind == EventPromoted {
			promoted = &ev
		}
	})

	// Three blue tiles on row 1 plus a mover pushing in from the right:
	// the vacated origin (3,1) joins the group with (1,1) and (0,1),
	// a three-tile row merge, so RowClear promotes.
	placeTile(t, s, C(0, 1), ColorBlue, 1)
	placeTile(t, s, C(1, 1), ColorBlue, 1)
	placeTile(t, s, C(2, 1), ColorBlue, 1)
	mover := placeTile(t, s, C(3, 1), ColorBlue, 1)

	if _, err := s.Resolve(mover.ID, DirLeft); err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if promoted == nil {
		t.Fatal("no promoted event emitted")
	}
	if promoted.Special != SpecialRowClear {
		t.Errorf("promoted special = %v, want row_clear", promoted.Special)
	}
	if len(promoted.Cells) != 5 {
		t.Errorf("row clear targets %d cells, want 5", len(promoted.Cells))
	}
}

func TestSessionDamageAwardsDestroyed(t *testing.T) {
	s := newTestSession(5, 5)
	var destroyed int
	s.SetEventSink(func(ev Event) {
		if ev.Kind == EventDestroyed {
			destroyed++
		}
	})

	if _, err := s.obstacles.PlaceAt(C(3, 3), 2); err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}

	res, err := s.Damage(C(3, 3), 1)
	if err != nil {
		t.Fatalf("Damage() failed: %v", err)
	}
	if res.Destroyed || res.Remaining != 1 {
		t.Errorf("first hit = %+v, want survived with 1 remaining", res)
	}

	res, err = s.Damage(C(3, 3), 1)
	if err != nil {
		t.Fatalf("Damage() failed: %v", err)
	}
	if !res.Destroyed {
		t.Errorf("second hit = %+v, want destroyed", res)
	}
	if destroyed != 1 {
		t.Errorf("destroyed events = %d, want 1", destroyed)
	}
}

// Bijection must survive arbitrary interleavings of the public
// operations.
func TestSessionBijectionUnderOperationSequence(t *testing.T) {
	s := newTestSession(6, 6)
	s.SetGeneratorConfig(GeneratorConfig{ObstacleProbability: 0.2, ObstacleDurability: 2})

	var tiles []ID
	for i := 0; i < 12; i++ {
		_, o, err := s.Spawn(nil)
		if err != nil {
			t.Fatalf("Spawn() %d failed: %v", i, err)
		}
		if o.IsTile() {
			tiles = append(tiles, o.ID)
		}
	}

	dirs := []Dir{DirUp, DirRight, DirDown, DirLeft}
	for i, id := range tiles {
		if _, ok := s.Locate(id); !ok {
			continue // absorbed by an earlier merge
		}
		if _, err := s.Resolve(id, dirs[i%len(dirs)]); err != nil {
			t.Fatalf("Resolve() failed: %v", err)
		}
		if bad, ok := s.store.checkBijection(); !ok {
			t.Fatalf("bijection violated at step %d (id %d)", i, bad)
		}
	}
}

// Merge conservation: the pivot ends with the sum of all merged values
// and the tile count drops by the number of absorbed tiles.
func TestSessionMergeConservation(t *testing.T) {
	s := newTestSession(5, 5)
	placeTile(t, s, C(0, 2), ColorGreen, 4)
	placeTile(t, s, C(1, 2), ColorGreen, 2)
	mover := placeTile(t, s, C(2, 3), ColorGreen, 3)
	pivot := placeTile(t, s, C(2, 2), ColorGreen, 1)

	before := s.store.TileCount()
	out, err := s.Resolve(mover.ID, DirUp)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeMerged {
		t.Fatalf("Resolve() kind = %v, want merged", out.Kind)
	}

	if pivot.Value != 10 {
		t.Errorf("pivot value = %d, want 4+2+3+1=10", pivot.Value)
	}
	// Mover plus two cascade absorptions leave a single green tile.
	if got := s.store.TileCount(); got != before-3 {
		t.Errorf("tile count = %d, want %d", got, before-3)
	}
}
