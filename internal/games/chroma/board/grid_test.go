package board

import (
	"errors"
	"testing"
)

func newTestStore() *Store {
	return NewStore(5, 5)
}

func testTile(id ID, c Color, value int) *Occupant {
	return &Occupant{ID: id, Kind: KindTile, Color: c, Value: value, leased: true}
}

func TestStoreSetAndGet(t *testing.T) {
	s := newTestStore()
	tile := testTile(1, ColorRed, 2)

	if err := s.Set(C(2, 2), tile); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, ok := s.Get(C(2, 2))
	if !ok {
		t.Fatal("Get() found nothing at (2,2)")
	}
	if got.ID != 1 {
		t.Errorf("Get() returned ID %d, want 1", got.ID)
	}

	coord, ok := s.Locate(1)
	if !ok || coord != C(2, 2) {
		t.Errorf("Locate(1) = %v, %v; want (2,2), true", coord, ok)
	}
}

func TestStoreSetErrors(t *testing.T) {
	s := newTestStore()
	first := testTile(1, ColorRed, 1)
	second := testTile(2, ColorBlue, 1)

	if err := s.Set(C(1, 1), first); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	tests := []struct {
		name    string
		coord   Coord
		tile    *Occupant
		wantErr error
	}{
		{"occupied by other", C(1, 1), second, ErrCellOccupied},
		{"occupant already placed", C(3, 3), first, ErrCellOccupied},
		{"out of bounds negative", C(-1, 0), second, ErrOutOfBounds},
		{"out of bounds high", C(5, 0), second, ErrOutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Set(tt.coord, tt.tile); !errors.Is(err, tt.wantErr) {
				t.Errorf("Set(%v) = %v, want %v", tt.coord, err, tt.wantErr)
			}
		})
	}

	// Re-setting the same occupant at its own cell is a no-op.
	if err := s.Set(C(1, 1), first); err != nil {
		t.Errorf("Set() same occupant same cell = %v, want nil", err)
	}
}

func TestStoreRemove(t *testing.T) {
	s := newTestStore()
	tile := testTile(1, ColorGreen, 3)

	if err := s.Set(C(0, 4), tile); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	got, err := s.Remove(C(0, 4))
	if err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("Remove() returned ID %d, want 1", got.ID)
	}

	if _, err := s.Remove(C(0, 4)); !errors.Is(err, ErrCellEmpty) {
		t.Errorf("Remove() on empty cell = %v, want ErrCellEmpty", err)
	}
	if _, ok := s.Locate(1); ok {
		t.Error("Locate() still finds removed occupant")
	}
}

func TestStoreEmptyCellsRecomputed(t *testing.T) {
	s := newTestStore()
	if got := len(s.EmptyCells()); got != 25 {
		t.Fatalf("EmptyCells() on empty board = %d cells, want 25", got)
	}

	if err := s.Set(C(0, 0), testTile(1, ColorRed, 1)); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	after := s.EmptyCells()
	if len(after) != 24 {
		t.Errorf("EmptyCells() = %d cells, want 24", len(after))
	}
	for _, c := range after {
		if c == C(0, 0) {
			t.Error("EmptyCells() reports occupied cell (0,0)")
		}
	}
}

func TestStoreBijectionMaintained(t *testing.T) {
	s := newTestStore()
	for i := ID(1); i <= 5; i++ {
		if err := s.Set(C(int(i-1), 0), testTile(i, ColorRed, 1)); err != nil {
			t.Fatalf("Set() failed: %v", err)
		}
	}
	if _, err := s.Remove(C(2, 0)); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, ok := s.checkBijection(); !ok {
		t.Error("bijection violated after set/remove sequence")
	}
	if s.Count() != 4 {
		t.Errorf("Count() = %d, want 4", s.Count())
	}
}
