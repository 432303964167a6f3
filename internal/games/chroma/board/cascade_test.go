package board

import (
	"reflect"
	"testing"
)

func TestClassifyPattern(t *testing.T) {
	tests := []struct {
		name     string
		pivot    Coord
		absorbed []Coord
		want     Special
	}{
		{
			name:     "row aligned",
			pivot:    C(2, 1),
			absorbed: []Coord{C(0, 1), C(1, 1)},
			want:     SpecialRowClear,
		},
		{
			name:     "column aligned",
			pivot:    C(2, 2),
			absorbed: []Coord{C(2, 0), C(2, 1)},
			want:     SpecialColumnClear,
		},
		{
			name:     "large unaligned cluster",
			pivot:    C(2, 2),
			absorbed: []Coord{C(1, 2), C(3, 2), C(2, 1), C(2, 3)},
			want:     SpecialAreaClear,
		},
		{
			name:     "small unaligned cluster",
			pivot:    C(2, 2),
			absorbed: []Coord{C(1, 2), C(2, 1)},
			want:     SpecialValueBoost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyPattern(tt.pivot, tt.absorbed); got != tt.want {
				t.Errorf("classifyPattern(%v, %v) = %v, want %v", tt.pivot, tt.absorbed, got, tt.want)
			}
		})
	}
}

// Three same-color tiles in a row merged by a real move must collapse
// into one promoted pivot. The mover's vacated origin is part of the
// group even though the cell is empty by the time the cascade runs.
func TestResolveRowMergePromotes(t *testing.T) {
	s := newTestSession(5, 5)
	placeTile(t, s, C(0, 1), ColorBlue, 1)
	mover := placeTile(t, s, C(1, 1), ColorBlue, 1)
	pivot := placeTile(t, s, C(2, 1), ColorBlue, 1)

	out, err := s.Resolve(mover.ID, DirRight)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if out.Kind != OutcomeMerged {
		t.Fatalf("outcome = %v, want merged", out.Kind)
	}
	if out.Cascade == nil {
		t.Fatal("merge outcome carries no cascade result")
	}
	if !reflect.DeepEqual(out.Cascade.Absorbed, []Coord{C(1, 1), C(0, 1)}) {
		t.Errorf("absorbed = %v, want [(1,1) (0,1)]", out.Cascade.Absorbed)
	}
	if out.Cascade.Value != 3 {
		t.Errorf("cascade value = %d, want 3", out.Cascade.Value)
	}
	if out.Cascade.Promoted != SpecialRowClear {
		t.Errorf("promoted = %v, want row_clear", out.Cascade.Promoted)
	}
	if pivot.Value != 3 {
		t.Errorf("pivot value = %d, want 3", pivot.Value)
	}
	if pivot.Special != SpecialRowClear {
		t.Errorf("pivot special = %v, want row_clear", pivot.Special)
	}
	if _, ok := s.Get(C(0, 1)); ok {
		t.Error("tile at (0,1) was not absorbed")
	}
	if _, ok := s.Get(C(1, 1)); ok {
		t.Error("mover origin (1,1) should be empty")
	}
	if o, ok := s.Get(C(2, 1)); !ok || o.ID != pivot.ID {
		t.Error("pivot missing from its cell after the cascade")
	}
}

// A plain two-tile merge stays below the promotion threshold: the
// origin alone is one group member short of a pattern.
func TestResolvePairMergeDoesNotPromote(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(1, 1), ColorBlue, 1)
	pivot := placeTile(t, s, C(2, 1), ColorBlue, 1)

	out, err := s.Resolve(mover.ID, DirRight)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	if out.Kind != OutcomeMerged {
		t.Fatalf("outcome = %v, want merged", out.Kind)
	}
	if out.Cascade.Promoted != SpecialNone {
		t.Errorf("promoted = %v, want none for a pair", out.Cascade.Promoted)
	}
	if pivot.Value != 2 {
		t.Errorf("pivot value = %d, want 2", pivot.Value)
	}
	if pivot.Special != SpecialNone {
		t.Errorf("pivot special = %v, want none", pivot.Special)
	}
}

func TestCascadeSinglePass(t *testing.T) {
	s := newTestSession(5, 5)
	// A red pair one cell away from the pivot group must not be pulled
	// in: the cascade runs exactly once and never restarts.
	pivot := placeTile(t, s, C(2, 2), ColorRed, 1)
	placeTile(t, s, C(2, 3), ColorRed, 1)
	placeTile(t, s, C(2, 0), ColorRed, 1) // gap at (2,1)

	result := runCascade(s.store, s.pool, C(2, 2), C(2, 2))

	if len(result.Absorbed) != 1 {
		t.Fatalf("absorbed = %v, want only the adjacent tile", result.Absorbed)
	}
	if pivot.Value != 2 {
		t.Errorf("pivot value = %d, want 2", pivot.Value)
	}
	if _, ok := s.Get(C(2, 0)); !ok {
		t.Error("disconnected tile was absorbed across the gap")
	}
}

func TestCascadeIgnoresOtherColorsAndObstacles(t *testing.T) {
	s := newTestSession(5, 5)
	pivot := placeTile(t, s, C(2, 2), ColorYellow, 2)
	placeTile(t, s, C(1, 2), ColorYellow, 2)
	placeTile(t, s, C(3, 2), ColorGreen, 9)
	if _, err := s.obstacles.PlaceAt(C(2, 1), 1); err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}

	result := runCascade(s.store, s.pool, C(2, 2), C(2, 2))

	if len(result.Absorbed) != 1 || result.Absorbed[0] != C(1, 2) {
		t.Errorf("absorbed = %v, want [(1,2)]", result.Absorbed)
	}
	if pivot.Value != 4 {
		t.Errorf("pivot value = %d, want 4", pivot.Value)
	}
	if !s.IsObstacleAt(C(2, 1)) {
		t.Error("obstacle disturbed by cascade")
	}
}

// Identical pre-cascade contents must absorb the same set and classify
// the same kind every time.
func TestCascadeDeterminism(t *testing.T) {
	build := func() (*Session, Coord) {
		s := newTestSession(5, 5)
		placeTile(t, s, C(2, 2), ColorPurple, 1)
		placeTile(t, s, C(1, 2), ColorPurple, 2)
		placeTile(t, s, C(3, 2), ColorPurple, 3)
		placeTile(t, s, C(2, 1), ColorPurple, 4)
		placeTile(t, s, C(2, 3), ColorPurple, 5)
		return s, C(2, 2)
	}

	s1, p1 := build()
	first := runCascade(s1.store, s1.pool, p1, p1)

	for i := 0; i < 5; i++ {
		s2, p2 := build()
		again := runCascade(s2.store, s2.pool, p2, p2)
		if !reflect.DeepEqual(first.Absorbed, again.Absorbed) {
			t.Fatalf("absorbed set diverged: %v vs %v", first.Absorbed, again.Absorbed)
		}
		if first.Promoted != again.Promoted {
			t.Fatalf("promotion diverged: %v vs %v", first.Promoted, again.Promoted)
		}
	}

	if first.Promoted != SpecialAreaClear {
		t.Errorf("promoted = %v, want area_clear for 4 unaligned neighbors", first.Promoted)
	}
}

func TestSpecialTargets(t *testing.T) {
	s := newTestSession(4, 3)
	placeTile(t, s, C(1, 1), ColorRed, 1)

	tests := []struct {
		kind Special
		want int
	}{
		{SpecialRowClear, 4},
		{SpecialColumnClear, 3},
		{SpecialAreaClear, 9},
		{SpecialValueBoost, 1},
		{SpecialColorClear, 1},
		{SpecialWildcard, 0},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got := SpecialTargets(s.store, C(1, 1), tt.kind)
			if len(got) != tt.want {
				t.Errorf("SpecialTargets(%v) = %d cells, want %d", tt.kind, len(got), tt.want)
			}
		})
	}
}
