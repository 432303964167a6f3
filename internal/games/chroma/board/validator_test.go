package board

import "testing"

// liveFromStore builds the live enumeration that exactly matches the
// store's records.
func liveFromStore(s *Session) []LiveOccupant {
	var live []LiveOccupant
	for _, id := range s.store.IDs() {
		c, _ := s.store.Locate(id)
		live = append(live, LiveOccupant{ID: id, X: float64(c.X), Y: float64(c.Y)})
	}
	return live
}

func TestReconcileCleanStateFixesNothing(t *testing.T) {
	s := newTestSession(5, 5)
	placeTile(t, s, C(1, 1), ColorRed, 2)
	placeTile(t, s, C(3, 3), ColorBlue, 4)

	report := s.validator.Reconcile(liveFromStore(s))
	if report.Fixed != 0 {
		t.Errorf("Reconcile() on clean state fixed %d, want 0", report.Fixed)
	}
}

func TestReconcileDropsDeadEntries(t *testing.T) {
	s := newTestSession(5, 5)
	placeTile(t, s, C(1, 1), ColorRed, 2)
	dead := placeTile(t, s, C(2, 2), ColorGreen, 1)

	// The live layer no longer reports the green tile.
	var live []LiveOccupant
	for _, lo := range liveFromStore(s) {
		if lo.ID != dead.ID {
			live = append(live, lo)
		}
	}

	report := s.validator.Reconcile(live)
	if report.Fixed != 1 {
		t.Errorf("Reconcile() fixed %d, want 1", report.Fixed)
	}
	if _, ok := s.Locate(dead.ID); ok {
		t.Error("dead entry still tracked after reconcile")
	}
	if s.pool.IdleCount(ColorGreen) != 1 {
		t.Error("dead tile was not returned to the pool")
	}
}

func TestReconcileOverwritesDriftedPosition(t *testing.T) {
	s := newTestSession(5, 5)
	tile := placeTile(t, s, C(1, 1), ColorRed, 2)

	// The live layer reports the tile a cell away from the record.
	live := []LiveOccupant{{ID: tile.ID, X: 2, Y: 1}}

	report := s.validator.Reconcile(live)
	if report.Fixed != 1 {
		t.Errorf("Reconcile() fixed %d, want 1", report.Fixed)
	}
	if c, _ := s.Locate(tile.ID); c != C(2, 1) {
		t.Errorf("Locate() = %v, want live claim (2,1)", c)
	}
	if _, ok := s.store.checkBijection(); !ok {
		t.Error("bijection violated by reconcile")
	}
}

func TestReconcileDuplicateClaimHigherValueWins(t *testing.T) {
	s := newTestSession(5, 5)
	low := placeTile(t, s, C(1, 1), ColorRed, 2)
	high := placeTile(t, s, C(2, 1), ColorRed, 7)

	// Both claim (1,1); the higher value must win.
	live := []LiveOccupant{
		{ID: low.ID, X: 1, Y: 1},
		{ID: high.ID, X: 1, Y: 1},
	}

	s.validator.Reconcile(live)

	got, ok := s.Get(C(1, 1))
	if !ok || got.ID != high.ID {
		t.Fatalf("winner at (1,1) = %+v, want id %d", got, high.ID)
	}
	if _, tracked := s.Locate(low.ID); tracked {
		t.Error("duplicate-claim loser still tracked")
	}
}

func TestReconcileDuplicateClaimTieKeepsFirst(t *testing.T) {
	s := newTestSession(5, 5)
	first := placeTile(t, s, C(1, 1), ColorRed, 3)
	second := placeTile(t, s, C(2, 1), ColorRed, 3)

	live := []LiveOccupant{
		{ID: first.ID, X: 1, Y: 1},
		{ID: second.ID, X: 1, Y: 1},
	}

	s.validator.Reconcile(live)

	got, ok := s.Get(C(1, 1))
	if !ok || got.ID != first.ID {
		t.Errorf("tie winner = %+v, want first-enumerated id %d", got, first.ID)
	}
}

func TestReconcileSwappedPairKeepsBothValues(t *testing.T) {
	s := newTestSession(5, 5)
	a := placeTile(t, s, C(1, 1), ColorRed, 5)
	b := placeTile(t, s, C(2, 2), ColorBlue, 8)

	// The live layer reports the two tiles with swapped cells.
	live := []LiveOccupant{
		{ID: a.ID, X: 2, Y: 2},
		{ID: b.ID, X: 1, Y: 1},
	}

	s.validator.Reconcile(live)

	gotA, _ := s.Get(C(2, 2))
	gotB, _ := s.Get(C(1, 1))
	if gotA == nil || gotA.ID != a.ID || gotA.Value != 5 {
		t.Errorf("tile at (2,2) = %+v, want id %d value 5", gotA, a.ID)
	}
	if gotB == nil || gotB.ID != b.ID || gotB.Value != 8 {
		t.Errorf("tile at (1,1) = %+v, want id %d value 8", gotB, b.ID)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	s := newTestSession(5, 5)
	tile := placeTile(t, s, C(1, 1), ColorRed, 2)
	placeTile(t, s, C(4, 4), ColorBlue, 3)

	// Drifted live claim plus an extra dead store entry.
	dead := placeTile(t, s, C(0, 0), ColorGreen, 1)
	_ = dead
	live := []LiveOccupant{
		{ID: tile.ID, X: 3, Y: 1},
		{ID: 2, X: 4, Y: 4},
	}

	first := s.validator.Reconcile(live)
	if first.Fixed == 0 {
		t.Fatal("first Reconcile() fixed nothing, drift expected")
	}

	second := s.validator.Reconcile(live)
	if second.Fixed != 0 {
		t.Errorf("second Reconcile() fixed %d, want 0", second.Fixed)
	}
}

func TestReconcileClampsOffBoardClaims(t *testing.T) {
	s := newTestSession(5, 5)
	tile := placeTile(t, s, C(4, 4), ColorRed, 2)

	// Animation overshoot: the live position is past the board edge.
	live := []LiveOccupant{{ID: tile.ID, X: 6.3, Y: 4.1}}

	s.validator.Reconcile(live)
	if c, _ := s.Locate(tile.ID); c != C(4, 4) {
		t.Errorf("Locate() = %v, want clamped (4,4)", c)
	}
}
