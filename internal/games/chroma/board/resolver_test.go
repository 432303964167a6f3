package board

import (
	"errors"
	"testing"
)

func TestResolveBoundaryBlocked(t *testing.T) {
	s := newTestSession(5, 5)
	tile := placeTile(t, s, C(0, 2), ColorRed, 2)

	out, err := s.Resolve(tile.ID, DirLeft)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeBlocked {
		t.Errorf("Resolve() kind = %v, want blocked", out.Kind)
	}
	if coord, _ := s.Locate(tile.ID); coord != C(0, 2) {
		t.Errorf("tile moved to %v on blocked move", coord)
	}
	if _, ok := s.store.checkBijection(); !ok {
		t.Error("bijection violated by blocked move")
	}
}

func TestResolveSimpleRelocation(t *testing.T) {
	s := newTestSession(5, 5)
	tile := placeTile(t, s, C(2, 2), ColorRed, 2)

	// Up decreases Y in screen coordinates.
	out, err := s.Resolve(tile.ID, DirUp)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeRelocated || out.To != C(2, 1) {
		t.Errorf("Resolve() = %v to %v, want relocated to (2,1)", out.Kind, out.To)
	}
	if coord, _ := s.Locate(tile.ID); coord != C(2, 1) {
		t.Errorf("Locate() = %v, want (2,1)", coord)
	}
}

func TestResolveMerge(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(2, 2), ColorRed, 2)
	target := placeTile(t, s, C(2, 1), ColorRed, 3)

	out, err := s.Resolve(mover.ID, DirUp)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeMerged || out.To != C(2, 1) {
		t.Errorf("Resolve() = %v to %v, want merged at (2,1)", out.Kind, out.To)
	}
	if _, ok := s.Locate(mover.ID); ok {
		t.Error("moving tile still tracked after merge")
	}
	if target.Value != 5 {
		t.Errorf("pivot value = %d, want 5", target.Value)
	}
}

func TestResolveWildcardMerges(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(1, 1), ColorBlue, 2)
	wild := placeTile(t, s, C(2, 1), ColorRed, 1)
	wild.Special = SpecialWildcard

	out, err := s.Resolve(mover.ID, DirRight)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeMerged {
		t.Errorf("Resolve() kind = %v, want merged via wildcard", out.Kind)
	}
	if wild.Value != 3 {
		t.Errorf("wildcard pivot value = %d, want 3", wild.Value)
	}
}

func TestResolveMismatchRedirects(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(2, 2), ColorRed, 1)
	placeTile(t, s, C(2, 1), ColorBlue, 1)

	// Up is blocked by a blue tile; the clockwise perpendicular (right)
	// is empty, so the move redirects there.
	out, err := s.Resolve(mover.ID, DirUp)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeRelocated || !out.Redirected {
		t.Fatalf("Resolve() = %+v, want redirected relocation", out)
	}
	if out.To != C(3, 2) {
		t.Errorf("redirect target = %v, want clockwise perpendicular (3,2)", out.To)
	}
}

func TestResolveMismatchNoAlternate(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(2, 2), ColorRed, 1)
	placeTile(t, s, C(2, 1), ColorBlue, 1)
	placeTile(t, s, C(3, 2), ColorGreen, 1)
	placeTile(t, s, C(1, 2), ColorYellow, 1)

	out, err := s.Resolve(mover.ID, DirUp)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeBlockedByMismatch {
		t.Errorf("Resolve() kind = %v, want blocked_by_mismatch", out.Kind)
	}
	if coord, _ := s.Locate(mover.ID); coord != C(2, 2) {
		t.Errorf("tile moved to %v on fully blocked mismatch", coord)
	}
}

func TestResolveObstacleCollision(t *testing.T) {
	s := newTestSession(5, 5)
	mover := placeTile(t, s, C(2, 3), ColorRed, 1)
	if _, err := s.obstacles.PlaceAt(C(3, 3), 1); err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}

	out, err := s.Resolve(mover.ID, DirRight)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if out.Kind != OutcomeBlockedByObstacle {
		t.Fatalf("Resolve() kind = %v, want blocked_by_obstacle", out.Kind)
	}
	if out.Damage == nil || !out.Damage.Destroyed {
		t.Errorf("collision damage = %+v, want destroyed durability-1 obstacle", out.Damage)
	}
	if _, ok := s.Get(C(3, 3)); ok {
		t.Error("destroyed obstacle still occupies (3,3)")
	}
	if s.IsObstacleAt(C(3, 3)) {
		t.Error("obstacle table still tracks destroyed obstacle")
	}
}

func TestResolveUntrackedOccupant(t *testing.T) {
	s := newTestSession(5, 5)
	if _, err := s.Resolve(999, DirUp); !errors.Is(err, ErrUntrackedOccupant) {
		t.Errorf("Resolve() on unknown ID = %v, want ErrUntrackedOccupant", err)
	}
}
