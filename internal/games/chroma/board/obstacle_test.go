package board

import (
	"errors"
	"testing"
)

func TestObstaclePlaceAt(t *testing.T) {
	s := newTestSession(5, 5)

	o, err := s.obstacles.PlaceAt(C(2, 2), 2)
	if err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}
	if !o.IsObstacle() || o.Durability != 2 {
		t.Errorf("PlaceAt() = %+v, want obstacle with durability 2", o)
	}
	if !s.IsObstacleAt(C(2, 2)) {
		t.Error("IsObstacleAt() = false for placed obstacle")
	}

	// The grid store holds the obstacle, so the cell reads occupied.
	if _, ok := s.Get(C(2, 2)); !ok {
		t.Error("grid store does not track placed obstacle")
	}
}

func TestObstaclePlaceAtOccupied(t *testing.T) {
	s := newTestSession(5, 5)
	placeTile(t, s, C(1, 1), ColorRed, 1)

	if _, err := s.obstacles.PlaceAt(C(1, 1), 1); !errors.Is(err, ErrCellOccupied) {
		t.Errorf("PlaceAt() on occupied cell = %v, want ErrCellOccupied", err)
	}
}

func TestObstacleDamageLifecycle(t *testing.T) {
	s := newTestSession(5, 5)
	if _, err := s.obstacles.PlaceAt(C(3, 3), 3); err != nil {
		t.Fatalf("PlaceAt() failed: %v", err)
	}

	tests := []struct {
		amount        int
		wantDestroyed bool
		wantRemaining int
	}{
		{1, false, 2},
		{1, false, 1},
		{1, true, 0},
	}

	for i, tt := range tests {
		res, err := s.obstacles.Damage(C(3, 3), tt.amount)
		if err != nil {
			t.Fatalf("Damage() hit %d failed: %v", i+1, err)
		}
		if res.Destroyed != tt.wantDestroyed || res.Remaining != tt.wantRemaining {
			t.Errorf("hit %d = %+v, want destroyed=%v remaining=%d",
				i+1, res, tt.wantDestroyed, tt.wantRemaining)
		}
	}

	if s.IsObstacleAt(C(3, 3)) {
		t.Error("obstacle table still tracks destroyed obstacle")
	}
	if _, ok := s.Get(C(3, 3)); ok {
		t.Error("grid store still tracks destroyed obstacle")
	}

	if _, err := s.obstacles.Damage(C(3, 3), 1); !errors.Is(err, ErrCellEmpty) {
		t.Errorf("Damage() on empty cell = %v, want ErrCellEmpty", err)
	}
}
