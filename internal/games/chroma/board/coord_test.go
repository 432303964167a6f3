package board

import "testing"

func TestDirDelta(t *testing.T) {
	tests := []struct {
		dir    Dir
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirRight, 1, 0},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			dx, dy := tt.dir.Delta()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Delta() = (%d,%d), want (%d,%d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestDirPerpendicularsExcludeOpposite(t *testing.T) {
	for _, d := range AllDirs() {
		perp := d.Perpendiculars()
		for _, p := range perp {
			if p == d || p == d.Opposite() {
				t.Errorf("Perpendiculars(%v) contains %v", d, p)
			}
		}
		if perp[0] == perp[1] {
			t.Errorf("Perpendiculars(%v) returned duplicates", d)
		}
	}
}

func TestCoordStep(t *testing.T) {
	c := C(2, 2)
	if got := c.Step(DirUp); got != C(2, 1) {
		t.Errorf("Step(Up) = %v, want (2,1)", got)
	}
	if got := c.Step(DirLeft).Step(DirDown); got != C(1, 3) {
		t.Errorf("chained steps = %v, want (1,3)", got)
	}
}

func TestCoordManhattan(t *testing.T) {
	if got := C(0, 0).Manhattan(C(3, 4)); got != 7 {
		t.Errorf("Manhattan = %d, want 7", got)
	}
	if got := C(3, 4).Manhattan(C(0, 0)); got != 7 {
		t.Errorf("Manhattan should be symmetric, got %d", got)
	}
}
