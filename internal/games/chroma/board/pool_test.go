package board

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestPool(maxPerColor int) *Pool {
	var next ID
	return NewPool(maxPerColor, func() ID {
		next++
		return next
	}, log.New(io.Discard))
}

func TestPoolAcquireRelease(t *testing.T) {
	p := newTestPool(4)

	a := p.Acquire(ColorGreen)
	if a == nil || !a.IsTile() || a.Color != ColorGreen {
		t.Fatalf("Acquire() = %+v, want leased green tile", a)
	}
	if p.ActiveCount(ColorGreen) != 1 {
		t.Errorf("ActiveCount = %d, want 1", p.ActiveCount(ColorGreen))
	}

	a.Value = 42
	a.Special = SpecialRowClear
	p.Release(a)

	if p.IdleCount(ColorGreen) != 1 {
		t.Errorf("IdleCount = %d, want 1", p.IdleCount(ColorGreen))
	}

	// Reacquire returns the reset instance.
	b := p.Acquire(ColorGreen)
	if b != a {
		t.Error("Acquire() did not reuse the idle instance")
	}
	if b.Value != 1 || b.Special != SpecialNone {
		t.Errorf("reused instance not reset: value=%d special=%v", b.Value, b.Special)
	}
}

func TestPoolExhaustionDegradesToUnpooled(t *testing.T) {
	p := newTestPool(2)

	first := p.Acquire(ColorGreen)
	second := p.Acquire(ColorGreen)
	third := p.Acquire(ColorGreen)

	if first == nil || second == nil {
		t.Fatal("pooled acquires failed")
	}
	if third == nil {
		t.Fatal("Acquire() beyond capacity returned nil, want unpooled instance")
	}
	if third.pooled {
		t.Error("over-capacity instance should be unpooled")
	}
	if !third.IsTile() || third.Color != ColorGreen {
		t.Errorf("unpooled instance = %+v, want usable green tile", third)
	}

	// Releasing the unpooled temporary must not grow the idle list.
	p.Release(third)
	if p.IdleCount(ColorGreen) != 0 {
		t.Errorf("IdleCount after unpooled release = %d, want 0", p.IdleCount(ColorGreen))
	}
}

func TestPoolDoubleReleaseIgnored(t *testing.T) {
	p := newTestPool(4)
	a := p.Acquire(ColorBlue)
	p.Release(a)
	p.Release(a)

	if p.IdleCount(ColorBlue) != 1 {
		t.Errorf("IdleCount after double release = %d, want 1", p.IdleCount(ColorBlue))
	}
}

func TestPoolColorsIndependent(t *testing.T) {
	p := newTestPool(1)

	g := p.Acquire(ColorGreen)
	r := p.Acquire(ColorRed)

	if !g.pooled || !r.pooled {
		t.Error("each color should have its own capacity budget")
	}
}
