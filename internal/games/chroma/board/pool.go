package board

import "github.com/charmbracelet/log"

// Pool manages reusable tile instances per color to reduce allocation
// churn during play. Each color's pool grows up to maxPerColor; beyond
// that, Acquire degrades to a one-off unpooled allocation. Degradation
// is logged, never an error.
type Pool struct {
	maxPerColor int
	idle        map[Color][]*Occupant
	active      map[Color]int
	newID       func() ID
	logger      *log.Logger
}

// NewPool creates a pool with the given per-color capacity.
// newID supplies fresh identities for created instances.
func NewPool(maxPerColor int, newID func() ID, logger *log.Logger) *Pool {
	if maxPerColor <= 0 {
		maxPerColor = 32
	}
	return &Pool{
		maxPerColor: maxPerColor,
		idle:        make(map[Color][]*Occupant),
		active:      make(map[Color]int),
		newID:       newID,
		logger:      logger,
	}
}

// Acquire leases a tile of the given color. It prefers an idle pooled
// instance, creates a new pooled instance while under capacity, and
// falls back to an unpooled temporary above it.
func (p *Pool) Acquire(c Color) *Occupant {
	if n := len(p.idle[c]); n > 0 {
		o := p.idle[c][n-1]
		p.idle[c] = p.idle[c][:n-1]
		o.leased = true
		p.active[c]++
		return o
	}

	if p.active[c]+len(p.idle[c]) < p.maxPerColor {
		p.active[c]++
		return &Occupant{
			ID:     p.newID(),
			Kind:   KindTile,
			Color:  c,
			Value:  1,
			pooled: true,
			leased: true,
		}
	}

	// Degraded service: capacity exceeded, allocate outside the pool.
	if p.logger != nil {
		p.logger.Warn("pool capacity exceeded, allocating unpooled",
			"color", c.String(),
			"max", p.maxPerColor,
		)
	}
	return &Occupant{
		ID:     p.newID(),
		Kind:   KindTile,
		Color:  c,
		Value:  1,
		leased: true,
	}
}

// Release resets a tile's transient attributes and returns it to the
// idle list. Unpooled temporaries are dropped for the GC. Releasing an
// instance that is not leased is ignored.
func (p *Pool) Release(o *Occupant) {
	if o == nil || !o.leased || !o.IsTile() {
		return
	}
	o.leased = false
	o.Value = 1
	o.Special = SpecialNone

	if !o.pooled {
		return
	}
	p.active[o.Color]--
	p.idle[o.Color] = append(p.idle[o.Color], o)
}

// ActiveCount returns the number of leased pooled instances for a color.
func (p *Pool) ActiveCount(c Color) int {
	return p.active[c]
}

// IdleCount returns the number of idle pooled instances for a color.
func (p *Pool) IdleCount(c Color) int {
	return len(p.idle[c])
}
