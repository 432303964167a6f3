package board

import (
	"math"

	"github.com/charmbracelet/log"
)

// LiveOccupant is one entry from the external spatial query source: an
// occupant identity and its approximate world position as reported by
// the live/visual layer.
type LiveOccupant struct {
	ID ID
	X  float64
	Y  float64
}

// LiveSource enumerates live occupant instances and their world
// positions. Supplied by the animation layer; consumed only by the
// validator.
type LiveSource interface {
	EnumerateLive() []LiveOccupant
}

// RepairReport is the diagnostic result of a reconcile pass.
type RepairReport struct {
	Fixed int
}

// Validator reconciles the logical grid store against the live occupant
// set. The live signal is treated as ground truth because the logical
// cache is what drifts under asynchronous animation completion ordering.
type Validator struct {
	store     *Store
	pool      *Pool
	obstacles *Obstacles
	cellSize  float64
	logger    *log.Logger
}

// NewValidator creates a validator. cellSize converts reported world
// positions back to cell coordinates.
func NewValidator(store *Store, pool *Pool, obstacles *Obstacles, cellSize float64, logger *log.Logger) *Validator {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Validator{
		store:     store,
		pool:      pool,
		obstacles: obstacles,
		cellSize:  cellSize,
		logger:    logger,
	}
}

// claimedCoord converts a world position to the cell it claims, clamped
// onto the board.
func (v *Validator) claimedCoord(lo LiveOccupant) Coord {
	x := int(math.Round(lo.X / v.cellSize))
	y := int(math.Round(lo.Y / v.cellSize))
	if x < 0 {
		x = 0
	}
	if x >= v.store.Columns() {
		x = v.store.Columns() - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= v.store.Rows() {
		y = v.store.Rows() - 1
	}
	return C(x, y)
}

// Reconcile repairs divergence between the grid store and the live
// enumeration. Rules, applied deterministically in enumeration order:
//
//   - a store entry whose identity is not live is dropped;
//   - when two live instances claim the same cell, the higher value
//     wins; on a tie the first-enumerated instance wins, and the loser
//     is removed from the store and returned to the pool;
//   - when a live instance's claimed cell differs from the store's
//     record, the store is overwritten to match the live claim.
//
// Reconcile never fails; the report's Fixed count is diagnostics only.
// Calling it twice with no intervening mutation fixes nothing the
// second time.
func (v *Validator) Reconcile(live []LiveOccupant) RepairReport {
	report := RepairReport{}

	liveSet := make(map[ID]bool, len(live))
	for _, lo := range live {
		liveSet[lo.ID] = true
	}

	// Drop store entries that are no longer live.
	for _, id := range v.store.IDs() {
		if liveSet[id] {
			continue
		}
		if o, ok := v.store.removeID(id); ok {
			if o.IsObstacle() {
				v.obstacles.forget(id)
			} else {
				v.pool.Release(o)
			}
			report.Fixed++
		}
	}

	// Resolve duplicate cell claims among live, store-known occupants.
	type claim struct {
		id ID
		o  *Occupant
	}
	winners := make(map[Coord]claim)
	order := make([]Coord, 0, len(live))

	for _, lo := range live {
		o, ok := v.store.Occupant(lo.ID)
		if !ok {
			// Live instance the store never tracked; nothing to repair
			// with, the generator will register it on its next pass.
			continue
		}
		c := v.claimedCoord(lo)
		cur, contested := winners[c]
		if !contested {
			winners[c] = claim{id: lo.ID, o: o}
			order = append(order, c)
			continue
		}
		// Higher value wins; first-enumerated wins ties.
		if o.Value > cur.o.Value {
			v.evict(cur.id, cur.o)
			winners[c] = claim{id: lo.ID, o: o}
		} else {
			v.evict(lo.ID, o)
		}
		report.Fixed++
	}

	winnerIDs := make(map[ID]bool, len(winners))
	for _, w := range winners {
		winnerIDs[w.id] = true
	}

	// Overwrite the store wherever the live claim disagrees.
	for _, c := range order {
		w, ok := winners[c]
		if !ok {
			continue
		}
		recorded, tracked := v.store.Locate(w.id)
		if tracked && recorded == c {
			continue
		}
		v.store.removeID(w.id)
		if holder, taken := v.store.Get(c); taken {
			// A stale occupant holds the claimed cell; the live claim
			// wins. Another winner displaced here (e.g. a swapped pair)
			// is only unmapped, its own claim re-places it below.
			if _, err := v.store.Remove(c); err == nil && !winnerIDs[holder.ID] {
				if holder.IsObstacle() {
					v.obstacles.forget(holder.ID)
				} else {
					v.pool.Release(holder)
				}
			}
		}
		if err := v.store.Set(c, w.o); err == nil {
			report.Fixed++
		}
	}

	if report.Fixed > 0 && v.logger != nil {
		v.logger.Info("reconcile repaired grid state", "fixed", report.Fixed)
	}
	return report
}

// evict removes a duplicate-claim loser from the store and recycles it.
func (v *Validator) evict(id ID, o *Occupant) {
	v.store.removeID(id)
	if o.IsObstacle() {
		v.obstacles.forget(id)
	} else {
		v.pool.Release(o)
	}
}
