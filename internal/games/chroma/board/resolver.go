package board

// OutcomeKind enumerates the result of a move request. All "blocked"
// kinds are expected outcomes of valid play, not errors.
type OutcomeKind uint8

const (
	OutcomeRelocated OutcomeKind = iota
	OutcomeMerged
	OutcomeBlocked
	OutcomeBlockedByMismatch
	OutcomeBlockedByObstacle
)

// String returns the string representation of an outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRelocated:
		return "relocated"
	case OutcomeMerged:
		return "merged"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeBlockedByMismatch:
		return "blocked_by_mismatch"
	case OutcomeBlockedByObstacle:
		return "blocked_by_obstacle"
	default:
		return "unknown"
	}
}

// MoveOutcome describes the grid transition resolved for a move request.
// The logical state is fully committed before the outcome is returned;
// animation happens afterwards and never gates correctness.
type MoveOutcome struct {
	Kind       OutcomeKind
	From       Coord
	To         Coord
	Redirected bool // relocation went to a perpendicular cell

	// Cascade is set on OutcomeMerged.
	Cascade *CascadeResult
	// Damage is set on OutcomeBlockedByObstacle.
	Damage *DamageResult
}

// Resolver computes grid transitions for player-driven move requests.
type Resolver struct {
	store     *Store
	obstacles *Obstacles
	pool      *Pool
}

// NewResolver creates a resolver over the given store, obstacle table,
// and pool.
func NewResolver(store *Store, obstacles *Obstacles, pool *Pool) *Resolver {
	return &Resolver{store: store, obstacles: obstacles, pool: pool}
}

// Resolve moves the occupant with the given identity one cell in the
// given direction and returns the resulting transition. Fails with
// ErrUntrackedOccupant if the identity is not in the grid store; that
// indicates a prior consistency bug and the caller should reconcile.
func (r *Resolver) Resolve(id ID, d Dir) (MoveOutcome, error) {
	from, ok := r.store.Locate(id)
	if !ok {
		return MoveOutcome{}, ErrUntrackedOccupant
	}
	mover, _ := r.store.Occupant(id)
	if !mover.IsTile() {
		// Obstacles never move.
		return MoveOutcome{Kind: OutcomeBlocked, From: from, To: from}, nil
	}

	target := from.Step(d)
	if !r.store.InBounds(target) {
		return MoveOutcome{Kind: OutcomeBlocked, From: from, To: from}, nil
	}

	occupant, occupied := r.store.Get(target)

	// Empty target: plain relocation.
	if !occupied {
		if err := r.relocate(from, target); err != nil {
			return MoveOutcome{}, err
		}
		return MoveOutcome{Kind: OutcomeRelocated, From: from, To: target}, nil
	}

	// Obstacle: the collision chips one unit of durability.
	if occupant.IsObstacle() {
		res, err := r.obstacles.Damage(target, 1)
		if err != nil {
			return MoveOutcome{}, err
		}
		return MoveOutcome{
			Kind:   OutcomeBlockedByObstacle,
			From:   from,
			To:     target,
			Damage: &res,
		}, nil
	}

	// Matching tile (or wildcard on either side): merge into the target.
	if mover.Matches(occupant) {
		if _, err := r.store.Remove(from); err != nil {
			return MoveOutcome{}, err
		}
		occupant.Value += mover.Value
		r.pool.Release(mover)

		cascade := runCascade(r.store, r.pool, target, from)
		return MoveOutcome{
			Kind:    OutcomeMerged,
			From:    from,
			To:      target,
			Cascade: &cascade,
		}, nil
	}

	// Mismatched tile: try one perpendicular sidestep to keep input
	// responsive on a crowded board. The opposite direction is never
	// tried.
	for _, alt := range d.Perpendiculars() {
		side := from.Step(alt)
		if !r.store.InBounds(side) {
			continue
		}
		if _, taken := r.store.Get(side); taken {
			continue
		}
		if err := r.relocate(from, side); err != nil {
			return MoveOutcome{}, err
		}
		return MoveOutcome{
			Kind:       OutcomeRelocated,
			From:       from,
			To:         side,
			Redirected: true,
		}, nil
	}

	return MoveOutcome{Kind: OutcomeBlockedByMismatch, From: from, To: target}, nil
}

// relocate moves an occupant between cells. Both halves succeed or the
// store is left untouched, so no partial bijection state is observable.
func (r *Resolver) relocate(from, to Coord) error {
	o, err := r.store.Remove(from)
	if err != nil {
		return err
	}
	if err := r.store.Set(to, o); err != nil {
		// Put it back; the target check above makes this unreachable
		// in single-threaded use.
		_ = r.store.Set(from, o)
		return err
	}
	return nil
}
