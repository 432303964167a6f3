package board

// DamageResult reports the effect of damaging an obstacle.
type DamageResult struct {
	Destroyed bool
	Remaining int
}

// Obstacles tracks static occupants with a durability counter. It is an
// independent table layered on the grid store: the store holds the
// obstacle occupants so cells read as occupied, while this table answers
// the pure IsObstacleAt query and owns the damage lifecycle.
type Obstacles struct {
	store   *Store
	byCoord map[Coord]ID
	newID   func() ID
}

// NewObstacles creates an empty obstacle table over the given store.
func NewObstacles(store *Store, newID func() ID) *Obstacles {
	return &Obstacles{
		store:   store,
		byCoord: make(map[Coord]ID),
		newID:   newID,
	}
}

// PlaceAt creates an obstacle with the given durability at a coordinate.
// Fails with ErrCellOccupied if the grid store already holds an occupant
// there.
func (t *Obstacles) PlaceAt(c Coord, durability int) (*Occupant, error) {
	if durability < 1 {
		durability = 1
	}
	o := &Occupant{
		ID:         t.newID(),
		Kind:       KindObstacle,
		Durability: durability,
	}
	if err := t.store.Set(c, o); err != nil {
		return nil, err
	}
	t.byCoord[c] = o.ID
	return o, nil
}

// Damage applies the given amount of damage to the obstacle at a
// coordinate. On destruction the obstacle is removed from both the table
// and the grid store so the caller can award points and spawn effects.
// Fails with ErrCellEmpty if no obstacle is tracked there.
func (t *Obstacles) Damage(c Coord, amount int) (DamageResult, error) {
	id, ok := t.byCoord[c]
	if !ok {
		return DamageResult{}, cellError(ErrCellEmpty, c)
	}
	o, ok := t.store.Occupant(id)
	if !ok {
		// Store lost the entry; heal the table and report empty.
		delete(t.byCoord, c)
		return DamageResult{}, cellError(ErrCellEmpty, c)
	}

	o.Durability -= amount
	if o.Durability > 0 {
		return DamageResult{Remaining: o.Durability}, nil
	}

	delete(t.byCoord, c)
	t.store.removeID(id)
	return DamageResult{Destroyed: true}, nil
}

// IsObstacleAt reports whether an obstacle occupies the coordinate.
// Pure query used by the resolver and generator.
func (t *Obstacles) IsObstacleAt(c Coord) bool {
	_, ok := t.byCoord[c]
	return ok
}

// Count returns the number of tracked obstacles.
func (t *Obstacles) Count() int {
	return len(t.byCoord)
}

// forget drops a table entry without touching the store. Used by the
// validator when the store no longer tracks the obstacle.
func (t *Obstacles) forget(id ID) {
	for c, tracked := range t.byCoord {
		if tracked == id {
			delete(t.byCoord, c)
			return
		}
	}
}
