package board

// CascadeResult describes one chain-merge cascade: the surviving pivot,
// the coordinates absorbed into it, the pivot's final value, and the
// special promotion applied (SpecialNone if the group was too small).
type CascadeResult struct {
	Pivot    Coord
	Color    Color
	Absorbed []Coord
	Value    int
	Promoted Special
}

// runCascade performs the single-pass flood-fill merge around a pivot
// that just received a direct merge from origin. It breadth-first
// searches the 4-connected neighborhood for tiles of the pivot's color,
// absorbs their values into the pivot, removes them from the store, and
// returns them to the pool. The vacated origin cell counts as a group
// member: it bridges the hole the mover left and its tile is part of
// the merged total for promotion purposes, even though its value was
// already folded into the pivot by the direct merge. The search visits
// each cell at most once and is never restarted after the first pass,
// which bounds merge latency. Callers with no direct-merge origin pass
// the pivot itself.
func runCascade(store *Store, pool *Pool, pivot, origin Coord) CascadeResult {
	pivotTile, ok := store.Get(pivot)
	if !ok || !pivotTile.IsTile() {
		return CascadeResult{Pivot: pivot}
	}

	result := CascadeResult{
		Pivot: pivot,
		Color: pivotTile.Color,
	}

	visited := map[Coord]bool{pivot: true}
	frontier := []Coord{pivot}
	seeded := 0
	if origin != pivot && store.InBounds(origin) {
		visited[origin] = true
		frontier = append(frontier, origin)
		result.Absorbed = append(result.Absorbed, origin)
		seeded = 1
	}

	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		for _, d := range AllDirs() {
			next := cur.Step(d)
			if visited[next] || !store.InBounds(next) {
				continue
			}
			visited[next] = true

			o, ok := store.Get(next)
			if !ok || !o.IsTile() || o.Color != result.Color {
				continue
			}

			result.Absorbed = append(result.Absorbed, next)
			frontier = append(frontier, next)
		}
	}

	// Aggregate absorbed values into the pivot and recycle the tiles.
	// The seeded origin is skipped: the direct merge already consumed it.
	for _, c := range result.Absorbed[seeded:] {
		absorbed, err := store.Remove(c)
		if err != nil {
			continue
		}
		pivotTile.Value += absorbed.Value
		pool.Release(absorbed)
	}

	// Promote on 3+ total merged tiles. Never downgrade an existing tag.
	if len(result.Absorbed) >= 2 && pivotTile.Special == SpecialNone {
		pivotTile.Special = classifyPattern(pivot, result.Absorbed)
		result.Promoted = pivotTile.Special
	}

	result.Value = pivotTile.Value
	return result
}

// classifyPattern maps an absorbed-coordinate set to a special kind.
// Total and deterministic: the same set always yields the same kind.
func classifyPattern(pivot Coord, absorbed []Coord) Special {
	sameRow := true
	sameCol := true
	for _, c := range absorbed {
		if c.Y != pivot.Y {
			sameRow = false
		}
		if c.X != pivot.X {
			sameCol = false
		}
	}

	switch {
	case sameRow:
		return SpecialRowClear
	case sameCol:
		return SpecialColumnClear
	case len(absorbed) >= 4:
		return SpecialAreaClear
	default:
		return SpecialValueBoost
	}
}

// SpecialTargets reports the cells a special tile at the given pivot
// would affect when activated. The core only reports; activation belongs
// to the external effects layer.
func SpecialTargets(store *Store, pivot Coord, kind Special) []Coord {
	switch kind {
	case SpecialRowClear:
		cells := make([]Coord, 0, store.Columns())
		for x := 0; x < store.Columns(); x++ {
			cells = append(cells, C(x, pivot.Y))
		}
		return cells

	case SpecialColumnClear:
		cells := make([]Coord, 0, store.Rows())
		for y := 0; y < store.Rows(); y++ {
			cells = append(cells, C(pivot.X, y))
		}
		return cells

	case SpecialAreaClear:
		// 3x3 neighborhood clipped to the board.
		var cells []Coord
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				c := pivot.Add(dx, dy)
				if store.InBounds(c) {
					cells = append(cells, c)
				}
			}
		}
		return cells

	case SpecialColorClear:
		pivotTile, ok := store.Get(pivot)
		if !ok {
			return nil
		}
		var cells []Coord
		for y := 0; y < store.Rows(); y++ {
			for x := 0; x < store.Columns(); x++ {
				c := C(x, y)
				if o, ok := store.Get(c); ok && o.IsTile() && o.Color == pivotTile.Color {
					cells = append(cells, c)
				}
			}
		}
		return cells

	case SpecialValueBoost:
		return []Coord{pivot}

	default:
		return nil
	}
}
