package board

import "sort"

// Store is the authoritative coordinate↔occupant bijection: at most one
// occupant per cell, exactly one cell per tracked occupant. All mutation
// flows through the resolver, cascade, generator, and validator; no other
// component writes to the store directly.
type Store struct {
	cols int
	rows int

	byCoord   map[Coord]ID
	byID      map[ID]Coord
	occupants map[ID]*Occupant
}

// NewStore creates an empty store for a cols×rows board.
func NewStore(cols, rows int) *Store {
	return &Store{
		cols:      cols,
		rows:      rows,
		byCoord:   make(map[Coord]ID),
		byID:      make(map[ID]Coord),
		occupants: make(map[ID]*Occupant),
	}
}

// Columns returns the board width in cells.
func (s *Store) Columns() int {
	return s.cols
}

// Rows returns the board height in cells.
func (s *Store) Rows() int {
	return s.rows
}

// InBounds returns true if the coordinate lies on the board.
func (s *Store) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < s.cols && c.Y >= 0 && c.Y < s.rows
}

// Set places an occupant at the given coordinate.
// Setting the occupant at the coordinate it already holds is a no-op.
// Fails with ErrCellOccupied if the cell is mapped to a different
// occupant, or if the occupant is already tracked at another cell.
func (s *Store) Set(c Coord, o *Occupant) error {
	if !s.InBounds(c) {
		return cellError(ErrOutOfBounds, c)
	}
	if existing, ok := s.byCoord[c]; ok {
		if existing == o.ID {
			return nil
		}
		return cellError(ErrCellOccupied, c)
	}
	if prev, ok := s.byID[o.ID]; ok {
		return cellError(ErrCellOccupied, prev)
	}

	s.byCoord[c] = o.ID
	s.byID[o.ID] = c
	s.occupants[o.ID] = o
	return nil
}

// Remove clears the given coordinate and returns the occupant that held it.
// Fails with ErrCellEmpty if the cell is unmapped.
func (s *Store) Remove(c Coord) (*Occupant, error) {
	id, ok := s.byCoord[c]
	if !ok {
		return nil, cellError(ErrCellEmpty, c)
	}
	o := s.occupants[id]
	delete(s.byCoord, c)
	delete(s.byID, id)
	delete(s.occupants, id)
	return o, nil
}

// removeID drops an occupant by identity regardless of its coordinate.
// Used by the validator when repairing drift.
func (s *Store) removeID(id ID) (*Occupant, bool) {
	c, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	o := s.occupants[id]
	delete(s.byCoord, c)
	delete(s.byID, id)
	delete(s.occupants, id)
	return o, true
}

// Get returns the occupant at the given coordinate, if any.
func (s *Store) Get(c Coord) (*Occupant, bool) {
	id, ok := s.byCoord[c]
	if !ok {
		return nil, false
	}
	return s.occupants[id], true
}

// Locate returns the coordinate of the occupant with the given identity.
func (s *Store) Locate(id ID) (Coord, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Occupant returns the tracked occupant with the given identity.
func (s *Store) Occupant(id ID) (*Occupant, bool) {
	o, ok := s.occupants[id]
	return o, ok
}

// EmptyCells returns all unmapped coordinates, ordered by row then column.
// The slice is recomputed on every call; the set changes between calls.
func (s *Store) EmptyCells() []Coord {
	cells := make([]Coord, 0, s.cols*s.rows-len(s.byCoord))
	for y := 0; y < s.rows; y++ {
		for x := 0; x < s.cols; x++ {
			c := C(x, y)
			if _, ok := s.byCoord[c]; !ok {
				cells = append(cells, c)
			}
		}
	}
	return cells
}

// Count returns the number of tracked occupants.
func (s *Store) Count() int {
	return len(s.byCoord)
}

// TileCount returns the number of tracked movable tiles.
func (s *Store) TileCount() int {
	n := 0
	for _, o := range s.occupants {
		if o.IsTile() {
			n++
		}
	}
	return n
}

// IDs returns the identities of all tracked occupants in ascending order.
func (s *Store) IDs() []ID {
	ids := make([]ID, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// checkBijection verifies that the forward and reverse maps agree.
// Returns the first divergent identity found, if any. Test helper.
func (s *Store) checkBijection() (ID, bool) {
	if len(s.byCoord) != len(s.byID) || len(s.byID) != len(s.occupants) {
		return 0, false
	}
	for c, id := range s.byCoord {
		back, ok := s.byID[id]
		if !ok || back != c {
			return id, false
		}
		if _, ok := s.occupants[id]; !ok {
			return id, false
		}
	}
	return 0, true
}
