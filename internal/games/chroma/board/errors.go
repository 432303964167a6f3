package board

import (
	"errors"
	"fmt"
)

// Sentinel errors for invariant violations and recoverable failures.
// "Blocked" move results are not errors; they are MoveOutcome values.
var (
	// ErrOutOfBounds reports a coordinate outside the configured board.
	ErrOutOfBounds = errors.New("board: coordinate out of bounds")

	// ErrCellOccupied reports a Set or PlaceAt targeting a cell already
	// mapped to a different occupant. Indicates a bug upstream; callers
	// should reconcile and retry once.
	ErrCellOccupied = errors.New("board: cell occupied")

	// ErrCellEmpty reports a Remove or Damage targeting an empty cell.
	ErrCellEmpty = errors.New("board: cell empty")

	// ErrUntrackedOccupant reports a move request for an identity the
	// grid store does not track. Indicates a missed reconcile pass.
	ErrUntrackedOccupant = errors.New("board: occupant not tracked")

	// ErrNoEmptyCells reports a spawn attempt on a full board.
	// Recoverable: the caller may simply skip this tick.
	ErrNoEmptyCells = errors.New("board: no empty cells")
)

// cellError wraps a sentinel with the coordinate it applies to.
func cellError(sentinel error, c Coord) error {
	return fmt.Errorf("%w at %s", sentinel, c)
}
