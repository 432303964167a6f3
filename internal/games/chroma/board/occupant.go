// Package board implements the authoritative grid state engine for the
// chromamerge puzzle: the coordinate↔occupant bijection, move/merge
// resolution, flood-fill cascades, obstacle durability, occupant pooling,
// and self-healing reconciliation against live occupant positions.
// The package is UI-agnostic and deterministic for a fixed seed.
package board

import "strings"

// ID uniquely identifies a live occupant for the lifetime of a session.
// The zero value is never assigned.
type ID uint64

// Kind distinguishes the two occupant variants.
type Kind uint8

const (
	KindTile Kind = iota
	KindObstacle
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindTile:
		return "tile"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Color represents a tile color category.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	default:
		return "unknown"
	}
}

// Char returns a single character representation of the color for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	default:
		return '?'
	}
}

// ParseColor converts a string to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	default:
		return ColorRed, false
	}
}

// AllColors returns a slice of all valid colors.
func AllColors() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue, ColorYellow, ColorPurple}
}

// Special marks a tile promoted by a chain-merge cascade.
// The core only tags tiles and reports affected cells; activating the
// effect is the job of the external effects layer.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialRowClear
	SpecialColumnClear
	SpecialAreaClear
	SpecialColorClear
	SpecialValueBoost
	SpecialWildcard
)

// String returns the string representation of a special kind.
func (s Special) String() string {
	switch s {
	case SpecialNone:
		return "none"
	case SpecialRowClear:
		return "row_clear"
	case SpecialColumnClear:
		return "column_clear"
	case SpecialAreaClear:
		return "area_clear"
	case SpecialColorClear:
		return "color_clear"
	case SpecialValueBoost:
		return "value_boost"
	case SpecialWildcard:
		return "wildcard"
	default:
		return "unknown"
	}
}

// Occupant is a single board occupant: a movable colored tile or a
// static obstacle. Tiles carry a positive value accumulator and an
// optional special tag; obstacles carry remaining durability.
type Occupant struct {
	ID         ID
	Kind       Kind
	Color      Color
	Value      int
	Special    Special
	Durability int

	pooled bool // created inside the pool's capacity budget
	leased bool // currently handed out / placed on the board
}

// IsTile reports whether the occupant is a movable tile.
func (o *Occupant) IsTile() bool {
	return o.Kind == KindTile
}

// IsObstacle reports whether the occupant is a static obstacle.
func (o *Occupant) IsObstacle() bool {
	return o.Kind == KindObstacle
}

// Matches reports whether two tiles may merge: same color, or either
// side carries the wildcard special.
func (o *Occupant) Matches(other *Occupant) bool {
	if !o.IsTile() || !other.IsTile() {
		return false
	}
	if o.Special == SpecialWildcard || other.Special == SpecialWildcard {
		return true
	}
	return o.Color == other.Color
}
