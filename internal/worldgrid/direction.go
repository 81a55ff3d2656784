// Package worldgrid implements the toroidal/bounded grid of cells that
// organisms inhabit, and the neighbour lookups (LookRelative) that
// internal/scheduler builds the VM's read-only sensor view on.
package worldgrid

import "fmt"

// Direction is one of the four cardinal directions, forming a 4-element
// cyclic group. Low-level organism registers select a Direction via
// Direction(r2 % 4); the ordering below (Up, Right, Down, Left) is the
// canonical one spec.md §3 lists for that register.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left

	numDirections
)

var directionNames = [numDirections]string{"Up", "Right", "Down", "Left"}

func (d Direction) String() string {
	if d < numDirections {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", byte(d))
}

// FromRegister maps a register value to a Direction via the low two bits,
// per spec.md §4.1 (e.g. MoveRelative: "dir = r2 mod 4").
func FromRegister(r byte) Direction {
	return Direction(r % 4)
}

// NextClockwise rotates d one step clockwise: Up->Right->Down->Left->Up.
func (d Direction) NextClockwise() Direction {
	return (d + 1) % numDirections
}

// Inverse returns the opposite direction, used by the resolver to record
// an attacker's direction from the victim's point of view (r7).
func (d Direction) Inverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Shift returns the (drow, dcol) unit displacement for d, per spec.md §4.3.
func (d Direction) Shift() (drow, dcol int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	default: // Right
		return 0, 1
	}
}
