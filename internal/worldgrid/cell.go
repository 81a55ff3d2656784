package worldgrid

import "github.com/HectorHW/aquarium/internal/vm"

// Cell is the contents of a single grid position: exactly one of
// EmptyCell, AliveCell, or DeadCell. Go has no sum types, so the closed
// set is expressed as an interface with an unexported marker method —
// nothing outside this package can add a fourth variant.
type Cell interface {
	isCell()
}

// EmptyCell occupies a position with nothing in it.
type EmptyCell struct{}

// AliveCell occupies a position with a living organism.
type AliveCell struct {
	Organism *vm.Organism
}

// DeadCell occupies a position with unconsumed remains: the energy and
// minerals left behind by a starved organism, available to be eaten. An
// organism killed by predation leaves an EmptyCell instead.
type DeadCell struct {
	Energy   int
	Minerals int
}

func (EmptyCell) isCell() {}
func (AliveCell) isCell() {}
func (DeadCell) isCell()  {}
