package worldgrid

import (
	"fmt"
	"math/rand"

	"github.com/HectorHW/aquarium/internal/envconfig"
	"github.com/HectorHW/aquarium/internal/vm"
)

// NotEnoughRoomError is returned by PopulateGreen/PopulateRandom when the
// grid doesn't have enough empty cells to satisfy the request.
type NotEnoughRoomError struct {
	Shortfall int
}

func (e *NotEnoughRoomError) Error() string {
	return fmt.Sprintf("not enough room: short by %d", e.Shortfall)
}

// World is the 2D field of cells organisms inhabit, plus the per-tick
// bookkeeping (Updates/Iteration) the scheduler uses to avoid processing a
// cell twice in the same tick.
type World struct {
	Field  [][]Cell
	Updates [][]uint64

	Iteration    uint64
	MeasureSteps uint64

	Config envconfig.Config
}

// New builds an empty World of the size given by cfg.
func New(cfg envconfig.Config) *World {
	field := make([][]Cell, cfg.Height)
	updates := make([][]uint64, cfg.Height)
	for i := range field {
		field[i] = make([]Cell, cfg.Width)
		updates[i] = make([]uint64, cfg.Width)
		for j := range field[i] {
			field[i][j] = EmptyCell{}
		}
	}
	// Iteration starts at 1, not 0: Updates is zero-valued by make, so a
	// first tick at Iteration 0 would make every cell's skip-guard
	// (Updates[i][j] == Iteration) true before anything ran, skipping the
	// whole grid. Matches original_source/src/cells/world.rs's World::new,
	// which starts iteration at 1 for the same reason.
	return &World{Field: field, Updates: updates, Config: cfg, Iteration: 1}
}

// At returns the cell at (i,j). Callers must treat the result as
// read-only; mutate through the scheduler package instead.
func (w *World) At(i, j int) Cell {
	return w.Field[i][j]
}

// RelativeShift computes the neighbour of (i,j) in direction dir, per
// spec.md §4.3: vertical movement off the top or bottom edge has no
// destination (hard wall), horizontal movement always wraps (torus).
func (w *World) RelativeShift(i, j int, dir Direction) (ni, nj int, ok bool) {
	dr, dc := dir.Shift()
	ni = i + dr
	if ni < 0 || ni >= len(w.Field) {
		return 0, 0, false
	}
	height := len(w.Field)
	width := len(w.Field[0])
	ni = ((ni % height) + height) % height
	nj = (((j+dc)%width)+width) % width
	return ni, nj, true
}

// LookRelative returns the neighbour of (i,j) in direction dir, along with
// its coordinates. ok is false at the vertical wall.
func (w *World) LookRelative(i, j int, dir Direction) (cell Cell, ni, nj int, ok bool) {
	ni, nj, ok = w.RelativeShift(i, j, dir)
	if !ok {
		return EmptyCell{}, 0, 0, false
	}
	return w.Field[ni][nj], ni, nj, true
}

// Light returns the energy Sythesize credits at row i.
func (w *World) Light(i int) int {
	return w.Config.Light(i, len(w.Field))
}

// Minerals returns the mineral influx credited at row i each tick.
func (w *World) Minerals(i int) int {
	return w.Config.Minerals(i, len(w.Field))
}

// PopulateGreen fills up to n empty cells with chlorophyll-only organisms
// (program = 256 × Sythesize), chosen uniformly at random among empty
// positions. Returns a *NotEnoughRoomError if fewer than n empty cells
// exist; cells that were filled remain filled.
func (w *World) PopulateGreen(n int) error {
	return w.populate(n, func() *vm.Organism { return vm.NewGreen(w.Config.StartEnergy) })
}

// PopulateRandom is PopulateGreen but with uniformly random programs.
func (w *World) PopulateRandom(n int) error {
	return w.populate(n, func() *vm.Organism { return vm.NewRandom(w.Config.StartEnergy) })
}

func (w *World) populate(n int, factory func() *vm.Organism) error {
	empties := w.emptyPositions()
	rand.Shuffle(len(empties), func(i, j int) { empties[i], empties[j] = empties[j], empties[i] })

	placed := 0
	for placed < n && placed < len(empties) {
		p := empties[placed]
		w.Field[p[0]][p[1]] = AliveCell{Organism: factory()}
		placed++
	}
	if placed < n {
		return &NotEnoughRoomError{Shortfall: n - placed}
	}
	return nil
}

func (w *World) emptyPositions() [][2]int {
	var out [][2]int
	for i := range w.Field {
		for j := range w.Field[i] {
			if _, ok := w.Field[i][j].(EmptyCell); ok {
				out = append(out, [2]int{i, j})
			}
		}
	}
	return out
}

// RandomEmptyNeighbor picks a uniformly random empty neighbour of (i,j)
// among the (at most 4) directions, for the forced-split resolver step.
func (w *World) RandomEmptyNeighbor(i, j int) (ni, nj int, ok bool) {
	dirs := []Direction{Up, Right, Down, Left}
	rand.Shuffle(len(dirs), func(a, b int) { dirs[a], dirs[b] = dirs[b], dirs[a] })
	for _, d := range dirs {
		if cell, ci, cj, reachable := w.LookRelative(i, j, d); reachable {
			if _, empty := cell.(EmptyCell); empty {
				return ci, cj, true
			}
		}
	}
	return 0, 0, false
}
