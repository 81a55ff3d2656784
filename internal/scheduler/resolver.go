package scheduler

import (
	"math/rand"

	"github.com/HectorHW/aquarium/internal/opcode"
	"github.com/HectorHW/aquarium/internal/vm"
	"github.com/HectorHW/aquarium/internal/worldgrid"
)

// predationRoll draws the uniform(0,1) sample TryEat compares its survival
// probability against. A package-level indirection so tests can pin the
// outcome of a predation attempt without controlling the global PRNG seed.
var predationRoll = rand.Float64

// tryMove implements spec.md §4.4's TryMove: if the neighbour is Empty,
// the bot is placed there and the destination is stamped so the outer
// scan won't process it again this tick. Returns the bot's position
// after the attempt (unchanged if the move failed).
func (s *Scheduler) tryMove(i, j int, dirCode byte) (int, int) {
	w := s.World
	dir := worldgrid.Direction(dirCode % 4)
	cell, ni, nj, ok := w.LookRelative(i, j, dir)
	if !ok {
		return i, j
	}
	if _, empty := cell.(worldgrid.EmptyCell); !empty {
		return i, j
	}
	w.Updates[ni][nj] = w.Iteration
	return ni, nj
}

// tryEat implements spec.md §4.4's TryEat. bot is mutated in place; the
// target cell (if any) is mutated directly through the world.
func (s *Scheduler) tryEat(bot *vm.Organism, i, j int, dirCode byte) {
	w := s.World
	cfg := w.Config
	dir := worldgrid.Direction(dirCode % 4)
	cell, ni, nj, ok := w.LookRelative(i, j, dir)
	if !ok {
		return
	}

	switch target := cell.(type) {
	case worldgrid.AliveCell:
		if bot.Energy <= cfg.AttackCost {
			return
		}
		p := float64(bot.Energy) / float64(bot.Energy+target.Organism.Energy+1)
		bot.Energy -= cfg.AttackCost
		if predationRoll() < p {
			gain := target.Organism.Energy - cfg.DeadEnergy
			if gain < 0 {
				gain = 0
			}
			bot.Energy += gain / 2
			w.Field[ni][nj] = worldgrid.EmptyCell{}
			s.recycle(target.Organism)
		} else {
			target.Organism.Registers[vm.RegLastAttacker] = byte(dir.Inverse())
		}

	case worldgrid.DeadCell:
		bot.Energy += target.Energy / 2
		mineralGain := target.Minerals / 2
		if room := cfg.MaxMinerals - bot.StoredMinerals; mineralGain > room {
			mineralGain = room
		}
		if mineralGain > 0 {
			bot.StoredMinerals += mineralGain
		}
		w.Field[ni][nj] = worldgrid.EmptyCell{}
	}
}

// tryClone implements spec.md §4.4's TryClone.
func (s *Scheduler) tryClone(bot *vm.Organism, i, j int, action vm.Action) {
	w := s.World
	dir := worldgrid.Direction(action.Dir % 4)
	cell, ni, nj, ok := w.LookRelative(i, j, dir)
	if !ok {
		return
	}
	if _, empty := cell.(worldgrid.EmptyCell); !empty {
		return
	}
	if bot.Energy < 2*action.ChildEnergy {
		return
	}

	child := s.newOrganism(action.ChildEnergy, action.ChildMinerals,
		bot.Code.CloneLossy(w.Config.MutationChance))
	w.Field[ni][nj] = worldgrid.AliveCell{Organism: child}
	w.Updates[ni][nj] = w.Iteration

	bot.Energy -= action.ChildEnergy
	bot.StoredMinerals -= action.ChildMinerals
}

// creditNeighbor implements spec.md §4.4's ShareEnergy/ShareMinerals: the
// debit already happened inside the VM (Organism.step), so this only
// credits an Alive neighbour; any other target loses the amount.
func (s *Scheduler) creditNeighbor(i, j int, dirCode byte, amount int, isEnergy bool) {
	w := s.World
	dir := worldgrid.Direction(dirCode % 4)
	cell, _, _, ok := w.LookRelative(i, j, dir)
	if !ok {
		return
	}
	target, alive := cell.(worldgrid.AliveCell)
	if !alive {
		return
	}
	if isEnergy {
		target.Organism.Energy += amount
	} else {
		target.Organism.AddMinerals(amount, w.Config.MaxMinerals)
	}
}

// forcedSplit implements spec.md §4.4's overflow valve: an organism with
// no Clone opcode in its program is still subject to reproduction
// pressure once config.SplitFunc decides it has overflowed.
func (s *Scheduler) forcedSplit(bot *vm.Organism, i, j int) {
	if bot.CanClone {
		return
	}
	w := s.World
	result, ok := w.Config.SplitFunc(bot.Energy, bot.StoredMinerals)
	if !ok {
		return
	}
	ni, nj, found := w.RandomEmptyNeighbor(i, j)
	if !found {
		return
	}
	child := s.newOrganism(result.ChildEnergy, result.ChildMinerals,
		bot.Code.CloneLossy(w.Config.MutationChance))
	w.Field[ni][nj] = worldgrid.AliveCell{Organism: child}
	w.Updates[ni][nj] = w.Iteration

	bot.Energy -= result.ChildEnergy
	bot.StoredMinerals -= result.ChildMinerals
}

// newOrganism allocates a child organism, preferring a recycled slot from
// the pool over a fresh allocation.
func (s *Scheduler) newOrganism(energy, minerals int, code opcode.Program) *vm.Organism {
	if o := s.Pool.Get(); o != nil {
		o.Reset(energy, minerals, code)
		return o
	}
	return vm.FromProgram(energy, minerals, code)
}

// recycle returns a dead organism's storage to the pool.
func (s *Scheduler) recycle(o *vm.Organism) {
	s.Pool.Put(o)
}
