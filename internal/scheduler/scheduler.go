// Package scheduler drives the per-tick row-major scan over a
// worldgrid.World: it runs each resident organism's prelude, VM burst, and
// action resolution at most once per tick, bridging vm.Action values into
// worldgrid.Cell mutations.
package scheduler

import (
	"github.com/HectorHW/aquarium/internal/envconfig"
	"github.com/HectorHW/aquarium/internal/pool"
	"github.com/HectorHW/aquarium/internal/telemetry"
	"github.com/HectorHW/aquarium/internal/vm"
	"github.com/HectorHW/aquarium/internal/worldgrid"
)

// Scheduler owns no lock of its own; the embedding application is
// responsible for serializing calls to Tick (see package docs / spec
// concurrency model: a single external mutex guards a tick in its
// entirety).
type Scheduler struct {
	World  *worldgrid.World
	Pool   *pool.Pool
	Logger telemetry.Logger
}

// New builds a Scheduler over w, recycling dead organisms' storage through
// p (which may be nil to disable recycling).
func New(w *worldgrid.World, p *pool.Pool) *Scheduler {
	return &Scheduler{World: w, Pool: p, Logger: telemetry.Null()}
}

// Tick advances the world by exactly one step: every organism resident at
// the start of the tick is processed at most once, in row-major order,
// per spec.md §4.5. An organism created mid-tick (by Clone or forced
// split) is stamped as already-processed so it isn't executed until the
// next tick.
func (s *Scheduler) Tick() {
	w := s.World
	height := len(w.Field)
	if height == 0 {
		return
	}
	width := len(w.Field[0])

	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			if w.Updates[i][j] == w.Iteration {
				continue
			}
			if alive, ok := w.Field[i][j].(worldgrid.AliveCell); ok {
				s.processBot(i, j, alive.Organism)
			}
			w.Updates[i][j] = w.Iteration
		}
	}
	w.Iteration++
	w.MeasureSteps++
}

// processBot runs one organism's full per-tick pipeline: prelude, VM
// burst, action resolution, forced split, postlude drain. i,j is the
// organism's position at the start of the tick; it may end up elsewhere
// (TryMove) or nowhere (Die) by the end of this call.
func (s *Scheduler) processBot(i, j int, bot *vm.Organism) {
	w := s.World
	cfg := w.Config

	// Detach the cell so nothing else in this tick can alias it while we
	// operate on bot — the swap-out-swap-in pattern from
	// original_source/src/cells/world.rs's mem::swap-based tick().
	w.Field[i][j] = worldgrid.EmptyCell{}

	bot.AddMinerals(w.Minerals(i), cfg.MaxMinerals)
	bot.Age(cfg.AgingMutationFreq)

	height := len(w.Field)
	rowDivisor := height - 1
	if rowDivisor <= 0 {
		rowDivisor = 1
	}

	action, emitted := bot.Tick(vm.TickEnv{
		View:        sensorView{w: w, i: i, j: j},
		RowFrac:     vm.FracByte(i, rowDivisor),
		Light:       w.Light(i),
		MaxMinerals: cfg.MaxMinerals,
		MaxCellSize: cfg.MaxCellSize,
		StartEnergy: cfg.StartEnergy,
	})

	ci, cj := i, j

	if emitted {
		switch action.Kind {
		case vm.ActionDie:
			w.Field[ci][cj] = worldgrid.DeadCell{Energy: cfg.DeadEnergy, Minerals: bot.StoredMinerals}
			s.recycle(bot)
			return
		case vm.ActionMove:
			ci, cj = s.tryMove(ci, cj, action.Dir)
		case vm.ActionEat:
			s.tryEat(bot, ci, cj, action.Dir)
		case vm.ActionClone:
			s.tryClone(bot, ci, cj, action)
		case vm.ActionShareEnergy:
			s.creditNeighbor(ci, cj, action.Dir, action.Amount, true)
		case vm.ActionShareMinerals:
			s.creditNeighbor(ci, cj, action.Dir, action.Amount, false)
		}
	}

	s.forcedSplit(bot, ci, cj)
	s.postludeDrain(bot, cfg)

	w.Field[ci][cj] = worldgrid.AliveCell{Organism: bot}
}

func (s *Scheduler) postludeDrain(bot *vm.Organism, cfg envconfig.Config) {
	if cfg.MaxCellSize <= 0 {
		return
	}
	bot.Energy -= ceilDiv(bot.Energy, cfg.MaxCellSize)
	if bot.Energy < 0 {
		bot.Energy = 0
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// sensorView bridges worldgrid's grid lookups into the vm package's
// grid-agnostic SensorView interface.
type sensorView struct {
	w    *worldgrid.World
	i, j int
}

func (v sensorView) Peek(dirCode byte) vm.Peek {
	dir := worldgrid.Direction(dirCode % 4)
	cell, _, _, ok := v.w.LookRelative(v.i, v.j, dir)
	if !ok {
		return vm.Peek{Kind: vm.SensedOffGrid}
	}
	switch c := cell.(type) {
	case worldgrid.AliveCell:
		return vm.Peek{
			Kind:       vm.SensedAlive,
			EnergyFrac: vm.FracByte(c.Organism.Energy, v.w.Config.MaxCellSize),
			OtherCode:  &c.Organism.Code,
		}
	case worldgrid.DeadCell:
		return vm.Peek{Kind: vm.SensedDead}
	default:
		return vm.Peek{Kind: vm.SensedEmpty}
	}
}
