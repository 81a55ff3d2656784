// Package vm implements the organism virtual machine: the register file,
// instruction pointer, energy/mineral stores, and the bounded-burst
// interpreter that turns an organism's Program into at most one
// externally-visible Action per tick.
//
// This package deliberately knows nothing about the grid it lives in. It
// consumes a SensorView to peek at a neighbouring cell and produces an
// Action for some other layer (internal/scheduler) to apply; it never
// mutates anything outside of itself. That keeps it the leaf-most
// "simulation" package, safe to unit test in complete isolation.
package vm

import (
	"math/rand"

	"github.com/HectorHW/aquarium/internal/opcode"
)

// Register indices with conventional meaning, per spec.md §3. Programs are
// free to overwrite any of them (including the ones the VM refreshes every
// tick), but the VM always refreshes r3..r6 before executing the burst.
const (
	RegResult        = 0 // r0: sensors and LoadInt write their result here
	RegSecondary     = 1 // r1: secondary result register (e.g. peeked organism's energy)
	RegDirection     = 2 // r2: low 2 bits select a direction
	RegRandom        = 3 // r3: fresh random byte every tick
	RegRowDepth      = 4 // r4: row-depth fraction (0..255)
	RegMineralsFrac  = 5 // r5: stored minerals as a fraction of cap
	RegEnergyFrac    = 6 // r6: current energy as a fraction of max_cell_size
	RegLastAttacker  = 7 // r7: last-attacker direction, set by the resolver
	NumRegisters     = 16
)

// Organism is a living cell's full state: its register file, its program
// and instruction pointer, its energy/mineral stores, and the precomputed
// CanClone predicate.
type Organism struct {
	Registers      [NumRegisters]byte
	Code           opcode.Program
	IP             int
	Energy         int
	StoredMinerals int
	CanClone       bool
}

// NewRandom builds an organism with a uniformly random program and the
// given starting energy.
func NewRandom(startEnergy int) *Organism {
	return FromProgram(startEnergy, 0, opcode.RandomProgram())
}

// NewGreen builds a chlorophyll-only organism (program = 256×Sythesize)
// with the given starting energy, per spec.md's GLOSSARY "Green" entry.
func NewGreen(startEnergy int) *Organism {
	return FromProgram(startEnergy, 0, opcode.Green())
}

// FromProgram builds an organism around an existing program, e.g. for a
// clone or a census-replayed genome.
func FromProgram(energy, minerals int, code opcode.Program) *Organism {
	return &Organism{
		Code:           code,
		Energy:         energy,
		StoredMinerals: minerals,
		CanClone:       code.HasClone(),
	}
}

// Reset reinitializes o in place as though it were freshly constructed
// around code, clearing registers and the instruction pointer. Used by
// internal/pool to recycle a dead organism's backing storage for a new
// birth instead of allocating.
func (o *Organism) Reset(energy, minerals int, code opcode.Program) {
	o.Registers = [NumRegisters]byte{}
	o.Code = code
	o.IP = 0
	o.Energy = energy
	o.StoredMinerals = minerals
	o.RefreshCanClone()
}

// RefreshCanClone recomputes CanClone from Code. Call after any in-place
// mutation of Code (aging Damage is the only one this package performs).
func (o *Organism) RefreshCanClone() {
	o.CanClone = o.Code.HasClone()
}

// AddMinerals credits minerals, clamped to cap, as the per-tick mineral
// uptake prelude (spec.md §4.2 intro / §9).
func (o *Organism) AddMinerals(amount, cap int) {
	o.StoredMinerals += amount
	if o.StoredMinerals > cap {
		o.StoredMinerals = cap
	}
}

// Age applies the aging-damage Bernoulli to the organism's program: with
// probability freq, one random instruction is overwritten. Called by the
// scheduler's prelude before Tick, per spec.md §4.4.
func (o *Organism) Age(freq float64) {
	o.Code.Damage(freq)
	o.RefreshCanClone()
}

// SpawnChild produces a new organism for a Clone or forced-split action: a
// lossily-mutated copy of Code, with the given starting energy/minerals.
func (o *Organism) SpawnChild(childEnergy, childMinerals, mutationChance int) *Organism {
	return FromProgram(childEnergy, childMinerals, o.Code.CloneLossy(mutationChance))
}

// direction returns the raw 0..3 direction code currently selected by r2,
// per spec.md §4.1 ("dir = r2 mod 4"). The numeric convention (0=Up,
// 1=Right, 2=Down, 3=Left) is shared with worldgrid.Direction without an
// import — see internal/scheduler for the bridge.
func (o *Organism) direction() byte {
	return o.Registers[RegDirection] % 4
}

// FracByte converts value/divisor into a byte via floor(value*255/divisor),
// clamped to 0..255, per spec.md §4.1's fraction-to-byte conversion rule.
// Exported so callers outside this package (internal/scheduler, computing
// the row-depth register) can reuse the same conversion.
func FracByte(value, divisor int) byte {
	return fracByte(value, divisor)
}

func fracByte(value, divisor int) byte {
	if divisor <= 0 {
		return 0
	}
	f := value * 255 / divisor
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return byte(f)
}

func saturatingAdd(a, b byte) byte {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}

func saturatingSub(a, b byte) byte {
	diff := int(a) - int(b)
	if diff < 0 {
		return 0
	}
	return byte(diff)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// randomByte is a package-level indirection so tests can pin the VM's
// per-tick random register without a full PRNG injection mechanism.
var randomByte = func() byte { return byte(rand.Intn(256)) }
