package vm

import "github.com/HectorHW/aquarium/internal/opcode"

// Burst is the maximum number of pure (non-emitting) instructions executed
// per organism per tick, per spec.md §4.2.
const Burst = 16

// CellKind classifies what LookRelative/Compare found in a peeked cell.
// The numeric values match spec.md §4.1's LookRelative encoding exactly
// (Empty:0, Alive:1, Dead:2, OffGrid:255), so Peek.Kind can be written
// straight into a register.
type CellKind byte

const (
	SensedEmpty   CellKind = 0
	SensedAlive   CellKind = 1
	SensedDead    CellKind = 2
	SensedOffGrid CellKind = 255
)

// Peek is what a SensorView reports about a single neighbouring cell.
type Peek struct {
	Kind       CellKind
	EnergyFrac byte            // valid when Kind == SensedAlive
	OtherCode  *opcode.Program // valid when Kind == SensedAlive, for Compare
}

// SensorView lets the VM look at (but never mutate) a neighbouring cell.
// internal/scheduler supplies the concrete implementation backed by a
// worldgrid.World.
type SensorView interface {
	Peek(dirCode byte) Peek
}

// ActionKind identifies the single externally-visible effect a Tick call
// may emit for the resolver to apply.
type ActionKind byte

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionEat
	ActionDie
	ActionClone
	ActionShareEnergy
	ActionShareMinerals
)

// Action is the effect a VM burst produced, if any. Dir is only meaningful
// for the directional kinds (Move, Eat, Clone, ShareEnergy, ShareMinerals)
// and is a raw 0..3 code in the same convention as Organism.direction.
type Action struct {
	Kind          ActionKind
	Dir           byte
	ChildEnergy   int
	ChildMinerals int
	Amount        int
}

// TickEnv carries the per-tick, per-row environmental inputs the VM needs
// but cannot compute itself (it has no notion of the grid it's in). All
// fields are precomputed by the caller (internal/scheduler) from
// envconfig.Config and the organism's row.
type TickEnv struct {
	View        SensorView
	RowFrac     byte // row-depth fraction (0..255), for r4
	Light       int  // light(row): energy credited by Sythesize
	MaxMinerals int  // config.max_minerals: divisor for r5
	MaxCellSize int  // config.max_cell_size: divisor for r6
	StartEnergy int  // config.start_energy: floor for Clone's child energy
}

// Tick executes up to Burst instructions of o.Code, refreshing the sensor
// registers (r3..r6) once at the start, per spec.md §4.2. It returns the
// Action emitted (if any) and whether an Action was actually emitted; a
// false second value means the tick ended without an externally-visible
// effect (either a "tick ends" opcode ran, or the burst was exhausted on
// pure instructions alone).
func (o *Organism) Tick(env TickEnv) (Action, bool) {
	o.Registers[RegRandom] = randomByte()
	o.Registers[RegRowDepth] = env.RowFrac
	o.Registers[RegMineralsFrac] = fracByte(o.StoredMinerals, env.MaxMinerals)
	o.Registers[RegEnergyFrac] = fracByte(o.Energy, env.MaxCellSize)

	if o.Energy == 0 {
		return Action{Kind: ActionDie}, true
	}

	for i := 0; i < Burst; i++ {
		op := o.Code[o.IP]
		action, emitted, ends := o.step(op, env)
		if emitted {
			return action, true
		}
		if ends {
			return Action{}, false
		}
	}
	return Action{}, false
}

// step executes a single instruction, mutating o in place and advancing
// o.IP per spec.md §4.1's table. It returns (action, emitted, ends):
// emitted means the loop must return action immediately; ends means the
// loop must return immediately with no action (a "tick ends" opcode ran).
func (o *Organism) step(op opcode.Opcode, env TickEnv) (Action, bool, bool) {
	switch op.Code {
	case opcode.LoadInt:
		o.Registers[RegResult] = op.Param
		o.advance()

	case opcode.CopyRegisters:
		from, to := opcode.AddressPair(op.Param)
		o.Registers[to] = o.Registers[from]
		o.advance()

	case opcode.Add:
		from, to := opcode.AddressPair(op.Param)
		o.Registers[from] = o.Registers[from] + o.Registers[to]
		o.advance()

	case opcode.AddClip:
		from, to := opcode.AddressPair(op.Param)
		o.Registers[from] = saturatingAdd(o.Registers[from], o.Registers[to])
		o.advance()

	case opcode.SubClip:
		from, to := opcode.AddressPair(op.Param)
		o.Registers[from] = saturatingSub(o.Registers[from], o.Registers[to])
		o.advance()

	case opcode.Flip:
		addr := opcode.Address(op.Param)
		if o.Registers[addr] != 0 {
			o.Registers[addr] = 1
		} else {
			o.Registers[addr] = 0
		}
		o.advance()

	case opcode.JumpUnconditional:
		o.IP = (o.IP + int(op.Param)) % opcode.Size

	case opcode.SkipZero:
		addr := opcode.Address(op.Param)
		if o.Registers[addr] == 0 {
			o.IP = (o.IP + 2) % opcode.Size
		} else {
			o.advance()
		}

	case opcode.MoveRelative:
		dir := o.direction()
		o.advance()
		return Action{Kind: ActionMove, Dir: dir}, true, false

	case opcode.LookRelative:
		dir := o.direction()
		o.advance()
		peek := env.View.Peek(dir)
		o.Registers[RegResult] = byte(peek.Kind)
		if peek.Kind == SensedAlive {
			o.Registers[RegSecondary] = peek.EnergyFrac
		}

	case opcode.Eat:
		dir := o.direction()
		o.advance()
		return Action{Kind: ActionEat, Dir: dir}, true, false

	case opcode.Sythesize:
		o.Energy += env.Light
		o.advance()
		return Action{}, false, true

	case opcode.Clone:
		dir := o.direction()
		o.advance()
		childEnergy := o.Energy * int(op.Param) / 512
		if childEnergy < env.StartEnergy {
			childEnergy = env.StartEnergy
		}
		childMinerals := o.StoredMinerals * int(op.Param) / 512
		return Action{
			Kind:          ActionClone,
			Dir:           dir,
			ChildEnergy:   childEnergy,
			ChildMinerals: childMinerals,
		}, true, false

	case opcode.Compare:
		dir := o.direction()
		o.advance()
		peek := env.View.Peek(dir)
		switch peek.Kind {
		case SensedAlive:
			count := o.Code.CountDiffering(*peek.OtherCode)
			if count > 255 {
				count = 255
			}
			o.Registers[RegResult] = byte(count)
			o.Registers[RegSecondary] = peek.EnergyFrac
		case SensedDead:
			o.Registers[RegResult] = 255
		default:
			o.Registers[RegResult] = 0
		}

	case opcode.UseMinerals:
		o.advance()
		k := minInt(int(o.Registers[RegResult]), o.StoredMinerals)
		o.Energy += k
		o.StoredMinerals -= k
		return Action{}, false, true

	case opcode.Share:
		dir := o.direction()
		o.advance()
		k := minInt(int(o.Registers[RegResult]), o.Energy)
		o.Energy -= k
		return Action{Kind: ActionShareEnergy, Dir: dir, Amount: k}, true, false

	case opcode.ShareMinerals:
		dir := o.direction()
		o.advance()
		k := minInt(int(o.Registers[RegResult]), o.StoredMinerals)
		o.StoredMinerals -= k
		return Action{Kind: ActionShareMinerals, Dir: dir, Amount: k}, true, false

	default:
		// Decode guarantees op.Code is always one of the above; this
		// branch exists only so step remains total if that invariant
		// is ever violated by a corrupted Program.
		o.advance()
	}
	return Action{}, false, false
}

func (o *Organism) advance() {
	o.IP = (o.IP + 1) % opcode.Size
}
