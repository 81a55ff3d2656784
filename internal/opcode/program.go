package opcode

import (
	"fmt"
	"hash/crc32"
	"math/rand"
	"strings"
)

// Size is the fixed length of every organism's program.
const Size = 256

// Program is an organism's fixed-length instruction array. It is a value
// type (a Go array, not a slice) so that copying a Program — handing a
// lossy copy to a clone, or snapshotting it — is an ordinary assignment
// with no aliasing between parent and child.
type Program [Size]Opcode

// RandomProgram generates a Program with independently, uniformly random
// opcodes and parameters at every position, mirroring the teacher's
// RandomBytecode (grid2d/org/cpu1/code.go) generalized to this spec's
// fixed 256-slot, code+param instruction word.
func RandomProgram() Program {
	var p Program
	for i := range p {
		p[i] = Opcode{Code: Code(rand.Intn(NumCodes)), Param: byte(rand.Intn(256))}
	}
	return p
}

// Green returns the all-Sythesize program used for chlorophyll-only
// organisms (spec.md §6, populate_green).
func Green() Program {
	var p Program
	for i := range p {
		p[i] = Opcode{Code: Sythesize}
	}
	return p
}

// CloneLossy produces a mutated copy of p. Each of the Size opcodes is
// independently replaced, with probability mutationChance/1000, by a
// uniformly random opcode (code and parameter both redrawn); otherwise the
// original instruction is kept. This is spec.md §4.4's mutation semantics,
// distinct from the teacher's own Bytecode.Mutate (which instead performs
// one of: single-instruction change, segment duplication, or segment
// deletion) — that scheme doesn't preserve program length, which this
// spec's fixed-256-slot Program requires, so the per-slot independent
// replacement from original_source/src/cells/code.rs's clone_lossy is used
// instead.
func (p Program) CloneLossy(mutationChance int) Program {
	var out Program
	for i := range p {
		if rand.Intn(1000) < mutationChance {
			out[i] = Opcode{Code: Code(rand.Intn(NumCodes)), Param: byte(rand.Intn(256))}
		} else {
			out[i] = p[i]
		}
	}
	return out
}

// Damage implements the aging-mutation Bernoulli: with probability freq,
// exactly one randomly-chosen instruction in p is overwritten with a fresh
// random opcode. freq is a plain probability in [0,1], matching the Rust
// source's rand::distributions::Bernoulli parameter.
func (p *Program) Damage(freq float64) {
	if rand.Float64() < freq {
		i := rand.Intn(Size)
		p[i] = Opcode{Code: Code(rand.Intn(NumCodes)), Param: byte(rand.Intn(256))}
	}
}

// HasClone reports whether p contains at least one Clone instruction. This
// is the predicate backing vm.Organism.CanClone, recomputed any time a
// Program is constructed or mutated.
func (p Program) HasClone() bool {
	for _, op := range p {
		if op.Code == Clone {
			return true
		}
	}
	return false
}

// Hash identifies a Program by its contents, used by census to group
// organisms sharing a "genome." Grounded on the teacher's
// Bytecode.Hash (grid2d/org/cpu1/code.go), which also uses a CRC32
// checksum over the raw instruction bytes for this same purpose.
func (p Program) Hash() uint64 {
	buf := make([]byte, 0, Size*2)
	for _, op := range p {
		buf = append(buf, byte(op.Code), op.Param)
	}
	return uint64(crc32.ChecksumIEEE(buf))
}

// CountDiffering returns the number of positions at which p and other
// differ, used by the Compare opcode. Capped at 255 by the caller per
// spec.md §4.1 (min(255, count)).
func (p Program) CountDiffering(other Program) int {
	n := 0
	for i := range p {
		if p[i] != other[i] {
			n++
		}
	}
	return n
}

// String renders the program one instruction per line, in the style of
// the Rust source's Display impl for Program (original_source/src/cells/code.rs).
func (p Program) String() string {
	var b strings.Builder
	for i, op := range p {
		fmt.Fprintf(&b, "%-4d %s\n", i, op)
	}
	return b.String()
}
