// Package census tracks how many organisms share a given genome, over the
// lifetime of a simulation. The population self-organizes by selection on
// mutated programs, and distinguishing a recurring, successful genome from
// a one-off mutant is the whole point of keeping this separate from the
// grid itself — the grid only ever knows about the organisms alive right
// now.
package census

import (
	"fmt"

	"github.com/HectorHW/aquarium/internal/opcode"
)

// Population describes one genome's presence across the simulation's
// lifetime. Genome is the organism program this population tracks;
// opcode.Program is a fixed-size array of comparable Opcode values, so two
// organisms running the same bytecode compare equal directly, with no
// separate key or hash wrapper needed to track them as the same genome.
// First and Last record the "when" of the corresponding Add/Remove events
// — typically a tick count or wall-clock time, caller's choice.
type Population struct {
	Genome opcode.Program

	Count int         // organisms presently alive with this genome
	First interface{} // when this genome was first seen
	Last  interface{} // when this genome was last seen (zero while still alive)
}

func (p *Population) String() string {
	return fmt.Sprintf("[population %x count=%d (%v-%v)]", p.Genome.Hash(), p.Count, p.First, p.Last)
}

// A Census counts organisms born and dying with a given genome, and keeps
// a running tally of how many distinct genomes have appeared.
type Census interface {
	Get(genome opcode.Program) (Population, bool)
	Add(when interface{}, genome opcode.Program) Population
	Remove(when interface{}, genome opcode.Program) Population
	Count() int
	CountAllTime() int
	Distinct() int
	DistinctAllTime() int
}
