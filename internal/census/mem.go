package census

import "fmt"
import "sync"

import "github.com/HectorHW/aquarium/internal/opcode"

// MemCensus implements a Census entirely in-memory, tracking a genome's
// population for as long as at least one organism carrying it is alive.
// Genomes are bucketed directly by opcode.Program value equality — no
// separate hash-keyed index is needed since Program is itself a
// comparable, map-keyable array.
type MemCensus struct {
	mu          sync.RWMutex
	seen        map[opcode.Program]*Population
	count       int
	countAll    int
	distinct    int
	distinctAll int
}

// Get retrieves the population carrying genome. If no organism with that
// genome is currently alive, returns a zero-valued Population and ok will
// be false.
func (b *MemCensus) Get(genome opcode.Program) (p Population, ok bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.seen[genome]
	if ok {
		return *c, true
	}
	return Population{}, false
}

// Add records that an organism carrying genome was born.
func (b *MemCensus) Add(when interface{}, genome opcode.Program) (ret Population) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seen == nil {
		b.seen = make(map[opcode.Program]*Population)
	}

	c, ok := b.seen[genome]
	if !ok {
		c = &Population{
			Genome: genome,
			First:  when,
		}
		b.seen[genome] = c
		b.distinct += 1
		b.distinctAll += 1
	}
	c.Count += 1
	b.count += 1
	b.countAll += 1
	return *c
}

// Remove records that an organism carrying genome died. Once the last
// living carrier of a genome is removed, the population is forgotten (a
// DirCensus will still have it on disk).
func (b *MemCensus) Remove(when interface{}, genome opcode.Program) (ret Population) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.seen[genome]
	if ok {
		c.Count -= 1
		b.count -= 1
		if c.Count == 0 {
			delete(b.seen, genome)
			b.distinct -= 1
			c.Last = when
		}
		return *c
	}
	panic(fmt.Sprintf("mismatched remove for genome %x", genome.Hash()))
}

// Count returns the number of organisms presently tracked.
func (b *MemCensus) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// CountAllTime returns the number of organisms ever added.
func (b *MemCensus) CountAllTime() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.countAll
}

// Distinct returns the number of distinct genomes currently tracked.
func (b *MemCensus) Distinct() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.distinct
}

// DistinctAllTime returns the number of distinct genomes ever added.
func (b *MemCensus) DistinctAllTime() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.distinctAll
}
