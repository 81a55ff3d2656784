package census

import (
	"encoding/gob"

	"github.com/HectorHW/aquarium/internal/opcode"
	"github.com/HectorHW/aquarium/internal/worldgrid"
)

// RegisterGobTypes registers the concrete types a DirCensus's gob-encoded
// Population records may carry, so they round-trip through
// encoding/gob.Decode without the caller needing to know the concrete
// types in advance.
func RegisterGobTypes() {
	gob.Register(opcode.Program{})
}

// ScanWorld adds one Add event (at time when) for every living organism
// currently in w, keyed by its program. Used to seed a Census from a
// world that already has a population (e.g. after restoring a snapshot).
func ScanWorld(c Census, w *worldgrid.World, when interface{}) {
	height := len(w.Field)
	for i := 0; i < height; i++ {
		for j := range w.Field[i] {
			if alive, ok := w.Field[i][j].(worldgrid.AliveCell); ok {
				c.Add(when, alive.Organism.Code)
			}
		}
	}
}
