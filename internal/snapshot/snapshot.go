// Package snapshot produces the two wire-adjacent views of a
// worldgrid.World named in spec.md §6: a lossy per-cell summary meant for
// a UI to render, and a full-fidelity, gob-round-trippable capture of the
// entire simulation state.
package snapshot

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"github.com/HectorHW/aquarium/internal/envconfig"
	"github.com/HectorHW/aquarium/internal/opcode"
	"github.com/HectorHW/aquarium/internal/vm"
	"github.com/HectorHW/aquarium/internal/worldgrid"
)

// CellKind tags which of the three cell variants a Shallow/Full cell is,
// in the row-major view spec.md §6 names.
type CellKind int

const (
	Empty CellKind = iota
	Alive
	Dead
)

// ShallowCell is the lossy, UI-facing per-cell summary: for Alive, just
// energy and minerals, not the organism's program or registers. Grounded
// on original_source/src/serialization.rs's SerializedCell.
type ShallowCell struct {
	Kind     CellKind
	Energy   int
	Minerals int
}

// ShallowWorld is the row-major grid of ShallowCell, grounded on
// original_source/src/serialization.rs's SerializedWorld. This is a plain
// Go value suitable for an encoding/json.Marshal call; JSON transport
// itself is the out-of-scope UI's concern.
type ShallowWorld struct {
	Width, Height int
	Cells         [][]ShallowCell
}

// Shallow produces a ShallowWorld view of w.
func Shallow(w *worldgrid.World) ShallowWorld {
	height := len(w.Field)
	width := 0
	if height > 0 {
		width = len(w.Field[0])
	}
	out := ShallowWorld{Width: width, Height: height, Cells: make([][]ShallowCell, height)}
	for i := range w.Field {
		row := make([]ShallowCell, width)
		for j, cell := range w.Field[i] {
			switch c := cell.(type) {
			case worldgrid.AliveCell:
				row[j] = ShallowCell{Kind: Alive, Energy: c.Organism.Energy, Minerals: c.Organism.StoredMinerals}
			case worldgrid.DeadCell:
				row[j] = ShallowCell{Kind: Dead, Energy: c.Energy, Minerals: c.Minerals}
			default:
				row[j] = ShallowCell{Kind: Empty}
			}
		}
		out.Cells[i] = row
	}
	return out
}

// FullCell is the full-fidelity per-cell capture: for Alive, the complete
// Organism (registers, program, instruction pointer, energy, minerals).
type FullCell struct {
	Kind     CellKind
	Organism *vm.Organism // non-nil only when Kind == Alive
	Energy   int          // Dead only
	Minerals int          // Dead only
}

// FullWorld is a complete, gob-round-trippable capture of a World's field.
// Config is deliberately not part of the capture: envconfig.Config carries
// RowFunc/SplitFunc function values, which gob cannot encode, so the
// embedding application re-supplies the Config when restoring (the same
// way it was supplied when the World was first created).
type FullWorld struct {
	Width, Height int
	Iteration     uint64
	MeasureSteps  uint64
	Cells         [][]FullCell
}

func init() {
	gob.Register(opcode.Program{})
}

// Full captures the complete state of w.
func Full(w *worldgrid.World) FullWorld {
	height := len(w.Field)
	width := 0
	if height > 0 {
		width = len(w.Field[0])
	}
	out := FullWorld{
		Width: width, Height: height,
		Iteration: w.Iteration, MeasureSteps: w.MeasureSteps,
		Cells: make([][]FullCell, height),
	}
	for i := range w.Field {
		row := make([]FullCell, width)
		for j, cell := range w.Field[i] {
			switch c := cell.(type) {
			case worldgrid.AliveCell:
				organismCopy := *c.Organism
				row[j] = FullCell{Kind: Alive, Organism: &organismCopy}
			case worldgrid.DeadCell:
				row[j] = FullCell{Kind: Dead, Energy: c.Energy, Minerals: c.Minerals}
			default:
				row[j] = FullCell{Kind: Empty}
			}
		}
		out.Cells[i] = row
	}
	return out
}

// Restore rebuilds a *worldgrid.World from fw, using cfg for the
// parameters that don't survive serialization (dimensions are taken from
// fw and must agree with cfg's).
func Restore(fw FullWorld, cfg envconfig.Config) (*worldgrid.World, error) {
	if fw.Width != cfg.Width || fw.Height != cfg.Height {
		return nil, fmt.Errorf("snapshot dimensions %dx%d do not match config %dx%d",
			fw.Width, fw.Height, cfg.Width, cfg.Height)
	}
	w := worldgrid.New(cfg)
	w.Iteration = fw.Iteration
	w.MeasureSteps = fw.MeasureSteps
	for i, row := range fw.Cells {
		for j, c := range row {
			switch c.Kind {
			case Alive:
				organismCopy := *c.Organism
				w.Field[i][j] = worldgrid.AliveCell{Organism: &organismCopy}
			case Dead:
				w.Field[i][j] = worldgrid.DeadCell{Energy: c.Energy, Minerals: c.Minerals}
			default:
				w.Field[i][j] = worldgrid.EmptyCell{}
			}
		}
	}
	return w, nil
}

// Encode gob-encodes fw, the on-disk autosave format cmd/aquarium uses,
// grounded on the teacher's grid2d.(*grid).GobEncode.
func Encode(fw FullWorld) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(fw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode is Encode's inverse, grounded on the teacher's
// grid2d.(*grid).GobDecode.
func Decode(data []byte) (FullWorld, error) {
	var fw FullWorld
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&fw); err != nil {
		return FullWorld{}, err
	}
	return fw, nil
}
