package opcode

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGreenIsAllSythesize(t *testing.T) {
	p := Green()
	for i, op := range p {
		require.Equal(t, Sythesize, op.Code, "position %d", i)
	}
	assert.False(t, p.HasClone())
}

func TestHasCloneDetectsClone(t *testing.T) {
	p := Green()
	assert.False(t, p.HasClone())
	p[17] = Opcode{Code: Clone, Param: 128}
	assert.True(t, p.HasClone())
}

func TestCloneLossyZeroChanceIsIdentical(t *testing.T) {
	p := RandomProgram()
	out := p.CloneLossy(0)
	assert.Equal(t, p, out)
}

func TestCloneLossyFullChanceRewritesLength(t *testing.T) {
	p := RandomProgram()
	out := p.CloneLossy(1000)
	assert.Len(t, out, Size)
}

func TestCountDifferingIdentical(t *testing.T) {
	p := RandomProgram()
	assert.Equal(t, 0, p.CountDiffering(p))
}

func TestCountDifferingAllSlots(t *testing.T) {
	a := Green()
	b := a
	for i := range b {
		b[i].Param = 1
	}
	// Green's Sythesize opcodes ignore Param, but CountDiffering compares
	// the raw instruction word, so every slot differs.
	assert.Equal(t, Size, a.CountDiffering(b))
}

func TestDamageTouchesAtMostOneSlot(t *testing.T) {
	p := Green()
	before := p
	p.Damage(1.0)
	diffs := before.CountDiffering(p)
	assert.LessOrEqual(t, diffs, 1)
}

func TestDamageNeverFiresAtZeroFrequency(t *testing.T) {
	p := Green()
	before := p
	p.Damage(0)
	assert.Equal(t, 0, before.CountDiffering(p))
}

// TestDecodedProgramNeverPanicsAcrossFuzzedBytes exercises the "random code
// must never crash" requirement (spec.md §9): any 256-byte sequence,
// reinterpreted through Decode, must yield a total, valid Program.
func TestDecodedProgramNeverPanicsAcrossFuzzedBytes(t *testing.T) {
	f := fuzz.New().NilChance(0).NumElements(Size, Size)
	var raw []byte
	for i := 0; i < 200; i++ {
		f.Fuzz(&raw)
		var p Program
		for j := 0; j < Size && j < len(raw); j++ {
			p[j] = Opcode{Code: Decode(raw[j]), Param: raw[j]}
		}
		for _, op := range p {
			assert.True(t, op.Code.Valid())
		}
		assert.True(t, p.HasClone() || !p.HasClone()) // never panics computing this
		_ = p.Hash()
		_ = p.String()
	}
}

func TestHashStableAcrossCopies(t *testing.T) {
	p := RandomProgram()
	q := p
	assert.Equal(t, p.Hash(), q.Hash())
}

func TestHashDiffersOnMutation(t *testing.T) {
	p := Green()
	q := p
	q[3] = Opcode{Code: Clone, Param: 9}
	assert.NotEqual(t, p.Hash(), q.Hash())
}
