package census

import (
	"testing"

	"github.com/HectorHW/aquarium/internal/envconfig"
	"github.com/HectorHW/aquarium/internal/vm"
	"github.com/HectorHW/aquarium/internal/worldgrid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanWorldCountsLivingOrganismsByGenome(t *testing.T) {
	cfg, err := envconfig.New(envconfig.Config{Width: 4, Height: 4, StartEnergy: 10})
	require.NoError(t, err)

	c := &MemCensus{}
	w := worldgrid.New(*cfg)
	green := vm.NewGreen(10)
	w.Field[0][0] = worldgrid.AliveCell{Organism: green}
	w.Field[0][1] = worldgrid.AliveCell{Organism: vm.NewGreen(10)}

	ScanWorld(c, w, 0)

	pop, ok := c.Get(green.Code)
	assert.True(t, ok)
	assert.Equal(t, 2, pop.Count)
}

func TestDistinctGenomesTrackedSeparately(t *testing.T) {
	cfg, err := envconfig.New(envconfig.Config{Width: 4, Height: 4, StartEnergy: 10})
	require.NoError(t, err)

	c := &MemCensus{}
	w := worldgrid.New(*cfg)
	w.Field[0][0] = worldgrid.AliveCell{Organism: vm.NewGreen(10)}
	w.Field[0][1] = worldgrid.AliveCell{Organism: vm.NewRandom(10)}

	ScanWorld(c, w, 0)

	assert.Equal(t, 2, c.Distinct())
}
