package envconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTOMLBuildsValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aquarium.toml")
	body := `
Width = 40
Height = 20
StartEnergy = 40
DeadEnergy = 20
AttackCost = 10
MaxCellSize = 500
MaxMinerals = 100
MutationChance = 2
AgingMutationFreq = 0.001
SplitThreshold = 200
PoolSize = 2500
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 20, cfg.Height)
	assert.Equal(t, 2500, cfg.PoolSize)

	result, ok := cfg.SplitFunc(300, 10)
	assert.True(t, ok)
	assert.Equal(t, 150, result.ChildEnergy)
}

func TestLoadTOMLMissingFile(t *testing.T) {
	_, err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
