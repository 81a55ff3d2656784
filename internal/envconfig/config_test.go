package envconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsZeroDimensions(t *testing.T) {
	_, err := New(Config{Width: 0, Height: 10, StartEnergy: 10})
	assert.Error(t, err)
	var bad *BadConfigError
	assert.ErrorAs(t, err, &bad)
}

func TestNewRejectsZeroStartEnergy(t *testing.T) {
	_, err := New(Config{Width: 10, Height: 10, StartEnergy: 0})
	assert.Error(t, err)
}

func TestNewRejectsNegativeCaps(t *testing.T) {
	_, err := New(Config{Width: 10, Height: 10, StartEnergy: 10, MaxMinerals: -1})
	assert.Error(t, err)
}

func TestNewDefaultsUnsetFuncs(t *testing.T) {
	cfg, err := New(Config{Width: 10, Height: 10, StartEnergy: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Light(0, 100))
	assert.Equal(t, 3, cfg.Minerals(99, 100))
	_, ok := cfg.SplitFunc(201, 10)
	assert.True(t, ok)
}

func TestDefaultLightDecreasesDownward(t *testing.T) {
	assert.Equal(t, 3, DefaultLight(0, 100))
	assert.Equal(t, 0, DefaultLight(99, 100))
}

func TestDefaultMineralsDecreasesUpward(t *testing.T) {
	assert.Equal(t, 0, DefaultMinerals(0, 100))
	assert.Equal(t, 3, DefaultMinerals(99, 100))
}

func TestSplitAboveThreshold(t *testing.T) {
	split := SplitAboveThreshold(200)

	_, ok := split(200, 10)
	assert.False(t, ok, "exactly at threshold should not split")

	result, ok := split(201, 11)
	require.True(t, ok)
	assert.Equal(t, SplitResult{ChildEnergy: 100, ChildMinerals: 5}, result)
}
