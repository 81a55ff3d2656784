package envconfig

import (
	"bufio"
	"fmt"
	"os"
	"reflect"

	"github.com/naoina/toml"
)

// tomlSettings mirrors go-probe/Go-Probeum's convention of matching TOML
// keys to Go struct field names exactly.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string { return key },
	FieldToKey:    func(rt reflect.Type, field string) string { return field },
}

// FileConfig is the subset of Config that can round-trip through TOML:
// RowFunc and SplitFunc are Go closures and cannot be decoded from a file,
// so a FileConfig only carries the SplitThreshold that feeds
// SplitAboveThreshold, and New fills in the default light/minerals curves.
type FileConfig struct {
	Width, Height int

	StartEnergy int
	DeadEnergy  int
	AttackCost  int
	MaxCellSize int
	MaxMinerals int

	MutationChance    int
	AgingMutationFreq float64

	SplitThreshold int

	PoolSize int
}

// LoadTOML reads a FileConfig from path and builds a validated Config from
// it, grounded on go-probe/Go-Probeum's cmd/gprobe/config.go loadConfig.
func LoadTOML(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fc FileConfig
	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&fc); err != nil {
		if _, ok := err.(*toml.LineError); ok {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}

	return New(Config{
		Width: fc.Width, Height: fc.Height,
		StartEnergy: fc.StartEnergy, DeadEnergy: fc.DeadEnergy, AttackCost: fc.AttackCost,
		MaxCellSize: fc.MaxCellSize, MaxMinerals: fc.MaxMinerals,
		MutationChance: fc.MutationChance, AgingMutationFreq: fc.AgingMutationFreq,
		SplitFunc: SplitAboveThreshold(fc.SplitThreshold),
		PoolSize:  fc.PoolSize,
	})
}
