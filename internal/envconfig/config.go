// Package envconfig holds the tunable parameters that drive a simulation:
// starting resources, energy/mineral curves by row, mutation rates, and the
// pool size hint. A Config is built once, validated at construction, and
// shared read-only by every tick thereafter.
package envconfig

import "fmt"

// BadConfigError reports a Config value that cannot be used to run a
// simulation. Construction-time validation, never a runtime panic — the
// VM and scheduler assume every Config they're handed is already sound.
type BadConfigError struct {
	Reason string
}

func (e *BadConfigError) Error() string {
	return fmt.Sprintf("bad config: %s", e.Reason)
}

// SplitResult is the (childEnergy, childMinerals) pair a SplitBehaviour
// offers when it decides an overflowing organism should be forcibly split.
type SplitResult struct {
	ChildEnergy   int
	ChildMinerals int
}

// SplitFunc decides whether an organism with the given energy/minerals
// should be forcibly split this tick (for organisms with CanClone == false),
// and if so, how much of each resource the child receives. ok == false means
// no split occurs.
type SplitFunc func(energy, minerals int) (result SplitResult, ok bool)

// RowFunc computes a per-row rate: light (energy credited by Sythesize) or
// mineral influx, as a function of row index and grid height.
type RowFunc func(row, height int) int

// Config bundles every tunable parameter enumerated in spec.md §6.
type Config struct {
	Width, Height int

	StartEnergy int
	DeadEnergy  int
	AttackCost  int
	MaxCellSize int
	MaxMinerals int

	// MutationChance is clone_lossy's per-mille replacement probability
	// (0..1000); each program slot is independently rewritten with
	// probability MutationChance/1000.
	MutationChance int

	// AgingMutationFreq is the Bernoulli parameter for the one-slot aging
	// damage applied before every VM execution.
	AgingMutationFreq float64

	Light     RowFunc
	Minerals  RowFunc
	SplitFunc SplitFunc

	// PoolSize bounds internal/pool's free-list of reusable organism
	// slots. Zero disables pooling.
	PoolSize int
}

// DefaultLight implements the spec's suggested tuning: light decreases
// downward, max(0, 3 - row/10).
func DefaultLight(row, height int) int {
	v := 3 - row/10
	if v < 0 {
		return 0
	}
	return v
}

// DefaultMinerals implements the spec's suggested tuning: minerals decrease
// upward, max(0, 3 - (H-1-row)/10).
func DefaultMinerals(row, height int) int {
	v := 3 - (height-1-row)/10
	if v < 0 {
		return 0
	}
	return v
}

// SplitAboveThreshold returns a SplitFunc that forces a 50/50 split once
// energy exceeds threshold, matching spec.md §8's worked scenario
// ("energy>200 ⇒ Ok(energy/2, minerals/2) else Err").
func SplitAboveThreshold(threshold int) SplitFunc {
	return func(energy, minerals int) (SplitResult, bool) {
		if energy <= threshold {
			return SplitResult{}, false
		}
		return SplitResult{ChildEnergy: energy / 2, ChildMinerals: minerals / 2}, true
	}
}

// New validates and returns a Config, catching the construction-time
// failures spec.md §7 calls out: zero dimensions and zero StartEnergy.
// Unset RowFunc/SplitFunc fields are defaulted rather than rejected.
func New(c Config) (*Config, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, &BadConfigError{Reason: "width and height must be positive"}
	}
	if c.StartEnergy <= 0 {
		return nil, &BadConfigError{Reason: "start_energy must be positive"}
	}
	if c.MaxMinerals < 0 || c.MaxCellSize < 0 {
		return nil, &BadConfigError{Reason: "max_minerals and max_cell_size must be non-negative"}
	}
	if c.Light == nil {
		c.Light = DefaultLight
	}
	if c.Minerals == nil {
		c.Minerals = DefaultMinerals
	}
	if c.SplitFunc == nil {
		c.SplitFunc = SplitAboveThreshold(200)
	}
	out := c
	return &out, nil
}
