// Package lcg implements a linear congruential generator.
//
// The step function is x ← (a·x + c) mod m. The default constants are the
// Numerical Recipes triple a=1664525, c=1013904223, m=2^32, which satisfies
// the Hull-Dobell conditions for a full period: gcd(c, m) = 1, a−1 is
// divisible by every prime factor of m, and by 4 because 4 divides m.
// Custom constants supplied through the Config are checked for domain
// validity only; the Hull-Dobell conditions themselves are the caller's
// responsibility, and constants violating them degenerate the sequence
// into a short cycle.
package lcg

import (
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v2"

	"github.com/pseudorand/pseudorand/generator"
)

// Name is the name by which this generator is registered.
const Name = "lcg"

func init() {
	generator.RegisterDriver(Name, driver{})
}

var _ generator.Driver = driver{}

type driver struct{}

func (d driver) NewGenerator(optionBytes []byte) (generator.Generator, error) {
	var cfg Config
	err := yaml.Unmarshal(optionBytes, &cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid options for generator %s: %w", Name, err)
	}

	return New(cfg)
}

// Default constants (Numerical Recipes).
const (
	DefaultMultiplier = 1664525
	DefaultIncrement  = 1013904223
	DefaultModulus    = 1 << 32
)

// ErrInvalidModulus is returned for a config with a modulus of zero or
// larger than 2^32.
var ErrInvalidModulus = errors.New("invalid modulus")

// ErrInvalidMultiplier is returned for a config with a multiplier outside
// [0, modulus).
var ErrInvalidMultiplier = errors.New("invalid multiplier")

// ErrInvalidIncrement is returned for a config with an increment outside
// [0, modulus).
var ErrInvalidIncrement = errors.New("invalid increment")

// Config represents the configuration for a linear congruential generator.
// A zero Modulus selects the default constant triple and ignores
// Multiplier and Increment.
//
// An Increment of zero is accepted, but then a seed of zero is a fixed
// point of the step function and produces a constant stream of zeros.
type Config struct {
	// Multiplier is the constant a in [0, Modulus).
	Multiplier uint64 `yaml:"multiplier"`

	// Increment is the constant c in [0, Modulus).
	Increment uint64 `yaml:"increment"`

	// Modulus is the constant m in (0, 2^32].
	Modulus uint64 `yaml:"modulus"`

	// Seed is the initial seed value.
	Seed uint32 `yaml:"seed"`
}

func checkConfig(cfg Config) error {
	if cfg.Modulus == 0 || cfg.Modulus > 1<<32 {
		return ErrInvalidModulus
	}
	if cfg.Multiplier >= cfg.Modulus {
		return ErrInvalidMultiplier
	}
	if cfg.Increment >= cfg.Modulus {
		return ErrInvalidIncrement
	}
	return nil
}

// LCG holds the state of a linear congruential generator.
type LCG struct {
	a, c, m uint64

	x    uint64
	seed uint32
}

// New builds an LCG from the provided Config, seeded with cfg.Seed.
func New(cfg Config) (*LCG, error) {
	if cfg.Modulus == 0 {
		cfg.Multiplier = DefaultMultiplier
		cfg.Increment = DefaultIncrement
		cfg.Modulus = DefaultModulus
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	g := &LCG{
		a: cfg.Multiplier,
		c: cfg.Increment,
		m: cfg.Modulus,
	}
	_ = g.Seed(cfg.Seed)

	return g, nil
}

// Seed initializes the state to seed mod m. Every 32-bit seed is valid;
// the returned error is always nil.
func (g *LCG) Seed(seed uint32) error {
	g.seed = seed
	g.x = uint64(seed) % g.m
	return nil
}

// step advances the recurrence and returns the new state.
// All operands are below 2^32, so a·x + c cannot overflow uint64.
func (g *LCG) step() uint64 {
	g.x = (g.a*g.x + g.c) % g.m
	return g.x
}

// Uint32 returns the next value of the sequence, in [0, m).
func (g *LCG) Uint32() uint32 {
	return uint32(g.step())
}

// Float64 returns the next value of the sequence divided by m, in [0, 1).
func (g *LCG) Float64() float64 {
	return float64(g.step()) / float64(g.m)
}

// Reset re-seeds the generator with the most recently used seed.
func (g *LCG) Reset() {
	_ = g.Seed(g.seed)
}
