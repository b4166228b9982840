// Package xorshift implements Marsaglia's 32-bit xorshift generator.
//
// The state is a single non-zero 32-bit word; each step applies three
// shift-xor operations and the new state is also the output. The all-zero
// state is a fixed point of the step function, so a zero seed is replaced
// by a documented fallback constant unless strict seeding is configured.
// The period is 2^32−1 for any non-zero seed.
package xorshift

import (
	"errors"
	"fmt"

	yaml "gopkg.in/yaml.v2"

	"github.com/pseudorand/pseudorand/generator"
)

// Name is the name by which this generator is registered.
const Name = "xorshift"

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

// Default shift triple (Marsaglia's 13/17/5).
const (
	DefaultShiftA = 13
	DefaultShiftB = 17
	DefaultShiftC = 5
)

// SeedFallback is the state substituted for a zero seed. Any non-zero
// constant works; this is Marsaglia's example seed.
const SeedFallback uint32 = 2463534242

// ErrInvalidShift is returned for a config with a shift amount outside
// (0, 32).
var ErrInvalidShift = errors.New("invalid shift amount")

// Config represents the configuration for a xorshift generator.
// Zero ShiftA, ShiftB and ShiftC select the default triple.
type Config struct {
	// ShiftA, ShiftB and ShiftC are the three shift amounts, each in
	// (0, 32), applied as left, right, left.
	ShiftA uint `yaml:"shift_a"`
	ShiftB uint `yaml:"shift_b"`
	ShiftC uint `yaml:"shift_c"`

	// StrictSeed disables the zero-seed fallback. A strict generator
	// returns generator.ErrInvalidSeed for a zero seed instead of
	// substituting SeedFallback.
	StrictSeed bool `yaml:"strict_seed"`

	// Seed is the initial seed value.
	Seed uint32 `yaml:"seed"`
}

func checkConfig(cfg Config) error {
	for _, s := range []uint{cfg.ShiftA, cfg.ShiftB, cfg.ShiftC} {
		if s == 0 || s >= 32 {
			return ErrInvalidShift
		}
	}
	return nil
}

// Xorshift holds the state of a 32-bit xorshift generator.
type Xorshift struct {
	a, b, c uint
	strict  bool

	x    uint32
	seed uint32
}

// New builds a Xorshift from the provided Config, seeded with cfg.Seed.
func New(cfg Config) (*Xorshift, error) {
	if cfg.ShiftA == 0 && cfg.ShiftB == 0 && cfg.ShiftC == 0 {
		cfg.ShiftA = DefaultShiftA
		cfg.ShiftB = DefaultShiftB
		cfg.ShiftC = DefaultShiftC
	}
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}

	g := &Xorshift{
		a:      cfg.ShiftA,
		b:      cfg.ShiftB,
		c:      cfg.ShiftC,
		strict: cfg.StrictSeed,
	}
	if err := g.Seed(cfg.Seed); err != nil {
		return nil, err
	}

	return g, nil
}

// Seed initializes the state from seed. A zero seed is replaced by
// SeedFallback so the state never reaches the absorbing all-zero fixed
// point; in strict mode a zero seed returns generator.ErrInvalidSeed
// instead.
func (g *Xorshift) Seed(seed uint32) error {
	if seed == 0 {
		if g.strict {
			return generator.ErrInvalidSeed
		}
		seed = SeedFallback
	}

	g.seed = seed
	g.x = seed
	return nil
}

// Uint32 returns the next value of the sequence, in [1, 2^32).
func (g *Xorshift) Uint32() uint32 {
	x := g.x
	x ^= x << g.a
	x ^= x >> g.b
	x ^= x << g.c
	g.x = x
	return x
}

// Float64 returns the next value of the sequence divided by 2^32, in
// (0, 1).
func (g *Xorshift) Float64() float64 {
	return float64(g.Uint32()) / (1 << 32)
}

// Reset re-seeds the generator with the most recently used seed. If the
// zero-seed fallback was applied, the fallback seed is what is restored.
func (g *Xorshift) Reset() {
	_ = g.Seed(g.seed)
}
