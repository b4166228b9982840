// Package mt19937 implements the 32-bit Mersenne Twister.
//
// The generator keeps 624 words of state and regenerates all of them in one
// batch whenever the buffer is exhausted, then serves them one at a time
// through the tempering transform. Tempering is what makes the raw state
// words pass the standard equidistribution tests; it must be applied to
// every output in the fixed shift/mask order below.
package mt19937

import (
	"fmt"

	yaml "gopkg.in/yaml.v2"

	"github.com/pseudorand/pseudorand/generator"
)

// Name is the name by which this generator is registered.
const Name = "mt19937"

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

	return New(cfg), nil
}

const (
	n = 624
	m = 397

	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	initMultiplier = 1812433253
)

// Config represents the configuration for a Mersenne Twister generator.
// The algorithm constants are fixed; only the seed is configurable.
type Config struct {
	// Seed is the initial seed value.
	Seed uint32 `yaml:"seed"`
}

// MT19937 holds the state of a Mersenne Twister generator.
type MT19937 struct {
	mt  [n]uint32
	mti int

	seed uint32
}

// New builds an MT19937 from the provided Config, seeded with cfg.Seed.
func New(cfg Config) *MT19937 {
	g := &MT19937{}
	_ = g.Seed(cfg.Seed)
	return g
}

// Seed initializes the state array from seed using the Knuth-style
// recurrence and marks the buffer exhausted, forcing a regeneration on the
// first draw. Every 32-bit seed is valid, including zero: the recurrence
// mixes the word index into every state word. The returned error is
// always nil.
func (g *MT19937) Seed(seed uint32) error {
	g.seed = seed
	g.mt[0] = seed
	for i := 1; i < n; i++ {
		g.mt[i] = initMultiplier*(g.mt[i-1]^(g.mt[i-1]>>30)) + uint32(i)
	}
	g.mti = n
	return nil
}

// regenerate rebuilds all 624 state words from the recurrence. Split into
// three loops so the (i+1) mod n and (i+m) mod n lookups never wrap.
func (g *MT19937) regenerate() {
	mag01 := [2]uint32{0, matrixA}

	var i int
	for ; i < n-m; i++ {
		y := (g.mt[i] & upperMask) | (g.mt[i+1] & lowerMask)
		g.mt[i] = g.mt[i+m] ^ (y >> 1) ^ mag01[y&0x1]
	}
	for ; i < n-1; i++ {
		y := (g.mt[i] & upperMask) | (g.mt[i+1] & lowerMask)
		g.mt[i] = g.mt[i+(m-n)] ^ (y >> 1) ^ mag01[y&0x1]
	}
	y := (g.mt[n-1] & upperMask) | (g.mt[0] & lowerMask)
	g.mt[n-1] = g.mt[m-1] ^ (y >> 1) ^ mag01[y&0x1]

	g.mti = 0
}

// Uint32 returns the next value of the sequence, in [0, 2^32).
func (g *MT19937) Uint32() uint32 {
	if g.mti >= n {
		g.regenerate()
	}

	y := g.mt[g.mti]
	g.mti++

	// Tempering.
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

// Float64 returns the next value of the sequence divided by 2^32, in
// [0, 1).
func (g *MT19937) Float64() float64 {
	return float64(g.Uint32()) / (1 << 32)
}

// Reset re-seeds the generator with the most recently used seed.
func (g *MT19937) Reset() {
	_ = g.Seed(g.seed)
}
