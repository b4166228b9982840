package xorshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pseudorand/pseudorand/generator"
)

type constructorTestData struct {
	cfg   Config
	error bool
}

var constructorData = []constructorTestData{
	{Config{}, false},
	{Config{ShiftA: 13, ShiftB: 17, ShiftC: 5}, false},
	{Config{ShiftA: 0, ShiftB: 17, ShiftC: 5}, true},
	{Config{ShiftA: 13, ShiftB: 32, ShiftC: 5}, true},
	{Config{ShiftA: 13, ShiftB: 17, ShiftC: 40}, true},
	{Config{StrictSeed: true}, true},
	{Config{StrictSeed: true, Seed: 1}, false},
}

func TestNew(t *testing.T) {
	for _, tt := range constructorData {
		_, err := New(tt.cfg)
		if tt.error {
			assert.NotNil(t, err, "Config: %+v", tt.cfg)
		} else {
			assert.Nil(t, err, "Config: %+v", tt.cfg)
		}
	}
}

// Reference values for the 13/17/5 triple, computed independently.
var knownSequences = []struct {
	seed uint32
	want []uint32
}{
	{1, []uint32{270369, 67634689, 2647435461, 307599695, 2398689233}},
	{42, []uint32{11355432, 2836018348, 476557059, 3648046016, 3759983556}},
	{2463534242, []uint32{723471715, 2497366906, 2064144800, 2008045182, 3532304609}},
}

func TestKnownSequences(t *testing.T) {
	for _, tt := range knownSequences {
		g, err := New(Config{Seed: tt.seed})
		require.Nil(t, err)

		for i, want := range tt.want {
			assert.Equal(t, want, g.Uint32(), "seed %d, draw %d", tt.seed, i)
		}
	}
}

// A zero seed must not produce the absorbing all-zero stream.
func TestZeroSeedFallback(t *testing.T) {
	g, err := New(Config{Seed: 0})
	require.Nil(t, err)

	first := g.Uint32()
	assert.NotEqual(t, uint32(0), first)

	// The fallback is the documented constant, so the sequence equals the
	// one seeded with SeedFallback explicitly.
	g2, err := New(Config{Seed: SeedFallback})
	require.Nil(t, err)
	assert.Equal(t, g2.Uint32(), first)

	for i := 0; i < 1000; i++ {
		require.NotEqual(t, uint32(0), g.Uint32(), "draw %d reached the zero fixed point", i)
	}
}

func TestStrictSeed(t *testing.T) {
	g, err := New(Config{StrictSeed: true, Seed: 3})
	require.Nil(t, err)

	err = g.Seed(0)
	assert.Equal(t, generator.ErrInvalidSeed, err)

	// A rejected seed must leave the previous seeding untouched.
	g2, err := New(Config{Seed: 3})
	require.Nil(t, err)
	assert.Equal(t, g2.Uint32(), g.Uint32())
}

func TestReseedIdempotence(t *testing.T) {
	g, err := New(Config{Seed: 7})
	require.Nil(t, err)

	first := make([]uint32, 100)
	for i := range first {
		first[i] = g.Uint32()
	}

	require.Nil(t, g.Seed(7))
	for i := range first {
		require.Equal(t, first[i], g.Uint32(), "draw %d", i)
	}

	g.Reset()
	for i := range first {
		require.Equal(t, first[i], g.Uint32(), "draw %d after Reset", i)
	}
}

func TestFloat64Range(t *testing.T) {
	g, err := New(Config{Seed: 99})
	require.Nil(t, err)

	for i := 0; i < 10000; i++ {
		f := g.Float64()
		require.True(t, f >= 0 && f < 1, "Float64() = %v out of [0, 1)", f)
	}
}

func TestAccessorEquivalence(t *testing.T) {
	g1, err := New(Config{Seed: 5})
	require.Nil(t, err)
	g2, err := New(Config{Seed: 5})
	require.Nil(t, err)

	u := g1.Uint32()
	f := g2.Float64()
	assert.Equal(t, float64(u)/(1<<32), f)

	for i := 0; i < 100; i++ {
		require.Equal(t, g1.Uint32(), g2.Uint32(), "draw %d after mixed accessors", i)
	}
}

// The period of the 13/17/5 triple is 2^32−1. Exhausting it is too slow
// for a unit test; instead verify the state does not revisit the seed
// within a large prefix.
func TestNoShortCycle(t *testing.T) {
	g, err := New(Config{Seed: 1})
	require.Nil(t, err)

	for i := 0; i < 1<<20; i++ {
		require.NotEqual(t, uint32(1), g.Uint32(), "state returned to the seed after %d draws", i+1)
	}
}

func TestDriverRegistered(t *testing.T) {
	g, err := generator.New(Name, []byte("seed: 1"))
	require.Nil(t, err)
	assert.Equal(t, uint32(270369), g.Uint32())

	_, err = generator.New(Name, []byte("shift_a: 33\nshift_b: 17\nshift_c: 5"))
	assert.Equal(t, ErrInvalidShift, err)
}

func BenchmarkUint32(b *testing.B) {
	g, _ := New(Config{Seed: 1})
	var v uint32
	for i := 0; i < b.N; i++ {
		v = g.Uint32()
	}
	_ = v
}
