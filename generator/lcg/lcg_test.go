package lcg

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
	{Config{Multiplier: 5, Increment: 3, Modulus: 64}, false},
	{Config{Multiplier: 5, Increment: 3, Modulus: 1 << 32}, false},
	{Config{Multiplier: 5, Increment: 3, Modulus: 1<<32 + 1}, true},
	{Config{Multiplier: 64, Increment: 3, Modulus: 64}, true},
	{Config{Multiplier: 5, Increment: 64, Modulus: 64}, true},
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

// Reference values for the default constants, computed independently.
var knownSequences = []struct {
	seed uint32
	want []uint32
}{
	{0, []uint32{1013904223, 1196435762, 3519870697, 2868466484, 1649599747}},
	{1, []uint32{1015568748, 1586005467, 2165703038, 3027450565, 217083232}},
	{123456789, []uint32{920370032, 3761641487, 2252023330, 1475571481, 2340457892}},
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

func TestDeterminism(t *testing.T) {
	g1, err := New(Config{Seed: 42})
	require.Nil(t, err)
	g2, err := New(Config{Seed: 42})
	require.Nil(t, err)

	for i := 0; i < 1000; i++ {
		require.Equal(t, g1.Uint32(), g2.Uint32(), "draw %d", i)
	}
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

// With m=64, a=5, c=3 the Hull-Dobell conditions hold: c is odd, a−1 is
// divisible by 2, and by 4 because 4 divides m. The generator must visit
// every value in [0, 64) exactly once per cycle.
func TestFullPeriod(t *testing.T) {
	g, err := New(Config{Multiplier: 5, Increment: 3, Modulus: 64})
	require.Nil(t, err)

	seen := make(map[uint32]bool)
	for i := 0; i < 64; i++ {
		v := g.Uint32()
		require.True(t, v < 64, "value %d out of range", v)
		require.False(t, seen[v], "value %d repeated before the period ended", v)
		seen[v] = true
	}
	assert.Equal(t, 64, len(seen))
}

func TestFloat64Range(t *testing.T) {
	g, err := New(Config{Seed: 99})
	require.Nil(t, err)

	for i := 0; i < 10000; i++ {
		f := g.Float64()
		require.True(t, f >= 0 && f < 1, "Float64() = %v out of [0, 1)", f)
	}
}

// Uint32 and Float64 must advance the state exactly once each.
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

func TestDriverRegistered(t *testing.T) {
	g, err := generator.New(Name, []byte("seed: 1"))
	require.Nil(t, err)
	assert.Equal(t, uint32(1015568748), g.Uint32())

	_, err = generator.New(Name, []byte("modulus: 17179869184"))
	assert.NotNil(t, err)
}

func BenchmarkUint32(b *testing.B) {
	g, _ := New(Config{Seed: 1})
	var v uint32
	for i := 0; i < b.N; i++ {
		v = g.Uint32()
	}
	_ = v
}
