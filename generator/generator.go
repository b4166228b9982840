// Package generator provides deterministic pseudo-random number generators
// behind a common interface, along with a registry of named implementations.
//
// None of the generators in this package or its subpackages are
// cryptographically secure. They exist to produce reproducible sequences
// for simulation and statistical experiments.
package generator

import (
	"errors"
	"sort"
	"sync"
)

var (
	driversM sync.RWMutex
	drivers  = make(map[string]Driver)
)

// Driver is the interface used to initialize a new type of Generator.
type Driver interface {
	// NewGenerator builds a Generator from a YAML option block.
	//
	// Implementations validate their algorithm constants here and return
	// an error for any value outside its required domain.
	NewGenerator(optionBytes []byte) (Generator, error)
}

// ErrDriverDoesNotExist is the error returned by New when a generator
// driver with that name does not exist.
var ErrDriverDoesNotExist = errors.New("generator driver with that name does not exist")

// ErrInvalidSeed is the error returned by Seed when a seed lies outside the
// algorithm's valid domain and the generator is not allowed to substitute a
// fallback value.
var ErrInvalidSeed = errors.New("seed is outside the algorithm's valid domain")

// Generator is a deterministic pseudo-random number generator.
//
// A Generator owns its internal state exclusively. The state is never
// shared between instances and is not exposed through this interface.
// Instances are not safe for concurrent use; callers that draw from
// multiple goroutines must use one instance per goroutine.
type Generator interface {
	// Seed deterministically initializes the generator from seed. It may
	// be called any number of times; every call fully resets the state,
	// leaving no residue from a previous seeding.
	//
	// Returns ErrInvalidSeed only if the algorithm restricts the seed
	// domain and cannot substitute a documented fallback.
	Seed(seed uint32) error

	// Uint32 advances the state by exactly one step and returns the
	// extracted output, an integer in [0, modulus) for the algorithm's
	// modulus. It never fails once the generator has been seeded.
	Uint32() uint32

	// Float64 advances the state by exactly one step, exactly as Uint32
	// does, and returns the output divided by the modulus: a value in
	// [0, 1). Drawing via Float64 and drawing via Uint32 are
	// interchangeable with respect to state advancement.
	Float64() float64

	// Reset re-seeds the generator with the most recently used seed,
	// restoring the sequence from its start.
	Reset()
}

// RegisterDriver makes a Driver available by the provided name.
//
// If called twice with the same name, the name is blank, or if the provided
// Driver is nil, this function panics.
func RegisterDriver(name string, d Driver) {
	if name == "" {
		panic("generator: could not register a Driver with an empty name")
	}
	if d == nil {
		panic("generator: could not register a nil Driver")
	}

	driversM.Lock()
	defer driversM.Unlock()

	if _, dup := drivers[name]; dup {
		panic("generator: RegisterDriver called twice for " + name)
	}

	drivers[name] = d
}

// New attempts to initialize a new Generator with the given name from the
// list of registered Drivers.
//
// If a driver does not exist, returns ErrDriverDoesNotExist.
func New(name string, optionBytes []byte) (Generator, error) {
	driversM.RLock()
	defer driversM.RUnlock()

	d, ok := drivers[name]
	if !ok {
		return nil, ErrDriverDoesNotExist
	}

	return d.NewGenerator(optionBytes)
}

// Drivers returns the names of all registered Drivers in sorted order.
//
// Callers control which drivers are registered through their import list;
// this is the discovery surface consumers enumerate.
func Drivers() []string {
	driversM.RLock()
	defer driversM.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
