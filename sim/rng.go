package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical aggregates.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
// Every seed, including 0, is used verbatim.
func NewSimulationKey(seed uint64) SimulationKey {
	return SimulationKey(int64(seed))
}

// NewEntropyKey picks a non-reproducible key from the wall clock. The key
// is still reported so the run can be replayed with --seed.
func NewEntropyKey() SimulationKey {
	return SimulationKey(time.Now().UnixNano())
}

// Seed returns the key as the unsigned seed accepted by NewSimulationKey.
func (k SimulationKey) Seed() uint64 {
	return uint64(k)
}

// === Subsystem names ===

// SubsystemEvent returns the stream name for event index i.
func SubsystemEvent(i int) string {
	return fmt.Sprintf("event_%d", i)
}

// === PartitionedRNG ===

// PartitionedRNG hands out deterministic, isolated random streams.
//
// Derivation formula: masterSeed XOR fnv1a64(streamName).
//
// Streams are derived from the key alone and nothing is cached, so
// PartitionedRNG may be shared by concurrent workers. Each returned
// *rand.Rand is owned by its caller and is not safe for concurrent use.
type PartitionedRNG struct {
	key SimulationKey
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key}
}

// ForSubsystem returns a freshly seeded RNG for the named stream.
// The same name always yields the same sequence. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	return rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
}

// ForEvent returns the RNG stream for event index i.
func (p *PartitionedRNG) ForEvent(i int) *rand.Rand {
	return p.ForSubsystem(SubsystemEvent(i))
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
