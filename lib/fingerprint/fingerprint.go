// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/fieldmap/lib/geometry"
)

// Precision is the number of decimal places floats are rounded to
// before hashing.
const Precision = 2

// foldMultiplier spreads the additive accumulator before it is mixed
// with the XOR accumulator (the 64-bit golden ratio constant).
const foldMultiplier = 0x9e3779b97f4a7c15

// Fingerprint summarizes a collection. The zero value is the
// fingerprint of an empty collection.
type Fingerprint struct {
	Count int
	Hash  uint64
}

// Changed reports whether current differs from previous. Any change
// in Count is a change; otherwise the hashes are compared.
func Changed(previous, current Fingerprint) bool {
	if previous.Count != current.Count {
		return true
	}
	return previous.Hash != current.Hash
}

// Hasher accumulates the fields of one entity. A Hasher is reused
// across entities within one [Compute] call; callers only write
// fields to it.
type Hasher struct {
	state   *blake3.Hasher
	scratch [32]byte
}

func newHasher() *Hasher {
	return &Hasher{state: blake3.New()}
}

func (hasher *Hasher) reset() {
	hasher.state.Reset()
}

func (hasher *Hasher) sum64() uint64 {
	digest := hasher.state.Sum(hasher.scratch[:0])
	return binary.LittleEndian.Uint64(digest[:8])
}

// String writes a length-prefixed string, so that ("ab", "c") and
// ("a", "bc") hash differently.
func (hasher *Hasher) String(value string) {
	hasher.Int(len(value))
	hasher.state.Write([]byte(value))
}

// Int writes an integer.
func (hasher *Hasher) Int(value int) {
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], uint64(value))
	hasher.state.Write(buffer[:])
}

// Bool writes a boolean.
func (hasher *Hasher) Bool(value bool) {
	if value {
		hasher.state.Write([]byte{1})
	} else {
		hasher.state.Write([]byte{0})
	}
}

// Float writes value rounded to [Precision] decimal places. Negative
// zero is normalized so that rounding -0.001 and 0.001 hash equally.
func (hasher *Hasher) Float(value float64) {
	rounded := geometry.Round(value, Precision)
	if rounded == 0 {
		rounded = 0
	}
	var buffer [8]byte
	binary.LittleEndian.PutUint64(buffer[:], math.Float64bits(rounded))
	hasher.state.Write(buffer[:])
}

// Vec writes both components of a point, rounded.
func (hasher *Hasher) Vec(value geometry.Vec2) {
	hasher.Float(value.X)
	hasher.Float(value.Z)
}

// Strings writes a slice of strings in order, prefixed by its length.
func (hasher *Hasher) Strings(values []string) {
	hasher.Int(len(values))
	for _, value := range values {
		hasher.String(value)
	}
}

// EntityFunc writes the visually relevant fields of one entity. The
// entity's ID is already written before the function is called.
type EntityFunc[T any] func(hasher *Hasher, entity T)

// Compute fingerprints a collection keyed by entity ID.
func Compute[T any](collection map[string]T, writeEntity EntityFunc[T]) Fingerprint {
	hasher := newHasher()
	var xorAccumulator, sumAccumulator uint64
	for id, entity := range collection {
		hasher.reset()
		hasher.String(id)
		if writeEntity != nil {
			writeEntity(hasher, entity)
		}
		entityHash := hasher.sum64()
		xorAccumulator ^= entityHash
		sumAccumulator += entityHash
	}
	return Fingerprint{
		Count: len(collection),
		Hash:  xorAccumulator ^ (sumAccumulator * foldMultiplier),
	}
}

// Tracker holds the last fingerprint seen for one collection. The
// first observation always reports a change so that the initial sync
// runs.
type Tracker struct {
	last   Fingerprint
	primed bool
}

// Observe records current and reports whether it differs from the
// previous observation.
func (tracker *Tracker) Observe(current Fingerprint) bool {
	if !tracker.primed {
		tracker.primed = true
		tracker.last = current
		return true
	}
	changed := Changed(tracker.last, current)
	tracker.last = current
	return changed
}

// Last returns the most recent fingerprint and whether one has been
// observed.
func (tracker *Tracker) Last() (Fingerprint, bool) {
	return tracker.last, tracker.primed
}

// Reset forgets the last fingerprint, forcing the next Observe to
// report a change.
func (tracker *Tracker) Reset() {
	tracker.primed = false
	tracker.last = Fingerprint{}
}
