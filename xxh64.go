// Package xxh64 computes seedable 64-bit xxHash digests of byte slices.
//
// The API is single-shot: the whole input is visible up front and consumed in
// one call, with no hasher state carried between calls. Inputs of 32 bytes or
// more are processed as 32-byte blocks by four independent 64-bit lanes
// reading 8-byte little-endian words; shorter inputs and block remainders go
// through the 8/4/1-byte tail steps, and every digest passes through the same
// final avalanche. Output is bit-compatible with the XXH64 reference (and
// with github.com/cespare/xxhash/v2) for every input and seed; changing any
// rotate amount, multiplier or read width changes every digest ever produced.
//
// On amd64 and arm64 the word loads dereference the input directly; other
// platforms, and the purego build tag, fall back to encoding/binary reads.
// Both paths read little-endian, so digests do not depend on the platform.
package xxh64

import (
	"fmt"
	"math/bits"
)

const (
	prime1 uint64 = 0x9E3779B185EBCA87
	prime2 uint64 = 0xC2B2AE3D27D4EB4F
	prime3 uint64 = 0x165667B19E3779F9
	prime4 uint64 = 0x85EBCA77C2B2AE63
	prime5 uint64 = 0x27D4EB2F165667C5
)

// RangeError reports an offset/length pair that does not fit the hashed
// slice. Digest computation itself cannot fail; a range error is always a
// caller bug.
type RangeError struct {
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("xxh64: range [%d:%d+%d] out of bounds for %d bytes",
		e.Offset, e.Offset, e.Length, e.Size)
}

// checkRange validates an offset/length pair against size. This is the only
// bounds check the engine performs: it runs before any lane state exists, and
// the word loads behind it are unchecked.
func checkRange(offset, length, size int) error {
	if offset < 0 || length < 0 || offset > size || length > size-offset {
		return &RangeError{Offset: offset, Length: length, Size: size}
	}
	return nil
}

// Sum64 returns the digest of b with seed 0.
func Sum64(b []byte) uint64 {
	return sum64(b, 0)
}

// Sum64WithSeed returns the digest of b under the given seed.
func Sum64WithSeed(b []byte, seed uint64) uint64 {
	return sum64(b, seed)
}

// Sum64Range returns the digest of b[offset:offset+length] with seed 0.
func Sum64Range(b []byte, offset, length int) (uint64, error) {
	return Sum64RangeWithSeed(b, offset, length, 0)
}

// Sum64RangeWithSeed returns the digest of b[offset:offset+length] under the
// given seed. Offsets or lengths that do not fit b yield a *RangeError and no
// digest.
func Sum64RangeWithSeed(b []byte, offset, length int, seed uint64) (uint64, error) {
	if err := checkRange(offset, length, len(b)); err != nil {
		return 0, err
	}
	return sum64(b[offset:offset+length], seed), nil
}

// Sum64String returns the digest of the UTF-8 bytes of s with seed 0.
func Sum64String(s string) uint64 {
	return sum64(stringView(s), 0)
}

// Sum64Uint64 returns the digest of the 8-byte little-endian encoding of v
// with seed 0, computed without materializing the encoding: the scalar hash
// is seeded directly with the 8-byte length, v takes one tail round, and the
// avalanche runs as usual.
func Sum64Uint64(v uint64) uint64 {
	h := prime5 + 8
	h = bits.RotateLeft64(h^mix(0, v), 27)*prime1 + prime4
	return avalanche(h)
}

// sum64 runs the whole pipeline over an already-validated slice.
func sum64(b []byte, seed uint64) uint64 {
	n := len(b)
	i := 0

	var h uint64
	if n >= 32 {
		v1 := seed + prime1 + prime2
		v2 := seed + prime2
		v3 := seed
		v4 := seed - prime1
		for ; i <= n-32; i += 32 {
			v1 = mix(v1, load64(b, i))
			v2 = mix(v2, load64(b, i+8))
			v3 = mix(v3, load64(b, i+16))
			v4 = mix(v4, load64(b, i+24))
		}
		h = bits.RotateLeft64(v1, 1) + bits.RotateLeft64(v2, 7) +
			bits.RotateLeft64(v3, 12) + bits.RotateLeft64(v4, 18)
		h = merge(h, v1)
		h = merge(h, v2)
		h = merge(h, v3)
		h = merge(h, v4)
	} else {
		h = seed + prime5
	}

	h += uint64(n)

	// Tail: 8-byte words, then at most one 4-byte word, then single bytes.
	for ; i <= n-8; i += 8 {
		h = bits.RotateLeft64(h^mix(0, load64(b, i)), 27)*prime1 + prime4
	}
	if i <= n-4 {
		h = bits.RotateLeft64(h^uint64(load32(b, i))*prime1, 23)*prime2 + prime3
		i += 4
	}
	for ; i < n; i++ {
		h = bits.RotateLeft64(h^uint64(b[i])*prime5, 11)*prime1
	}

	return avalanche(h)
}

// mix is the lane round: absorb one 8-byte word into an accumulator.
func mix(acc, word uint64) uint64 {
	return bits.RotateLeft64(acc+word*prime2, 31) * prime1
}

// merge folds one finished lane into the converged hash.
func merge(h, v uint64) uint64 {
	return (h^mix(0, v))*prime1 + prime4
}

// avalanche spreads every input bit difference across the whole digest.
func avalanche(h uint64) uint64 {
	h ^= h >> 33
	h *= prime2
	h ^= h >> 29
	h *= prime3
	h ^= h >> 32
	return h
}
