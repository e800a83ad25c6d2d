//go:build (!amd64 && !arm64) || purego

package xxh64

import "encoding/binary"

// Portable loads for platforms without known-good unaligned access, and for
// purego builds. Digests are identical to the unsafe path: both decode
// little-endian.

func load64(b []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(b[i : i+8])
}

func load32(b []byte, i int) uint32 {
	return binary.LittleEndian.Uint32(b[i : i+4])
}

func stringView(s string) []byte {
	return []byte(s)
}
