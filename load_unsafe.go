//go:build (amd64 || arm64) && !purego

package xxh64

import "unsafe"

// Unaligned little-endian loads are native on these targets, so words are
// read straight off the base pointer. checkRange (or a full-slice entry
// point) has already validated every offset reaching these helpers; nothing
// here re-checks bounds.

func load64(b []byte, i int) uint64 {
	return *(*uint64)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), i))
}

func load32(b []byte, i int) uint32 {
	return *(*uint32)(unsafe.Add(unsafe.Pointer(unsafe.SliceData(b)), i))
}

// stringView aliases the bytes of s without copying. The engine never writes
// its input, so sharing the string's storage is safe.
func stringView(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
