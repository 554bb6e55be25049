package vkr

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// safeString guarantees the string is null terminated, as the C side of
// the bindings requires.
func safeString(s string) string {
	if len(s) == 0 {
		return "\x00"
	}
	if s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

func safeStrings(list []string) []string {
	ret := make([]string, len(list))
	for i, s := range list {
		ret[i] = safeString(s)
	}
	return ret
}

// sliceUint32 reinterprets the bytes as a uint32 slice without copying.
// The length must be a multiple of four and the data must stay reachable
// while the result is in use.
func sliceUint32(data []byte) []uint32 {
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4)
}

func float32Bytes(f float32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], math.Float32bits(f))
	return buf[:]
}
