package simd

import "encoding/binary"

// IsASCII reports whether every byte of data is below 0x80.
//
// The DFA uses it to skip UTF-8 decoding: on ASCII input every byte is a
// rune.
func IsASCII(data []byte) bool {
	idx := 0
	if hasAVX2 {
		for idx+32 <= len(data) {
			w0 := binary.LittleEndian.Uint64(data[idx:])
			w1 := binary.LittleEndian.Uint64(data[idx+8:])
			w2 := binary.LittleEndian.Uint64(data[idx+16:])
			w3 := binary.LittleEndian.Uint64(data[idx+24:])
			if (w0|w1|w2|w3)&hi8 != 0 {
				return false
			}
			idx += 32
		}
	}
	for idx+8 <= len(data) {
		if binary.LittleEndian.Uint64(data[idx:])&hi8 != 0 {
			return false
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if data[idx] >= 0x80 {
			return false
		}
	}
	return true
}

// FirstNonASCII returns the index of the first byte >= 0x80, or -1 if all
// bytes are ASCII.
func FirstNonASCII(data []byte) int {
	idx := 0
	for idx+8 <= len(data) {
		if binary.LittleEndian.Uint64(data[idx:])&hi8 != 0 {
			break
		}
		idx += 8
	}
	for ; idx < len(data); idx++ {
		if data[idx] >= 0x80 {
			return idx
		}
	}
	return -1
}
