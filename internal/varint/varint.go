package varint

import (
	"errors"
	"math/bits"
)

// MaxLen is the largest number of bytes a varint may occupy for the
// platform's native unsigned word: ceil(UintSize / 7).
const MaxLen = (bits.UintSize + 6) / 7

// lastByteMax bounds the terminator byte of a maximum-length sequence.
// Bytes 0..MaxLen-2 contribute 7*(MaxLen-1) bits; the final byte may
// only carry the bits left above that.
const lastByteMax = 1<<(bits.UintSize-7*(MaxLen-1)) - 1

var (
	// ErrOverflow means the accumulated value exceeds the native
	// unsigned word, or the sequence failed to terminate within
	// MaxLen bytes.
	ErrOverflow = errors.New("varint: overflow")

	// ErrUnexpectedEnd means the input ended before a terminator byte.
	ErrUnexpectedEnd = errors.New("varint: unexpected end of input")
)

// Append appends the canonical encoding of v to dst and returns the
// extended slice. The encoding is 7 value bits per byte, least
// significant group first, continuation flag in the high bit. Values
// below 128 always occupy exactly one byte.
func Append(dst []byte, v uint) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Len returns the number of bytes Append would write for v.
func Len(v uint) int {
	n := 1
	for v >= 0x80 {
		n++
		v >>= 7
	}
	return n
}

// Uvarint decodes a varint from the front of buf and returns the value
// and the number of bytes consumed. It fails with ErrUnexpectedEnd if
// buf ends before a terminator byte, and with ErrOverflow if the
// accumulated value exceeds the native unsigned word or no terminator
// appears within MaxLen bytes.
func Uvarint(buf []byte) (uint, int, error) {
	var v uint
	for i := 0; i < MaxLen; i++ {
		if i >= len(buf) {
			return 0, 0, ErrUnexpectedEnd
		}
		b := buf[i]
		if i == MaxLen-1 && b > lastByteMax {
			return 0, 0, ErrOverflow
		}
		v |= uint(b&0x7F) << (7 * i)
		if b < 0x80 {
			return v, i + 1, nil
		}
	}
	// Continuation flag still set on the last permissible byte.
	return 0, 0, ErrOverflow
}
