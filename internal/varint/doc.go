// Package varint implements the variable-length integer encoding used
// for all lengths, counts and discriminants on the wire.
//
// Each byte carries 7 value bits in its low bits and a continuation
// flag in bit 7; groups are emitted least significant first and the
// sequence terminates at the first byte with the flag clear. The
// encoder is canonical: it never pads with zero-valued continuation
// bytes, so a value below 128 is always exactly one byte.
//
// Values are the platform's native unsigned word. A decoded magnitude
// that cannot fit is an overflow error, never a silent wraparound.
//
// This package is internal to the module; the codec and schema
// packages share it.
package varint
