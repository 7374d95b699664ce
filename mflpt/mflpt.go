// Package mflpt converts floating point values to and from the 5-byte
// MFLPT representation used by the target's runtime library.
//
// The layout is one exponent byte (biased by 128, 0 meaning the value
// zero) followed by four mantissa bytes, most significant first. The
// mantissa is normalized to [0.5, 1); its always-set top bit is replaced
// by the sign bit in the stored form.
package mflpt

import (
	"fmt"
	"math"
)

// Size is the number of bytes in an encoded value.
const Size = 5

// Largest magnitude representable: a full mantissa with the maximum
// exponent of 127.
const (
	MaxPositive = 1.7014118345769143e+38
	MaxNegative = -1.7014118345769143e+38
)

const mantissaScale = 1 << 32

// Encode converts v to its 5-byte form. Values too small to represent
// flush to zero; values too large are an error.
func Encode(v float64) ([Size]byte, error) {
	var b [Size]byte
	if v == 0 {
		return b, nil
	}
	orig := v
	var sign byte
	if v < 0 {
		sign = 0x80
		v = -v
	}
	frac, exp := math.Frexp(v)
	mant := math.Round(frac * mantissaScale)
	if mant >= mantissaScale {
		// Rounding carried past the top bit.
		mant /= 2
		exp++
	}
	if exp > 127 {
		return b, fmt.Errorf("mflpt: value out of range: %g", orig)
	}
	if exp < -127 {
		return b, nil
	}
	m := uint32(mant)
	b[0] = byte(exp + 128)
	b[1] = byte(m>>24)&0x7f | sign
	b[2] = byte(m >> 16)
	b[3] = byte(m >> 8)
	b[4] = byte(m)
	return b, nil
}

// Decode is the inverse of Encode, up to the precision of the 32-bit
// mantissa.
func Decode(b [Size]byte) float64 {
	if b[0] == 0 {
		return 0
	}
	exp := int(b[0]) - 128
	m := 0x80000000 | uint32(b[1]&0x7f)<<24 | uint32(b[2])<<16 | uint32(b[3])<<8 | uint32(b[4])
	v := math.Ldexp(float64(m)/mantissaScale, exp)
	if b[1]&0x80 != 0 {
		v = -v
	}
	return v
}
