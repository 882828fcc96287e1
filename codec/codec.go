// This file is part of OISC - https://github.com/mustpax/OISC
//
// Copyright 2017 The OISC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package codec converts literal numbers to and from the 8 bit forms used by
// the OISC machine: unsigned addresses and two's complement values.
//
// None of the conversions fail on out of range input. Values that do not fit
// are saturated to the nearest representable bound, which is what the
// hardware toolchain has always done.
package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Saturation bounds.
const (
	MaxUnsigned = 255
	MaxSigned   = 127
	MinSigned   = -127
)

// Warning is returned together with a valid result when the input had to be
// adjusted to fit. Callers usually report it and carry on.
type Warning string

func (w Warning) Error() string { return string(w) }

// IsWarning returns true if err is a Warning, possibly wrapped.
func IsWarning(err error) bool {
	_, ok := errors.Cause(err).(Warning)
	return ok
}

// Unsigned converts n to an 8 bit address. n <= 0 maps to 0 and n >= 255 to
// 255.
func Unsigned(n int) uint8 {
	switch {
	case n <= 0:
		return 0
	case n >= MaxUnsigned:
		return MaxUnsigned
	}
	return uint8(n)
}

// weights of bits 6 to 0 of a negative value once its sign bit is set.
var weights = [...]int{64, 32, 16, 8, 4, 2, 1}

// Signed converts n to its 8 bit two's complement bit pattern, saturating at
// MinSigned and MaxSigned.
func Signed(n int) uint8 {
	switch {
	case n >= MaxSigned:
		return MaxSigned
	case n == 0:
		return 0
	case n > 0:
		return uint8(n)
	case n < MinSigned:
		n = MinSigned
	}
	// -128 + sum of weights
	b := uint8(0x80)
	rem := n + 128
	for i, w := range weights {
		if rem >= w {
			rem -= w
			b |= 1 << uint(len(weights)-1-i)
		}
	}
	return b
}

// Value returns the integer value of the two's complement bit pattern b.
func Value(b uint8) int8 {
	return int8(b)
}

// Decimal parses an optionally signed decimal string. Strings made of valid
// digits that overflow an int saturate to math.MinInt or math.MaxInt so that
// Unsigned and Signed can clamp them.
func Decimal(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil {
		return n, nil
	}
	if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
		if strings.HasPrefix(s, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	return 0, errors.Errorf("invalid decimal literal %q", s)
}

// IsDecimal returns true if s is a non-empty string of decimal digits.
func IsDecimal(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Hex converts a two digit hexadecimal string to a byte. If s is longer, only
// the two low order digits are used; if it is shorter, it is padded with
// leading zeros. In both cases, a Warning is returned along with the result.
func Hex(s string) (uint8, error) {
	var warn error
	switch {
	case len(s) > 2:
		warn = Warning("hex representation too long, high digits discarded: \"" + s + "\"")
		s = s[len(s)-2:]
	case len(s) < 2:
		warn = Warning("hex representation too short, leading zeros added: \"" + s + "\"")
		s = strings.Repeat("0", 2-len(s)) + s
	}
	var b uint8
	for i := 0; i < len(s); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return 0, errors.Errorf("invalid hex digit %q", s[i])
		}
		b = b<<4 | d
	}
	return b, warn
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Binary converts a string of binary digits to a byte. Short strings are zero
// padded, only the 8 low order bits of longer ones are kept.
func Binary(s string) (uint8, error) {
	var b uint8
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b <<= 1
		case '1':
			b = b<<1 | 1
		default:
			return 0, errors.Errorf("invalid binary digit %q", s[i])
		}
	}
	return b, nil
}

// Bits formats the width low order bits of v as a string of binary digits,
// most significant first.
func Bits(v uint32, width int) string {
	b := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		b[i] = '0' + byte(v&1)
		v >>= 1
	}
	return string(b)
}

// ParseBits parses a string of exactly width binary digits.
func ParseBits(s string, width int) (uint32, error) {
	if len(s) != width {
		return 0, errors.Errorf("expected %d binary digits, got %d in %q", width, len(s), s)
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return 0, errors.Errorf("invalid binary digit %q in %q", s[i], s)
		}
	}
	return v, nil
}
