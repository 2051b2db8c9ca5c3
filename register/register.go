// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package register

import (
	"fmt"
	"iter"
	"maps"
)

// Nibble is a single 4-bit BCD cell of a register.
type Nibble uint8

// Sign sentinel values used at the mantissa and exponent sign cells.
const (
	SIGN_PLUS  = Nibble(0) // Positive (or blank) sign cell.
	SIGN_MINUS = Nibble(9) // Negative sign sentinel.
)

// Register cell indexes. Index 13 is the most significant nibble.
const (
	WIDTH = 14 // Nibbles per register.

	NIBBLE_SIGN         = 13 // Mantissa sign cell.
	NIBBLE_MANTISSA_MSD = 12 // Most significant mantissa digit.
	NIBBLE_MANTISSA_LSD = 3  // Least significant mantissa digit.
	NIBBLE_EXP_SIGN     = 2  // Exponent sign cell.
	NIBBLE_EXP_TENS     = 1  // Exponent tens digit.
	NIBBLE_EXP_UNITS    = 0  // Exponent units digit.

	MANTISSA_WIDTH = NIBBLE_MANTISSA_MSD - NIBBLE_MANTISSA_LSD + 1
)

var _register_defines = map[string]string{
	"REGISTER_WIDTH": fmt.Sprintf("%v", WIDTH),
	"SIGN_MINUS":     fmt.Sprintf("%v", SIGN_MINUS),
}

// Defines for the register format.
func Defines() iter.Seq2[string, string] {
	return maps.All(_register_defines)
}

// Register is one 14-nibble BCD register of the calculator CPU.
// Registers are plain values; assignment copies all cells.
type Register struct {
	nibble [WIDTH]Nibble
}

// FromDecimalString builds a register from a 14-character decimal
// string, most significant nibble first (string index 0 is nibble 13).
func FromDecimalString(s string) (reg Register, err error) {
	if len(s) != WIDTH {
		err = ErrRegisterLength
		return
	}

	for n := range WIDTH {
		c := s[n]
		if c < '0' || c > '9' {
			err = ErrRegisterDigit
			return
		}
		reg.nibble[WIDTH-1-n] = Nibble(c - '0')
	}

	return
}

// AsDecimalString renders the register as its 14-character decimal
// string. Exact inverse of FromDecimalString.
func (reg Register) AsDecimalString() string {
	text := make([]byte, WIDTH)
	for n := range WIDTH {
		text[n] = byte('0' + reg.nibble[WIDTH-1-n])
	}

	return string(text)
}

// SetNibble writes a single cell in place.
func (reg *Register) SetNibble(index int, value Nibble) (err error) {
	if index < 0 || index >= WIDTH {
		err = ErrNibbleIndex
		return
	}
	if value > 15 {
		err = ErrNibbleValue
		return
	}

	reg.nibble[index] = value

	return
}

// NibbleAt reads a single cell.
func (reg Register) NibbleAt(index int) (value Nibble, err error) {
	if index < 0 || index >= WIDTH {
		err = ErrNibbleIndex
		return
	}

	value = reg.nibble[index]

	return
}

// At reads a single cell without bounds checking. Use NibbleAt for
// untrusted indexes.
func (reg Register) At(index int) Nibble {
	return reg.nibble[index]
}

// Negative reports whether the mantissa sign cell holds the negative
// sentinel.
func (reg Register) Negative() bool {
	return reg.nibble[NIBBLE_SIGN] == SIGN_MINUS
}

// SetNegative sets the mantissa sign cell.
func (reg *Register) SetNegative(negative bool) {
	reg.nibble[NIBBLE_SIGN] = SIGN_PLUS
	if negative {
		reg.nibble[NIBBLE_SIGN] = SIGN_MINUS
	}
}

// MantissaDigit returns mantissa digit n, where digit 0 is the most
// significant of the ten mantissa cells.
func (reg Register) MantissaDigit(n int) Nibble {
	return reg.nibble[NIBBLE_MANTISSA_MSD-n]
}

// SetMantissaDigit writes mantissa digit n.
func (reg *Register) SetMantissaDigit(n int, value Nibble) {
	reg.nibble[NIBBLE_MANTISSA_MSD-n] = value
}

// MantissaZero reports whether every mantissa cell is zero.
func (reg Register) MantissaZero() bool {
	for n := range MANTISSA_WIDTH {
		if reg.MantissaDigit(n) != 0 {
			return false
		}
	}

	return true
}

// ExponentNegative reports whether the exponent sign cell holds the
// negative sentinel.
func (reg Register) ExponentNegative() bool {
	return reg.nibble[NIBBLE_EXP_SIGN] == SIGN_MINUS
}

// ExponentMagnitude returns the two exponent digits as an unsigned
// integer. The exponent sign cell and storage bias are not interpreted.
func (reg Register) ExponentMagnitude() int {
	return int(reg.nibble[NIBBLE_EXP_TENS])*10 + int(reg.nibble[NIBBLE_EXP_UNITS])
}

// SetExponent stores a signed exponent into the exponent field. A
// negative exponent is stored biased by 100 with the sign sentinel set,
// so that both digits remain representable as unsigned decimal cells.
func (reg *Register) SetExponent(exp int) {
	reg.nibble[NIBBLE_EXP_SIGN] = SIGN_PLUS
	if exp < 0 {
		exp += 100
		reg.nibble[NIBBLE_EXP_SIGN] = SIGN_MINUS
	}

	reg.nibble[NIBBLE_EXP_TENS] = Nibble(exp / 10)
	reg.nibble[NIBBLE_EXP_UNITS] = Nibble(exp % 10)
}

// String renders the register grouped into sign, mantissa, and exponent
// fields.
func (reg Register) String() string {
	text := reg.AsDecimalString()

	return fmt.Sprintf("%c %s %c%s", text[0], text[1:11], text[11], text[12:])
}
