// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package display decodes the calculator display register pair into a
// line of human-readable symbols.
package display

import (
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/ucalc/register"
)

// Display mask codes held in register B, one per cell of register A.
const (
	MASK_DIGIT = register.Nibble(0) // Show the digit.
	MASK_POINT = register.Nibble(2) // Show the digit, then the decimal point.
	MASK_BLANK = register.Nibble(9) // Blank the cell.
)

// Symbol positions of a decoded line.
const (
	WIDTH = 15 // Symbols per decoded line.

	SYMBOL_SIGN           = 0  // Mantissa sign symbol.
	SYMBOL_MANTISSA_FIRST = 1  // First mantissa symbol.
	SYMBOL_MANTISSA_LAST  = 11 // Last mantissa symbol.
	SYMBOL_EXP_SIGN       = 12 // Exponent sign symbol.
	SYMBOL_EXP_TENS       = 13 // Exponent tens digit symbol.
	SYMBOL_EXP_UNITS      = 14 // Exponent units digit symbol.
)

var _display_defines = map[string]string{
	"DISPLAY_WIDTH": fmt.Sprintf("%v", WIDTH),
}

// Defines for the display format.
func Defines() iter.Seq2[string, string] {
	return maps.All(_display_defines)
}

// Line is one decoded display scan: the mantissa sign, the eleven-symbol
// mantissa field (ten digit cells and the decimal point slot), and the
// three-symbol exponent field.
type Line []byte

func (line Line) String() string {
	return string(line)
}

// Mantissa returns the eleven-symbol mantissa field.
func (line Line) Mantissa() string {
	return string(line[SYMBOL_MANTISSA_FIRST : SYMBOL_MANTISSA_LAST+1])
}

// Decoder converts the display register pair into a line of symbols.
// Register A holds the digit data, register B the per-cell display mask.
type Decoder interface {
	Decode(a register.Register, b register.Register) Line
}

// Segment models the device's digit scanner.
type Segment struct{}

var _ Decoder = Segment{}

// Decode scans the register pair from the most significant cell down,
// emitting one symbol per cell. The decimal point follows the cell whose
// mask holds MASK_POINT; when no cell is marked the point slot renders
// blank, keeping the mantissa field eleven symbols wide.
func (Segment) Decode(a register.Register, b register.Register) (line Line) {
	line = make(Line, 0, WIDTH)

	line = append(line, signSymbol(a, b, register.NIBBLE_SIGN))

	pointed := false
	for n := register.NIBBLE_MANTISSA_MSD; n >= register.NIBBLE_MANTISSA_LSD; n-- {
		line = append(line, digitSymbol(a, b, n))
		if b.At(n) == MASK_POINT {
			line = append(line, '.')
			pointed = true
		}
	}
	if !pointed {
		line = append(line, ' ')
	}

	line = append(line, signSymbol(a, b, register.NIBBLE_EXP_SIGN))
	line = append(line, digitSymbol(a, b, register.NIBBLE_EXP_TENS))
	line = append(line, digitSymbol(a, b, register.NIBBLE_EXP_UNITS))

	return
}

// signSymbol renders a sign cell. Blanked and positive cells both render
// as a space.
func signSymbol(a register.Register, b register.Register, index int) byte {
	if b.At(index) == MASK_BLANK {
		return ' '
	}
	if a.At(index) == register.SIGN_MINUS {
		return '-'
	}

	return ' '
}

// digitSymbol renders a digit cell, honoring the blanking mask.
func digitSymbol(a register.Register, b register.Register, index int) byte {
	if b.At(index) == MASK_BLANK {
		return ' '
	}

	return byte('0' + a.At(index))
}
