package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
	"strings"

	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/register"
)

// RegisterID names one of the seven CPU registers.
type RegisterID int

const (
	REG_A = RegisterID(0) // Display digit data.
	REG_B = RegisterID(1) // Display mask.
	REG_C = RegisterID(2) // Canonical arithmetic ("X") register.
	REG_D = RegisterID(3) // Stack register.
	REG_E = RegisterID(4) // Stack register.
	REG_F = RegisterID(5) // Stack register.
	REG_M = RegisterID(6) // Memory scratch register.

	REGISTER_COUNT = 7
)

var _register_names = [REGISTER_COUNT]string{"a", "b", "c", "d", "e", "f", "m"}

func (id RegisterID) String() string {
	if id < 0 || id >= REGISTER_COUNT {
		return fmt.Sprintf("register(%d)", int(id))
	}

	return _register_names[id]
}

// RegisterIDOf resolves a register name, case-insensitive.
func RegisterIDOf(name string) (id RegisterID, err error) {
	for n, reg := range _register_names {
		if strings.EqualFold(name, reg) {
			id = RegisterID(n)
			return
		}
	}

	err = ErrRegisterInvalid

	return
}

// Representable exponent range of the canonical register.
const (
	EXPONENT_MAX = 99
	EXPONENT_MIN = -99
)

// Fixed register patterns. The power-on pair displays "0.", the overflow
// pairs display the maximal magnitude 9.999999999 99. Each pair is a
// fixed point of canonicalization.
const (
	POWER_ON_A = "00000000000000"
	POWER_ON_B = "02999999999999"

	OVERFLOW_A_POSITIVE = "09999999999099"
	OVERFLOW_A_NEGATIVE = "99999999999099"
	OVERFLOW_B          = "02000000000000"
)

var _cpu_defines = map[string]string{
	"POWER_ON_A":          POWER_ON_A,
	"POWER_ON_B":          POWER_ON_B,
	"OVERFLOW_A_POSITIVE": OVERFLOW_A_POSITIVE,
	"OVERFLOW_A_NEGATIVE": OVERFLOW_A_NEGATIVE,
	"OVERFLOW_B":          OVERFLOW_B,
}

// Cpu is the register file of the calculator CPU.
//
// All methods are synchronous and unsynchronized. A concurrent host must
// confine a Cpu to a single goroutine, or guard it with one lock.
type Cpu struct {
	Verbose bool            // Set to enable verbose logging.
	Decoder display.Decoder // Display decoder collaborator.

	register [REGISTER_COUNT]register.Register
}

// NewCpu creates a CPU whose display registers A and B are loaded from
// two 14-character decimal strings. Register C is derived immediately.
func NewCpu(a string, b string) (cp *Cpu, err error) {
	cp = &Cpu{Decoder: display.Segment{}}

	err = cp.Load(a, b)
	if err != nil {
		cp = nil
		return
	}

	return
}

// PowerOn creates a CPU in the device power-on state, displaying "0.".
func PowerOn() (cp *Cpu) {
	cp, err := NewCpu(POWER_ON_A, POWER_ON_B)
	if err != nil {
		// The power-on patterns are constants.
		panic(err)
	}

	return
}

// Defines for the cpu.
func (cp *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Load replaces display registers A and B, then re-derives register C.
func (cp *Cpu) Load(a string, b string) (err error) {
	rega, err := register.FromDecimalString(a)
	if err != nil {
		return
	}
	regb, err := register.FromDecimalString(b)
	if err != nil {
		return
	}

	cp.register[REG_A] = rega
	cp.register[REG_B] = regb
	cp.Canonicalize()

	return
}

// Register returns a copy of the named register.
func (cp *Cpu) Register(id RegisterID) (reg register.Register, err error) {
	if id < 0 || id >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	reg = cp.register[id]

	return
}

// SetRegister replaces the named register. Replacing A or B does not
// re-derive C; call Canonicalize once the display pair is complete.
func (cp *Cpu) SetRegister(id RegisterID, reg register.Register) (err error) {
	if id < 0 || id >= REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	cp.register[id] = reg

	return
}

// DecimalStringForRegister returns the 14-character decimal string of
// the named register.
func (cp *Cpu) DecimalStringForRegister(id RegisterID) (s string, err error) {
	reg, err := cp.Register(id)
	if err != nil {
		return
	}

	s = reg.AsDecimalString()

	return
}

// Display returns the decoded display line of the current A/B pair.
func (cp *Cpu) Display() display.Line {
	return cp.Decoder.Decode(cp.register[REG_A], cp.register[REG_B])
}

// String returns the current register file as a string.
func (cp *Cpu) String() (text string) {
	for id := REG_A; id < REGISTER_COUNT; id++ {
		text += fmt.Sprintf("%v: %v\n", id, cp.register[id])
	}

	return
}

// Canonicalize derives register C from the display registers A and B.
//
// When the derived exponent leaves the representable range, A and B are
// replaced with the overflow or underflow pattern and the derivation
// runs once more. The fallback patterns are fixed points of the
// derivation, so the second pass always lands in range.
func (cp *Cpu) Canonicalize() {
	for range 2 {
		if cp.derive() {
			return
		}
	}
}

// derive computes register C from the display pair. When the exponent is
// out of range it installs the fallback pattern instead and reports
// false.
func (cp *Cpu) derive() (ok bool) {
	a := cp.register[REG_A]
	line := cp.Decoder.Decode(a, cp.register[REG_B])

	if cp.Verbose {
		log.Printf("cpu: canonicalize %v '%v'", a, line)
	}

	var c register.Register

	// Mantissa sign.
	negative := a.Negative()
	c.SetNegative(negative)

	// Mantissa copy, dropping leading zeros: the first significant
	// digit lands in the most significant cell, low-order cells stay
	// zero.
	slot := 0
	for n := range register.MANTISSA_WIDTH {
		digit := a.MantissaDigit(n)
		if slot == 0 && digit == 0 {
			continue
		}
		c.SetMantissaDigit(slot, digit)
		slot++
	}
	if slot == 0 {
		// A zero mantissa is non-negative for overflow purposes.
		negative = false
	}

	// Exponent: sign from A's exponent field, magnitude from the
	// displayed exponent digits, corrected by the decade of the
	// displayed mantissa magnitude.
	exp := 10*lineDigit(line, display.SYMBOL_EXP_TENS) + lineDigit(line, display.SYMBOL_EXP_UNITS)
	if a.ExponentNegative() {
		exp = -exp
	}
	if decade, significant := lineDecade(line); significant {
		exp += decade
	}

	switch {
	case exp > EXPONENT_MAX:
		cp.overflow(!negative)
		return
	case exp < EXPONENT_MIN:
		cp.underflow()
		return
	}

	c.SetExponent(exp)
	cp.register[REG_C] = c
	ok = true

	if cp.Verbose {
		log.Printf("cpu: c %v exp %d", c, exp)
	}

	return
}

// overflow replaces the display pair with the maximal-magnitude pattern
// of the given sign.
func (cp *Cpu) overflow(positive bool) {
	if cp.Verbose {
		log.Printf("cpu: overflow positive:%v", positive)
	}

	a := OVERFLOW_A_POSITIVE
	if !positive {
		a = OVERFLOW_A_NEGATIVE
	}

	cp.setPattern(a, OVERFLOW_B)
}

// underflow replaces the display pair with the power-on zero pattern.
func (cp *Cpu) underflow() {
	if cp.Verbose {
		log.Printf("cpu: underflow")
	}

	cp.setPattern(POWER_ON_A, POWER_ON_B)
}

func (cp *Cpu) setPattern(a string, b string) {
	rega, err := register.FromDecimalString(a)
	if err != nil {
		// The fallback patterns are constants.
		panic(err)
	}
	regb, err := register.FromDecimalString(b)
	if err != nil {
		panic(err)
	}

	cp.register[REG_A] = rega
	cp.register[REG_B] = regb
}

// lineDigit reads one display symbol as a decimal digit. Blanked
// symbols read as zero.
func lineDigit(line display.Line, index int) (digit int) {
	symbol := line[index]
	if symbol >= '0' && symbol <= '9' {
		digit = int(symbol - '0')
	}

	return
}

// lineDecade returns the floored base-10 logarithm of the displayed
// mantissa magnitude, computed exactly from the digit positions. The
// significant return is false when the displayed magnitude is zero.
func lineDecade(line display.Line) (decade int, significant bool) {
	text := strings.ReplaceAll(line.Mantissa(), " ", "")

	point := strings.IndexByte(text, '.')
	if point < 0 {
		point = len(text)
	}

	for n := range len(text) {
		if text[n] == '.' || text[n] == '0' {
			continue
		}
		if n < point {
			decade = point - n - 1
		} else {
			decade = point - n
		}
		significant = true
		return
	}

	return
}
