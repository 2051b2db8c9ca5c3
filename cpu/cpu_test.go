// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucalc/register"
)

// registers returns the A/B/C triple of the register file.
func registers(cp *Cpu, t *testing.T) (a string, b string, c string) {
	assert := assert.New(t)

	a, err := cp.DecimalStringForRegister(REG_A)
	assert.NoError(err)
	b, err = cp.DecimalStringForRegister(REG_B)
	assert.NoError(err)
	c, err = cp.DecimalStringForRegister(REG_C)
	assert.NoError(err)

	return
}

func TestPowerOn(t *testing.T) {
	assert := assert.New(t)

	cp := PowerOn()

	a, b, c := registers(cp, t)
	assert.Equal(POWER_ON_A, a)
	assert.Equal(POWER_ON_B, b)
	assert.Equal("00000000000000", c)

	assert.Equal(" 0."+strings.Repeat(" ", 12), cp.Display().String())
}

func TestCanonicalize(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a    string
		b    string
		newA string
		newB string
		c    string
	}){
		// In-range derivations leave A and B untouched.
		{"power_on",
			"00000000000000", "02999999999999",
			"00000000000000", "02999999999999", "00000000000000"},
		{"normal",
			"01234567890000", "00020000000000",
			"01234567890000", "00020000000000", "01234567890002"},
		{"leading_zeros",
			"00012300000000", "00000000000000",
			"00012300000000", "00000000000000", "01230000000007"},
		{"negative_mantissa",
			"91234567890000", "00020000000000",
			"91234567890000", "00020000000000", "91234567890002"},
		{"negative_exponent",
			"01000000000902", "02000000000000",
			"01000000000902", "02000000000000", "01000000000998"},
		{"zero_mantissa_exponent",
			"00000000000005", "00000000000000",
			"00000000000005", "00000000000000", "00000000000005"},

		// Exponent 99 + decade 2 = 101: the stated overflow example.
		{"overflow_example",
			"01234567890099", "00020000000000",
			OVERFLOW_A_POSITIVE, OVERFLOW_B, OVERFLOW_A_POSITIVE},
		// Exponent 99 + decade 1 = 100, the exact boundary.
		{"overflow_boundary",
			"01000000000099", "00200000000000",
			OVERFLOW_A_POSITIVE, OVERFLOW_B, OVERFLOW_A_POSITIVE},
		{"overflow_negative",
			"91234567890099", "00020000000000",
			OVERFLOW_A_NEGATIVE, OVERFLOW_B, OVERFLOW_A_NEGATIVE},

		// Exponent -99 + decade -1 = -100, the exact boundary.
		{"underflow_boundary",
			"00100000000999", "02000000000000",
			POWER_ON_A, POWER_ON_B, "00000000000000"},

		// The fallback patterns are fixed points.
		{"overflow_fixed_point",
			OVERFLOW_A_POSITIVE, OVERFLOW_B,
			OVERFLOW_A_POSITIVE, OVERFLOW_B, OVERFLOW_A_POSITIVE},
		{"overflow_negative_fixed_point",
			OVERFLOW_A_NEGATIVE, OVERFLOW_B,
			OVERFLOW_A_NEGATIVE, OVERFLOW_B, OVERFLOW_A_NEGATIVE},
	}

	for _, entry := range table {
		cp, err := NewCpu(entry.a, entry.b)
		assert.NoError(err, entry.name)
		if err != nil {
			continue
		}

		a, b, c := registers(cp, t)
		assert.Equal(entry.newA, a, entry.name)
		assert.Equal(entry.newB, b, entry.name)
		assert.Equal(entry.c, c, entry.name)

		// Canonicalization is stable: a second pass reproduces the
		// same triple.
		cp.Canonicalize()
		a, b, c = registers(cp, t)
		assert.Equal(entry.newA, a, entry.name)
		assert.Equal(entry.newB, b, entry.name)
		assert.Equal(entry.c, c, entry.name)
	}
}

func TestLeadingZeroNormalization(t *testing.T) {
	assert := assert.New(t)

	cp, err := NewCpu("00012300000000", "00000000000000")
	assert.NoError(err)

	c, err := cp.Register(REG_C)
	assert.NoError(err)

	// Digits are left-aligned with zero-padded low-order cells.
	assert.Equal(register.Nibble(1), c.MantissaDigit(0))
	assert.Equal(register.Nibble(2), c.MantissaDigit(1))
	assert.Equal(register.Nibble(3), c.MantissaDigit(2))
	for n := 3; n < register.MANTISSA_WIDTH; n++ {
		assert.Equal(register.Nibble(0), c.MantissaDigit(n))
	}
}

func TestLoadReplacesDisplayPair(t *testing.T) {
	assert := assert.New(t)

	cp := PowerOn()

	err := cp.Load("01234567890000", "00020000000000")
	assert.NoError(err)

	_, _, c := registers(cp, t)
	assert.Equal("01234567890002", c)

	assert.ErrorIs(cp.Load("123", POWER_ON_B), register.ErrRegisterLength)
	assert.ErrorIs(cp.Load(POWER_ON_A, "0299999999999x"), register.ErrRegisterDigit)
}

func TestSetRegister(t *testing.T) {
	assert := assert.New(t)

	cp := PowerOn()

	rega, err := register.FromDecimalString("01234567890099")
	assert.NoError(err)
	regb, err := register.FromDecimalString("00020000000000")
	assert.NoError(err)

	assert.NoError(cp.SetRegister(REG_A, rega))
	assert.NoError(cp.SetRegister(REG_B, regb))
	cp.Canonicalize()

	a, b, c := registers(cp, t)
	assert.Equal(OVERFLOW_A_POSITIVE, a)
	assert.Equal(OVERFLOW_B, b)
	assert.Equal(OVERFLOW_A_POSITIVE, c)

	assert.ErrorIs(cp.SetRegister(RegisterID(-1), rega), ErrRegisterInvalid)
	assert.ErrorIs(cp.SetRegister(REGISTER_COUNT, rega), ErrRegisterInvalid)
}

func TestRegisterIDs(t *testing.T) {
	assert := assert.New(t)

	cp := PowerOn()

	for id := REG_A; id < REGISTER_COUNT; id++ {
		_, err := cp.Register(id)
		assert.NoError(err, id)

		back, err := RegisterIDOf(id.String())
		assert.NoError(err, id)
		assert.Equal(id, back, id)
	}

	_, err := cp.Register(RegisterID(7))
	assert.ErrorIs(err, ErrRegisterInvalid)

	_, err = cp.DecimalStringForRegister(RegisterID(-1))
	assert.ErrorIs(err, ErrRegisterInvalid)

	_, err = RegisterIDOf("x")
	assert.ErrorIs(err, ErrRegisterInvalid)

	id, err := RegisterIDOf("C")
	assert.NoError(err)
	assert.Equal(REG_C, id)
}

func TestNewCpuErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := NewCpu("", POWER_ON_B)
	assert.ErrorIs(err, register.ErrRegisterLength)

	_, err = NewCpu(POWER_ON_A, "0299999999999!")
	assert.ErrorIs(err, register.ErrRegisterDigit)
}
