package register

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Register construction errors
	ErrRegisterLength = errors.New(f("register length"))
	ErrRegisterDigit  = errors.New(f("register digit"))

	// Cell access errors
	ErrNibbleIndex = errors.New(f("nibble index"))
	ErrNibbleValue = errors.New(f("nibble value"))
)
