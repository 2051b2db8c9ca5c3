package cpu

import (
	"errors"

	"github.com/ezrec/ucalc/translate"
)

var f = translate.From

var (
	// Register file errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
)
