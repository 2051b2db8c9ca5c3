// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script runs Starlark scenario files against the calculator
// register core.
package script

import (
	"iter"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ucalc/cpu"
	"github.com/ezrec/ucalc/display"
	"github.com/ezrec/ucalc/internal"
	"github.com/ezrec/ucalc/register"
)

// Runner executes device scenarios written in Starlark.
//
// A scenario drives a single device through these builtins:
//
//	poweron()      - reset the device to the power-on state
//	load(a, b)     - load display registers A and B, deriving C
//	register(name) - decimal string of the named register (a..f, m)
//	display()      - the decoded display line
//
// The fixed register patterns and format constants are predeclared as
// string values.
type Runner struct {
	Verbose bool     // Set to enable verbose logging.
	Cpu     *cpu.Cpu // The device under scenario control.
}

// NewRunner creates a runner with a freshly powered-on device.
func NewRunner() (run *Runner) {
	run = &Runner{
		Cpu: cpu.PowerOn(),
	}

	return
}

// Defines returns the predeclared scenario constants.
func (run *Runner) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(
		run.Cpu.Defines(),
		register.Defines(),
		display.Defines(),
	)
}

// Run executes a scenario. The src parameter follows
// starlark.ExecFileOptions: a string, byte slice, or io.Reader, or nil
// to read from the named file.
func (run *Runner) Run(name string, src any) (err error) {
	run.Cpu.Verbose = run.Verbose

	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", name, msg)
		},
	}
	opts := &syntax.FileOptions{
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	pred := starlark.StringDict{
		"poweron":  starlark.NewBuiltin("poweron", run.powerOn),
		"load":     starlark.NewBuiltin("load", run.load),
		"register": starlark.NewBuiltin("register", run.registerOf),
		"display":  starlark.NewBuiltin("display", run.display),
	}
	for key, value := range run.Defines() {
		pred[key] = starlark.String(value)
	}

	_, err = starlark.ExecFileOptions(opts, thread, name, src, pred)

	return
}

func (run *Runner) powerOn(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	verbose := run.Cpu.Verbose
	run.Cpu = cpu.PowerOn()
	run.Cpu.Verbose = verbose

	return starlark.None, nil
}

func (run *Runner) load(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var a string
	var b string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "a", &a, "b", &b); err != nil {
		return nil, err
	}

	if err := run.Cpu.Load(a, b); err != nil {
		return nil, err
	}

	return starlark.None, nil
}

func (run *Runner) registerOf(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}

	id, err := cpu.RegisterIDOf(name)
	if err != nil {
		return nil, err
	}

	text, err := run.Cpu.DecimalStringForRegister(id)
	if err != nil {
		return nil, err
	}

	return starlark.String(text), nil
}

func (run *Runner) display(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}

	return starlark.String(run.Cpu.Display().String()), nil
}
