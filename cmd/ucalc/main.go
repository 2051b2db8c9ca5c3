// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/ucalc/cpu"
	"github.com/ezrec/ucalc/script"
)

func main() {
	var rega string
	var regb string
	var scenario string
	var verbose bool

	flag.StringVar(&rega, "a", cpu.POWER_ON_A, "Register A (14 decimal digits)")
	flag.StringVar(&regb, "b", cpu.POWER_ON_B, "Register B (14 decimal digits)")
	flag.StringVar(&scenario, "f", "", ".star scenario file to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(scenario) != 0 {
		run := script.NewRunner()
		run.Verbose = verbose

		err := run.Run(scenario, nil)
		if err != nil {
			log.Fatalf("%v: %v", scenario, err)
		}
		return
	}

	cp, err := cpu.NewCpu(rega, regb)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	cp.Verbose = verbose

	fmt.Printf("[%v]\n", cp.Display())
	fmt.Print(cp.String())
}
