//go:build !tinygo && !baremetal

// Command periphsim runs radio and timer scenarios against the simulated
// board and reports which callbacks fired.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ystepanoff/nrfperiph/scenario"
)

func main() {
	logPath := flag.String("log", "", "also write the run log to this file (rotated)")
	trace := flag.Bool("trace", false, "print the board trace after each scenario")
	verbose := flag.Bool("v", false, "log every step")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] scenario.yaml|scenario.toml ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	os.Exit(run(flag.Args(), *logPath, *verbose, *trace))
}

func run(paths []string, logPath string, verbose, trace bool) int {
	var out io.Writer = io.Discard
	if verbose {
		out = os.Stderr
	}
	if logPath != "" {
		rotated := &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     14,
		}
		defer rotated.Close()
		out = io.MultiWriter(out, rotated)
	}
	logger := log.New(out, "", log.LstdFlags|log.Lmicroseconds)
	log.SetOutput(out)

	failed := 0
	for _, path := range paths {
		s, err := scenario.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		rep, err := scenario.Run(s, logger)
		status := "ok"
		if err != nil {
			status = "FAIL: " + err.Error()
			failed++
		}
		fmt.Printf("%-24s %4d steps  t=%-10v %s\n", rep.Name, rep.Steps, rep.Elapsed, status)
		for _, l := range rep.Lines() {
			fmt.Printf("    %s\n", l)
		}
		if trace {
			for _, e := range rep.Trace {
				fmt.Printf("    %12v %-8s %s\n", e.At, e.Source, e.What)
			}
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}
