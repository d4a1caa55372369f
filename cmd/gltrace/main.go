// cmd/gltrace/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// gltrace prints summaries of traces saved by glprobe -trace.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmp/glstate/pkg/trace"

	"github.com/goforj/godump"
)

var (
	listCalls = flag.Bool("calls", false, "print every call")
	opFilter  = flag.String("op", "", "comma-separated ops to print with -calls (e.g., DrawArrays,BindTexture)")
	dump      = flag.Bool("dump", false, "dump the trace's device profile")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: gltrace [flags] trace.zst...\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(1)
	}

	ops, err := parseOps(*opFilter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gltrace: %v\n", err)
		os.Exit(1)
	}

	for _, fn := range flag.Args() {
		if err := report(fn, ops); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", fn, err)
			os.Exit(1)
		}
	}
}

func parseOps(s string) ([]trace.Op, error) {
	if s == "" {
		return nil, nil
	}
	var ops []trace.Op
	for name := range strings.SplitSeq(s, ",") {
		op, err := trace.ParseOp(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func report(fn string, ops []trace.Op) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	t, err := trace.Load(f)
	if err != nil {
		return err
	}

	calls := t.Calls()
	fmt.Printf("%s: %d calls, profile %s (%s)\n", fn, len(calls), t.Profile.Name, t.Profile.Version)
	if *dump {
		godump.Dump(t.Profile)
	}

	for _, oc := range t.Histogram() {
		fmt.Printf("%8d  %s\n", oc.Count, oc.Op)
	}

	if *listCalls {
		if len(ops) > 0 {
			calls = trace.Filter(calls, ops...)
		}
		for i, c := range calls {
			fmt.Printf("%6d  %s\n", i, c)
		}
	}
	return nil
}
