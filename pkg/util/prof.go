// pkg/util/prof.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"runtime/trace"
	"sync"
)

// Profiler writes CPU, heap, and execution trace profiles for the
// command-line tools. Any of the output files may be empty to skip that
// profile.
type Profiler struct {
	cpu, mem, exec *os.File
	once           sync.Once
}

func CreateProfiler(cpu, mem, exec string) (*Profiler, error) {
	p := &Profiler{}

	create := func(fn, what string) (*os.File, error) {
		if fn == "" {
			return nil, nil
		}
		f, err := os.Create(fn)
		if err != nil {
			return nil, fmt.Errorf("%s: unable to create %s profile file: %w", fn, what, err)
		}
		return f, nil
	}

	var err error
	if p.cpu, err = create(cpu, "CPU"); err != nil {
		return nil, err
	}
	if p.mem, err = create(mem, "memory"); err != nil {
		p.closeAll()
		return nil, err
	}
	if p.exec, err = create(exec, "execution trace"); err != nil {
		p.closeAll()
		return nil, err
	}

	if p.cpu != nil {
		if err := pprof.StartCPUProfile(p.cpu); err != nil {
			p.closeAll()
			return nil, fmt.Errorf("unable to start CPU profile: %w", err)
		}
	}
	if p.exec != nil {
		if err := trace.Start(p.exec); err != nil {
			pprof.StopCPUProfile()
			p.closeAll()
			return nil, fmt.Errorf("unable to start execution trace: %w", err)
		}
	}

	if p.cpu != nil || p.mem != nil || p.exec != nil {
		// Write out the profiles if we're interrupted.
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		go func() {
			<-sig
			if err := p.Cleanup(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(1)
		}()
	}

	return p, nil
}

func (p *Profiler) closeAll() {
	for _, f := range []*os.File{p.cpu, p.mem, p.exec} {
		if f != nil {
			f.Close()
		}
	}
}

// Cleanup stops profiling and writes the heap profile; only the first
// call has any effect.
func (p *Profiler) Cleanup() error {
	var err error
	p.once.Do(func() {
		if p.cpu != nil {
			pprof.StopCPUProfile()
		}
		if p.exec != nil {
			trace.Stop()
		}
		if p.mem != nil {
			if werr := pprof.WriteHeapProfile(p.mem); werr != nil {
				err = fmt.Errorf("unable to write memory profile: %w", werr)
			}
		}
		for _, f := range []*os.File{p.cpu, p.mem, p.exec} {
			if f != nil {
				err = errors.Join(err, f.Close())
			}
		}
	})
	return err
}
