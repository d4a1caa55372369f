// pkg/trace/file.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trace

import (
	"fmt"
	"io"
	"slices"

	"github.com/mmp/glstate/pkg/caps"
	"github.com/mmp/glstate/pkg/util"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// TraceVersion is bumped whenever the encoding of recorded calls changes.
const TraceVersion = 1

// Trace is a saved recording. It is stored as msgpack, compressed with
// zstd.
type Trace struct {
	Version int          `msgpack:"version"`
	Profile caps.Profile `msgpack:"profile"`
	Buf     []uint32     `msgpack:"buf"`
}

func Load(r io.Reader) (*Trace, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var t Trace
	if err := msgpack.NewDecoder(zr).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	if t.Version != TraceVersion {
		return nil, fmt.Errorf("trace version %d: expected %d", t.Version, TraceVersion)
	}
	return &t, nil
}

func (t *Trace) Save(w io.Writer) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(t); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}

	return nil
}

func (t *Trace) Calls() []Call {
	cb := CommandBuffer{Buf: t.Buf}
	return cb.Decode(0)
}

type OpCount struct {
	Op    Op
	Count int
}

// Histogram returns the number of calls to each op in the trace, most
// frequent first.
func (t *Trace) Histogram() []OpCount {
	counts := make(map[Op]int)
	for _, c := range t.Calls() {
		counts[c.Op]++
	}
	h := util.MapSlice(util.SortedMapKeys(counts), func(op Op) OpCount { return OpCount{Op: op, Count: counts[op]} })
	slices.SortStableFunc(h, func(a, b OpCount) int { return b.Count - a.Count })
	return h
}
