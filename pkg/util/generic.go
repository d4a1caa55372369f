// pkg/util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

///////////////////////////////////////////////////////////////////////////
// RingBuffer

// RingBuffer holds the most recent values added to it, up to a fixed
// capacity; older values are overwritten.
type RingBuffer[V any] struct {
	entries []V
	max     int
	next    int // index of the oldest entry once full
}

func NewRingBuffer[V any](capacity int) *RingBuffer[V] {
	if capacity <= 0 {
		panic("util: RingBuffer capacity must be positive")
	}
	return &RingBuffer[V]{max: capacity}
}

func (r *RingBuffer[V]) Add(values ...V) {
	for _, v := range values {
		if len(r.entries) < r.max {
			r.entries = append(r.entries, v)
		} else {
			r.entries[r.next] = v
			r.next = (r.next + 1) % r.max
		}
	}
}

func (r *RingBuffer[V]) Size() int { return len(r.entries) }

// Get returns the i'th value, where 0 is the oldest.
func (r *RingBuffer[V]) Get(i int) V {
	return r.entries[(r.next+i)%len(r.entries)]
}

// All returns the values from oldest to newest.
func (r *RingBuffer[V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := range r.entries {
			if !yield(r.Get(i)) {
				return
			}
		}
	}
}

///////////////////////////////////////////////////////////////////////////

func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K cmp.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}

// MapSlice returns the result of applying xform to each element of from.
func MapSlice[F, T any](from []F, xform func(F) T) []T {
	to := make([]T, 0, len(from))
	for _, item := range from {
		to = append(to, xform(item))
	}
	return to
}

// FilterSlice returns a new slice holding the elements of s for which
// pred returns true.
func FilterSlice[V any](s []V, pred func(V) bool) []V {
	var filtered []V
	for _, item := range s {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
