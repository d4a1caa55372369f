// pkg/gfx/object.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package gfx provides the portable description of the things the
// renderer draws with: render states, images and textures, vertex
// buffers and meshes, shaders, framebuffers, and lights.
package gfx

import "fmt"

// Unallocated is the value ID returns for a Handle without a native
// object.
const Unallocated = -1

// Handle tracks the native object backing a resource. The zero value is
// unallocated and needs an update, so resources can be constructed
// without any renderer involvement; the renderer allocates the native
// object lazily the first time the resource is used.
type Handle struct {
	name     uint32 // 0 if unallocated
	clean    bool
	version  uint64
	unusable bool
}

// NativeHandle returns h; it is promoted to each resource type that
// embeds a Handle.
func (h *Handle) NativeHandle() *Handle { return h }

// ID returns the native name of the object or Unallocated.
func (h *Handle) ID() int {
	if h.name == 0 {
		return Unallocated
	}
	return int(h.name)
}

// GLName returns the native object name, 0 if unallocated.
func (h *Handle) GLName() uint32 { return h.name }

func (h *Handle) Allocated() bool { return h.name != 0 }

// SetID records the native object's name after allocation.
func (h *Handle) SetID(name uint32) {
	if name == 0 {
		panic("gfx: SetID called with 0 native name")
	}
	h.name = name
}

// ResetID returns the handle to the unallocated state; the next use
// allocates a new native object and reuploads the data.
func (h *Handle) ResetID() {
	h.name = 0
	h.clean = false
}

func (h *Handle) IsUpdateNeeded() bool { return !h.clean }

// SetUpdateNeeded marks the resource's data as changed.
func (h *Handle) SetUpdateNeeded() {
	h.clean = false
	h.version++
}

func (h *Handle) ClearUpdateNeeded() { h.clean = true }

// Version is incremented every time the resource is marked as needing an
// update.
func (h *Handle) Version() uint64 { return h.version }

// Unusable reports whether creating the native object failed in a way
// that retrying won't fix, e.g. a shader that doesn't compile.
func (h *Handle) Unusable() bool { return h.unusable }

func (h *Handle) SetUnusable(u bool) { h.unusable = u }

func (h Handle) String() string {
	s := fmt.Sprintf("id=%d", h.ID())
	if !h.clean {
		s += " dirty"
	}
	if h.unusable {
		s += " unusable"
	}
	return s
}

// NativeObject is implemented by all resources that embed a Handle.
type NativeObject interface {
	NativeHandle() *Handle
}
